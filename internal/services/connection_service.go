package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"DEVLINK_BACK-END/internal/apperr"
	"DEVLINK_BACK-END/internal/models"
	"DEVLINK_BACK-END/internal/notify"
)

// SendResult is a freshly created request plus its summary line
type SendResult struct {
	Request *models.ConnectionRequest
	Message string
}

// ConnectionService runs the connection request workflow
type ConnectionService struct {
	users    UserRepository
	requests ConnectionRepository
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewConnectionService(users UserRepository, requests ConnectionRepository, notifier Notifier, log *zap.Logger) *ConnectionService {
	return &ConnectionService{
		users:    users,
		requests: requests,
		notifier: notifier,
		log:      log,
		now:      utcNow,
	}
}

// Send creates a request from sender to toUserID in status interested or
// ignored and notifies the recipient in the background.
func (s *ConnectionService) Send(ctx context.Context, sender *models.User, toUserID uuid.UUID, status models.Status) (*SendResult, error) {
	if !status.Sendable() {
		return nil, apperr.InvalidArgument("Invalid status type: %s", status)
	}
	if sender.ID == toUserID {
		return nil, apperr.InvalidArgument("cannot send a connection request to yourself")
	}

	recipient, err := s.users.FindByID(ctx, toUserID)
	if err != nil {
		return nil, err
	}

	// fast path; the unique pair index still decides concurrent sends
	_, err = s.requests.FindPairEdge(ctx, sender.ID, toUserID)
	switch {
	case err == nil:
		return nil, apperr.Conflict("connection request")
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	now := s.now()
	req := &models.ConnectionRequest{
		ID:         uuid.New(),
		FromUserID: sender.ID,
		ToUserID:   toUserID,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("connection request")
		}
		return nil, err
	}

	s.notifier.Dispatch(ctx, notify.ConnectionRequestMessage(sender, recipient, status))
	s.log.Info("connection request sent",
		zap.String("request_id", req.ID.String()),
		zap.String("from", sender.ID.String()),
		zap.String("to", toUserID.String()),
		zap.String("status", string(status)))

	return &SendResult{
		Request: req,
		Message: fmt.Sprintf("%s is %s in %s", sender.FirstName, status, recipient.FirstName),
	}, nil
}

// Review moves a pending request addressed to reviewer into accepted or
// rejected. Requests not addressed to reviewer, or no longer pending, are
// reported as apperr.ErrNotFound.
func (s *ConnectionService) Review(ctx context.Context, reviewer *models.User, requestID uuid.UUID, status models.Status) (*models.ConnectionRequest, error) {
	if !status.Reviewable() {
		return nil, apperr.InvalidArgument("Invalid status type: %s", status)
	}

	req, err := s.requests.TransitionPending(ctx, requestID, reviewer.ID, status, s.now())
	if err != nil {
		return nil, err
	}

	s.log.Info("connection request reviewed",
		zap.String("request_id", req.ID.String()),
		zap.String("status", string(status)))
	return req, nil
}

// ListReceived returns the pending requests addressed to userID.
func (s *ConnectionService) ListReceived(ctx context.Context, userID uuid.UUID) ([]models.ReceivedRequest, error) {
	return s.requests.ListReceivedInterested(ctx, userID)
}

// ListConnections returns the public profiles of userID's accepted peers.
func (s *ConnectionService) ListConnections(ctx context.Context, userID uuid.UUID) ([]models.PublicProfile, error) {
	return s.requests.ListAcceptedPeers(ctx, userID)
}
