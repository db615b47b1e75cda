// Package services holds the account, profile and connection workflow logic.
// Handlers call into it with an already authenticated user; services never
// read identity from request input.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"DEVLINK_BACK-END/internal/models"
	"DEVLINK_BACK-END/internal/notify"
)

// UserRepository is the credential and profile store
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, u *models.User) error
	UpdatePassword(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConnectionRepository is the connection request store
type ConnectionRepository interface {
	Create(ctx context.Context, c *models.ConnectionRequest) error
	FindPairEdge(ctx context.Context, a, b uuid.UUID) (*models.ConnectionRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ConnectionRequest, error)
	TransitionPending(ctx context.Context, id, recipientID uuid.UUID, status models.Status, at time.Time) (*models.ConnectionRequest, error)
	ListReceivedInterested(ctx context.Context, userID uuid.UUID) ([]models.ReceivedRequest, error)
	ListAcceptedPeers(ctx context.Context, userID uuid.UUID) ([]models.PublicProfile, error)
}

// Notifier hands a message off for background delivery
type Notifier interface {
	Dispatch(ctx context.Context, msg notify.Message)
}

func utcNow() time.Time { return time.Now().UTC() }
