package models

import (
	"time"

	"github.com/google/uuid"
)

// Status of a connection request
type Status string

const (
	StatusInterested Status = "interested"
	StatusIgnored    Status = "ignored"
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusInterested, StatusIgnored, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Sendable reports whether a sender may create a request in status s.
func (s Status) Sendable() bool {
	return s == StatusInterested || s == StatusIgnored
}

// Reviewable reports whether a recipient may move a pending request to s.
func (s Status) Reviewable() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Terminal reports whether no further transition is defined from s.
func (s Status) Terminal() bool {
	return s != StatusInterested
}

// ConnectionRequest is a directional edge between two users
type ConnectionRequest struct {
	ID         uuid.UUID `json:"_id" db:"id"`
	FromUserID uuid.UUID `json:"fromUserId" db:"from_user_id"`
	ToUserID   uuid.UUID `json:"toUserId" db:"to_user_id"`
	Status     Status    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// Involves reports whether userID is either endpoint of the edge.
func (c *ConnectionRequest) Involves(userID uuid.UUID) bool {
	return c.FromUserID == userID || c.ToUserID == userID
}

// Peer returns the endpoint that is not userID.
func (c *ConnectionRequest) Peer(userID uuid.UUID) uuid.UUID {
	if c.FromUserID == userID {
		return c.ToUserID
	}
	return c.FromUserID
}

// ReceivedRequest is a pending request enriched with the sender's public profile
type ReceivedRequest struct {
	ConnectionRequest
	FromUser PublicProfile `json:"fromUser"`
}
