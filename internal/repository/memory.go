package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"DEVLINK_BACK-END/internal/apperr"
	"DEVLINK_BACK-END/internal/models"
)

// MemoryStore keeps users and connection requests in process memory. It
// enforces the same constraints as the Postgres schema, under one mutex.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]models.User
	requests map[uuid.UUID]models.ConnectionRequest
	order    []uuid.UUID // request ids in insertion order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uuid.UUID]models.User),
		requests: make(map[uuid.UUID]models.ConnectionRequest),
	}
}

// Users returns the user repository view of the store.
func (s *MemoryStore) Users() *MemoryUserRepository { return &MemoryUserRepository{s} }

// Connections returns the connection request repository view of the store.
func (s *MemoryStore) Connections() *MemoryConnectionRepository {
	return &MemoryConnectionRepository{s}
}

func cloneUser(u models.User) *models.User {
	u.Skills = slices.Clone(u.Skills)
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return &u
}

type MemoryUserRepository struct{ s *MemoryStore }

func (r *MemoryUserRepository) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperr.Conflict("user users_email_key")
		}
	}
	if _, ok := r.s.users[u.ID]; ok {
		return apperr.Conflict("user users_pkey")
	}
	r.s.users[u.ID] = *cloneUser(*u)
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	return cloneUser(u), nil
}

func (r *MemoryUserRepository) UpdateProfile(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.users[u.ID]
	if !ok {
		return apperr.NotFound("user")
	}
	cur.FirstName = u.FirstName
	cur.LastName = u.LastName
	cur.Age = u.Age
	cur.Gender = u.Gender
	cur.PhotoURL = u.PhotoURL
	cur.About = u.About
	cur.Skills = slices.Clone(u.Skills)
	cur.UpdatedAt = u.UpdatedAt
	r.s.users[u.ID] = cur
	return nil
}

func (r *MemoryUserRepository) UpdatePassword(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.users[u.ID]
	if !ok {
		return apperr.NotFound("user")
	}
	cur.PasswordHash = u.PasswordHash
	cur.UpdatedAt = u.UpdatedAt
	r.s.users[u.ID] = cur
	return nil
}

// Delete removes the user and every edge touching them.
func (r *MemoryUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return apperr.NotFound("user")
	}
	delete(r.s.users, id)

	kept := r.s.order[:0]
	for _, rid := range r.s.order {
		c := r.s.requests[rid]
		if c.Involves(id) {
			delete(r.s.requests, rid)
			continue
		}
		kept = append(kept, rid)
	}
	r.s.order = kept
	return nil
}

type MemoryConnectionRepository struct{ s *MemoryStore }

func (r *MemoryConnectionRepository) Create(_ context.Context, c *models.ConnectionRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c.FromUserID == c.ToUserID {
		return apperr.InvalidArgument("connection request violates connection_requests_not_self")
	}
	if _, ok := r.s.users[c.FromUserID]; !ok {
		return apperr.NotFound("user")
	}
	if _, ok := r.s.users[c.ToUserID]; !ok {
		return apperr.NotFound("user")
	}
	if r.pairLocked(c.FromUserID, c.ToUserID) != nil {
		return apperr.Conflict("connection request connection_requests_pair_key")
	}

	r.s.requests[c.ID] = *c
	r.s.order = append(r.s.order, c.ID)
	return nil
}

func (r *MemoryConnectionRepository) pairLocked(a, b uuid.UUID) *models.ConnectionRequest {
	for _, c := range r.s.requests {
		if (c.FromUserID == a && c.ToUserID == b) || (c.FromUserID == b && c.ToUserID == a) {
			return &c
		}
	}
	return nil
}

func (r *MemoryConnectionRepository) FindPairEdge(_ context.Context, a, b uuid.UUID) (*models.ConnectionRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if c := r.pairLocked(a, b); c != nil {
		return c, nil
	}
	return nil, apperr.NotFound("connection request")
}

func (r *MemoryConnectionRepository) FindByID(_ context.Context, id uuid.UUID) (*models.ConnectionRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.requests[id]
	if !ok {
		return nil, apperr.NotFound("connection request")
	}
	return &c, nil
}

func (r *MemoryConnectionRepository) TransitionPending(_ context.Context, id, recipientID uuid.UUID, status models.Status, at time.Time) (*models.ConnectionRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.requests[id]
	if !ok || c.ToUserID != recipientID || c.Status != models.StatusInterested {
		return nil, apperr.NotFound("connection request")
	}
	c.Status = status
	c.UpdatedAt = at
	r.s.requests[id] = c
	return &c, nil
}

func (r *MemoryConnectionRepository) ListReceivedInterested(_ context.Context, userID uuid.UUID) ([]models.ReceivedRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.ReceivedRequest{}
	for i := len(r.s.order) - 1; i >= 0; i-- {
		c := r.s.requests[r.s.order[i]]
		if c.ToUserID != userID || c.Status != models.StatusInterested {
			continue
		}
		sender := r.s.users[c.FromUserID]
		out = append(out, models.ReceivedRequest{ConnectionRequest: c, FromUser: cloneUser(sender).Public()})
	}
	return out, nil
}

func (r *MemoryConnectionRepository) ListAcceptedPeers(_ context.Context, userID uuid.UUID) ([]models.PublicProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var accepted []models.ConnectionRequest
	for i := len(r.s.order) - 1; i >= 0; i-- {
		c := r.s.requests[r.s.order[i]]
		if c.Status == models.StatusAccepted && c.Involves(userID) {
			accepted = append(accepted, c)
		}
	}
	// most recently accepted first, like the Postgres store
	slices.SortStableFunc(accepted, func(x, y models.ConnectionRequest) int {
		return y.UpdatedAt.Compare(x.UpdatedAt)
	})

	out := make([]models.PublicProfile, 0, len(accepted))
	for _, c := range accepted {
		peer := r.s.users[c.Peer(userID)]
		out = append(out, cloneUser(peer).Public())
	}
	return out, nil
}
