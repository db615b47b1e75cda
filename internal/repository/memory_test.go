package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DEVLINK_BACK-END/internal/apperr"
	"DEVLINK_BACK-END/internal/models"
)

func seedUser(t *testing.T, s *MemoryStore, email string) *models.User {
	t.Helper()
	u := sampleUser()
	u.ID = uuid.New()
	u.Email = email
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func edge(from, to uuid.UUID, status models.Status, at time.Time) *models.ConnectionRequest {
	return &models.ConnectionRequest{
		ID: uuid.New(), FromUserID: from, ToUserID: to, Status: status, CreatedAt: at, UpdatedAt: at,
	}
}

func TestMemoryUserRepository_EmailUniqueCaseInsensitive(t *testing.T) {
	s := NewMemoryStore()
	seedUser(t, s, "alice@example.com")

	dup := sampleUser()
	dup.ID = uuid.New()
	dup.Email = "ALICE@Example.com"
	err := s.Users().Create(context.Background(), dup)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	got, err := s.Users().FindByEmail(context.Background(), "Alice@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestMemoryUserRepository_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	u := seedUser(t, s, "a@example.com")

	got, err := s.Users().FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	got.Skills[0] = "mutated"
	got.FirstName = "Mallory"

	again, err := s.Users().FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "go", again.Skills[0])
	assert.Equal(t, "Alice", again.FirstName)
}

func TestMemoryUserRepository_UpdateProfileKeepsCredentials(t *testing.T) {
	s := NewMemoryStore()
	u := seedUser(t, s, "a@example.com")

	edit := *u
	edit.About = "new about"
	edit.Email = "other@example.com"
	edit.PasswordHash = "changed"
	require.NoError(t, s.Users().UpdateProfile(context.Background(), &edit))

	got, err := s.Users().FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new about", got.About)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)

	missing := *u
	missing.ID = uuid.New()
	assert.ErrorIs(t, s.Users().UpdateProfile(context.Background(), &missing), apperr.ErrNotFound)
	assert.ErrorIs(t, s.Users().UpdatePassword(context.Background(), &missing), apperr.ErrNotFound)
}

func TestMemoryConnectionRepository_PairUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := seedUser(t, s, "a@example.com")
	b := seedUser(t, s, "b@example.com")
	now := time.Now()

	require.NoError(t, s.Connections().Create(ctx, edge(a.ID, b.ID, models.StatusInterested, now)))

	err := s.Connections().Create(ctx, edge(a.ID, b.ID, models.StatusIgnored, now))
	assert.ErrorIs(t, err, apperr.ErrConflict)
	err = s.Connections().Create(ctx, edge(b.ID, a.ID, models.StatusInterested, now))
	assert.ErrorIs(t, err, apperr.ErrConflict)

	got, err := s.Connections().FindPairEdge(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.FromUserID)
}

func TestMemoryConnectionRepository_CreateRejects(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := seedUser(t, s, "a@example.com")

	err := s.Connections().Create(ctx, edge(a.ID, a.ID, models.StatusInterested, time.Now()))
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	err = s.Connections().Create(ctx, edge(a.ID, uuid.New(), models.StatusInterested, time.Now()))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMemoryConnectionRepository_ConcurrentSendsProduceOneEdge(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := seedUser(t, s, "a@example.com")
	b := seedUser(t, s, "b@example.com")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		from, to := a.ID, b.ID
		if i%2 == 1 {
			from, to = to, from
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Connections().Create(ctx, edge(from, to, models.StatusInterested, time.Now())); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
}

func TestMemoryConnectionRepository_TransitionPending(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := seedUser(t, s, "a@example.com")
	b := seedUser(t, s, "b@example.com")
	c := edge(a.ID, b.ID, models.StatusInterested, time.Now())
	require.NoError(t, s.Connections().Create(ctx, c))

	_, err := s.Connections().TransitionPending(ctx, c.ID, a.ID, models.StatusAccepted, time.Now())
	assert.ErrorIs(t, err, apperr.ErrNotFound, "sender cannot review")

	at := time.Now().Add(time.Minute)
	got, err := s.Connections().TransitionPending(ctx, c.ID, b.ID, models.StatusAccepted, at)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, got.Status)
	assert.Equal(t, at, got.UpdatedAt)

	_, err = s.Connections().TransitionPending(ctx, c.ID, b.ID, models.StatusRejected, time.Now())
	assert.ErrorIs(t, err, apperr.ErrNotFound, "already reviewed")
}

func TestMemoryConnectionRepository_Listings(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := seedUser(t, s, "a@example.com")
	b := seedUser(t, s, "b@example.com")
	c := seedUser(t, s, "c@example.com")
	d := seedUser(t, s, "d@example.com")
	e := seedUser(t, s, "e@example.com")
	now := time.Now()

	require.NoError(t, s.Connections().Create(ctx, edge(a.ID, b.ID, models.StatusInterested, now)))
	require.NoError(t, s.Connections().Create(ctx, edge(c.ID, b.ID, models.StatusInterested, now)))
	require.NoError(t, s.Connections().Create(ctx, edge(d.ID, b.ID, models.StatusIgnored, now)))
	require.NoError(t, s.Connections().Create(ctx, edge(b.ID, e.ID, models.StatusAccepted, now)))

	received, err := s.Connections().ListReceivedInterested(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, c.ID, received[0].FromUser.ID, "newest first")
	assert.Equal(t, a.ID, received[1].FromUser.ID)

	peers, err := s.Connections().ListAcceptedPeers(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, peers, 1)
	assert.Equal(t, b.ID, peers[0].ID)

	none, err := s.Connections().ListAcceptedPeers(ctx, a.ID)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryConnectionRepository_AcceptedPeersByAcceptance(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := seedUser(t, s, "a@example.com")
	b := seedUser(t, s, "b@example.com")
	c := seedUser(t, s, "c@example.com")
	start := time.Now()

	older := edge(b.ID, a.ID, models.StatusInterested, start)
	newer := edge(c.ID, a.ID, models.StatusInterested, start.Add(time.Minute))
	require.NoError(t, s.Connections().Create(ctx, older))
	require.NoError(t, s.Connections().Create(ctx, newer))

	_, err := s.Connections().TransitionPending(ctx, newer.ID, a.ID, models.StatusAccepted, start.Add(2*time.Minute))
	require.NoError(t, err)
	_, err = s.Connections().TransitionPending(ctx, older.ID, a.ID, models.StatusAccepted, start.Add(3*time.Minute))
	require.NoError(t, err)

	peers, err := s.Connections().ListAcceptedPeers(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, peers, 2)
	assert.Equal(t, b.ID, peers[0].ID, "accepted last, listed first")
	assert.Equal(t, c.ID, peers[1].ID)
}

func TestMemoryUserRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := seedUser(t, s, "a@example.com")
	b := seedUser(t, s, "b@example.com")
	c := edge(a.ID, b.ID, models.StatusInterested, time.Now())
	require.NoError(t, s.Connections().Create(ctx, c))

	require.NoError(t, s.Users().Delete(ctx, a.ID))

	_, err := s.Connections().FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	received, err := s.Connections().ListReceivedInterested(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, received)

	assert.ErrorIs(t, s.Users().Delete(ctx, a.ID), apperr.ErrNotFound)
}
