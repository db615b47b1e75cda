package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"DEVLINK_BACK-END/internal/models"
)

const requestColumns = `id, from_user_id, to_user_id, status, created_at, updated_at`

const publicColumns = `u.id, u.first_name, u.last_name, u.photo_url, u.age, u.gender, u.about, u.skills::text`

// PostgresConnectionRepository stores edges in the connection_requests table.
// Pair uniqueness and the no-self-request rule are enforced by the schema.
type PostgresConnectionRepository struct {
	db DBTX
}

func NewPostgresConnectionRepository(db DBTX) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

func scanRequest(row rowScanner) (*models.ConnectionRequest, error) {
	var c models.ConnectionRequest
	if err := row.Scan(&c.ID, &c.FromUserID, &c.ToUserID, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanPublic(row rowScanner, extra ...any) (*models.PublicProfile, error) {
	var (
		p      models.PublicProfile
		skills string
	)
	dest := append(extra, &p.ID, &p.FirstName, &p.LastName, &p.PhotoURL, &p.Age, &p.Gender, &p.About, &skills)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	var err error
	if p.Skills, err = decodeSkills(skills); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts c. An existing edge between the same two users, in either
// direction, yields apperr.ErrConflict.
func (r *PostgresConnectionRepository) Create(ctx context.Context, c *models.ConnectionRequest) error {
	query :=
		`INSERT INTO connection_requests (id, from_user_id, to_user_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query, c.ID, c.FromUserID, c.ToUserID, string(c.Status), c.CreatedAt, c.UpdatedAt)
	return translate(err, "connection request")
}

// FindPairEdge returns the edge between a and b regardless of direction.
func (r *PostgresConnectionRepository) FindPairEdge(ctx context.Context, a, b uuid.UUID) (*models.ConnectionRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM connection_requests
		 WHERE (from_user_id = $1 AND to_user_id = $2) OR (from_user_id = $2 AND to_user_id = $1)
		 LIMIT 1`

	c, err := scanRequest(r.db.QueryRowContext(ctx, query, a, b))
	if err != nil {
		return nil, translate(err, "connection request")
	}
	return c, nil
}

func (r *PostgresConnectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ConnectionRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM connection_requests WHERE id = $1`

	c, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(err, "connection request")
	}
	return c, nil
}

// TransitionPending moves a pending edge addressed to recipientID into status
// in a single conditional update. Anything else (wrong id, wrong recipient,
// already resolved) is apperr.ErrNotFound.
func (r *PostgresConnectionRepository) TransitionPending(ctx context.Context, id, recipientID uuid.UUID, status models.Status, at time.Time) (*models.ConnectionRequest, error) {
	query :=
		`UPDATE connection_requests SET status = $1, updated_at = $2
		 WHERE id = $3 AND to_user_id = $4 AND status = 'interested'
		 RETURNING ` + requestColumns

	c, err := scanRequest(r.db.QueryRowContext(ctx, query, string(status), at, id, recipientID))
	if err != nil {
		return nil, translate(err, "connection request")
	}
	return c, nil
}

// ListReceivedInterested returns pending edges addressed to userID, newest
// first, each with the sender's public profile.
func (r *PostgresConnectionRepository) ListReceivedInterested(ctx context.Context, userID uuid.UUID) ([]models.ReceivedRequest, error) {
	query :=
		`SELECT cr.id, cr.from_user_id, cr.to_user_id, cr.status, cr.created_at, cr.updated_at, ` + publicColumns + `
		 FROM connection_requests cr
		 JOIN users u ON u.id = cr.from_user_id
		 WHERE cr.to_user_id = $1 AND cr.status = 'interested'
		 ORDER BY cr.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translate(err, "connection request")
	}
	defer rows.Close()

	out := []models.ReceivedRequest{}
	for rows.Next() {
		var rr models.ReceivedRequest
		c := &rr.ConnectionRequest
		p, err := scanPublic(rows, &c.ID, &c.FromUserID, &c.ToUserID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, translate(err, "connection request")
		}
		rr.FromUser = *p
		out = append(out, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "connection request")
	}
	return out, nil
}

// ListAcceptedPeers returns the public profile of the other endpoint of every
// accepted edge touching userID.
func (r *PostgresConnectionRepository) ListAcceptedPeers(ctx context.Context, userID uuid.UUID) ([]models.PublicProfile, error) {
	query :=
		`SELECT ` + publicColumns + `
		 FROM connection_requests cr
		 JOIN users u ON u.id = CASE WHEN cr.from_user_id = $1 THEN cr.to_user_id ELSE cr.from_user_id END
		 WHERE (cr.from_user_id = $1 OR cr.to_user_id = $1) AND cr.status = 'accepted'
		 ORDER BY cr.updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translate(err, "connection request")
	}
	defer rows.Close()

	out := []models.PublicProfile{}
	for rows.Next() {
		p, err := scanPublic(rows)
		if err != nil {
			return nil, translate(err, "connection request")
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "connection request")
	}
	return out, nil
}
