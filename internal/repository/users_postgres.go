package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"DEVLINK_BACK-END/internal/models"
)

const userColumns = `id, first_name, last_name, email, password_hash, age, gender,
		 photo_url, about, skills::text, created_at, updated_at`

// PostgresUserRepository stores users in the users table.
type PostgresUserRepository struct {
	db DBTX
}

func NewPostgresUserRepository(db DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u      models.User
		skills string
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Age, &u.Gender,
		&u.PhotoURL, &u.About, &skills, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if u.Skills, err = decodeSkills(skills); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts u. A duplicate email yields apperr.ErrConflict.
func (r *PostgresUserRepository) Create(ctx context.Context, u *models.User) error {
	skills, err := encodeSkills(u.Skills)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO users (id, first_name, last_name, email, password_hash, age, gender,
		 photo_url, about, skills, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11, $12)`

	_, err = r.db.ExecContext(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Age, u.Gender,
		u.PhotoURL, u.About, skills, u.CreatedAt, u.UpdatedAt)
	return translate(err, "user")
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, translate(err, "user")
	}
	return u, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(err, "user")
	}
	return u, nil
}

// UpdateProfile writes the editable profile columns of u.
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, u *models.User) error {
	skills, err := encodeSkills(u.Skills)
	if err != nil {
		return err
	}

	query :=
		`UPDATE users SET first_name = $1, last_name = $2, age = $3, gender = $4,
		 photo_url = $5, about = $6, skills = $7::jsonb, updated_at = $8
		 WHERE id = $9`

	res, err := r.db.ExecContext(ctx, query,
		u.FirstName, u.LastName, u.Age, u.Gender, u.PhotoURL, u.About, skills, u.UpdatedAt, u.ID)
	if err != nil {
		return translate(err, "user")
	}
	return requireRow(res, "user")
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, u *models.User) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, u.PasswordHash, u.UpdatedAt, u.ID)
	if err != nil {
		return translate(err, "user")
	}
	return requireRow(res, "user")
}

// Delete removes the user; their connection requests cascade.
func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate(err, "user")
	}
	return requireRow(res, "user")
}

func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return translate(err, what)
	}
	if n == 0 {
		return translate(sql.ErrNoRows, what)
	}
	return nil
}
