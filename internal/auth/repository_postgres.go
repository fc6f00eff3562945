package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, password_hash, google_id, name, email_verified, profile_picture, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, google_id, name, email_verified, profile_picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING id, created_at, updated_at
	`, user.Email, user.PasswordHash, user.GoogleID, user.Name, user.EmailVerified, user.ProfilePicture).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET email = $1,
		    password_hash = $2,
		    google_id = $3,
		    name = $4,
		    email_verified = $5,
		    profile_picture = $6,
		    updated_at = now()
		WHERE id = $7
	`, user.Email, user.PasswordHash, user.GoogleID, user.Name,
		user.EmailVerified, user.ProfilePicture, user.ID)
	return err
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id int) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PostgresUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.GoogleID,
		&user.Name, &user.EmailVerified, &user.ProfilePicture,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
