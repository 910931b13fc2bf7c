package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Profile carries what checkout needs: the delivery prefill fields and the
// drop-off coordinates for the drone.
type Profile struct {
	ID        string  `json:"userId"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Repository interface {
	GetByID(ctx context.Context, userID string) (*Profile, error)
	VerifyCredentials(ctx context.Context, email, password string) (*Profile, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) GetByID(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, address, latitude, longitude
         FROM users WHERE id = $1`,
		userID,
	).Scan(&p.ID, &p.Email, &p.Name, &p.Address, &p.Latitude, &p.Longitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &p, nil
}

func (r *repo) VerifyCredentials(ctx context.Context, email, password string) (*Profile, error) {
	var (
		p    Profile
		hash string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name, address, latitude, longitude
         FROM users WHERE email = $1`,
		email,
	).Scan(&p.ID, &p.Email, &hash, &p.Name, &p.Address, &p.Latitude, &p.Longitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &p, nil
}
