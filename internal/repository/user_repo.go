package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"campusclubs/internal/db"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

// CreateUser hashes the password and inserts a new user row. Returns the
// stored user without the password hash populated for callers.
func (r *UserRepository) CreateUser(name, email, password string, phone *string) (*db.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &db.User{
		UID:   uuid.NewString(),
		Name:  name,
		Email: email,
		Phone: phone,
	}
	query := `INSERT INTO users (uid, name, email, phone, password_hash) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.DB.Exec(query, user.UID, user.Name, user.Email, user.Phone, string(hashed)); err != nil {
		return nil, fmt.Errorf("error inserting user: %w", err)
	}
	return user, nil
}

// GetByEmail returns nil, nil when no user has the given email.
func (r *UserRepository) GetByEmail(email string) (*db.User, error) {
	var user db.User
	query := `SELECT uid, name, email, phone, password_hash FROM users WHERE email = $1`
	err := r.DB.QueryRow(query, email).Scan(&user.UID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return &user, nil
}

// GetByUID returns nil, nil when the user does not exist.
func (r *UserRepository) GetByUID(uid string) (*db.User, error) {
	var user db.User
	query := `SELECT uid, name, email, phone, password_hash FROM users WHERE uid = $1`
	err := r.DB.QueryRow(query, uid).Scan(&user.UID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by uid: %w", err)
	}
	return &user, nil
}
