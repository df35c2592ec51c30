// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

// PostgresUserRepository persists account records in the users table.
type PostgresUserRepository struct {
	db  *DB
	log *logger.Logger
}

func NewPostgresUserRepository(db *DB, log *logger.Logger) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, log: log}
}

// CreateUser inserts a new account. The login column carries a UNIQUE
// constraint; a violation maps to ErrLoginAlreadyExists.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := r.log.With().Str("func", "PostgresUserRepository.CreateUser").Logger()

	var created models.User
	row := r.db.QueryRowContext(ctx, createUser, user.Login, user.PasswordHash)
	err := row.Scan(&created.UserID, &created.Login, &created.PasswordHash, &created.CreatedAt)
	if err != nil {
		if code := postgresErrorCode(err); code == pgerrcode.UniqueViolation {
			log.Info().Str("login", user.Login).Msg("login is already taken")
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Error().Err(err).Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// FindUserByLogin fetches an account by its login. A missing account maps
// to ErrNoUserWasFound.
func (r *PostgresUserRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := r.log.With().Str("func", "PostgresUserRepository.FindUserByLogin").Logger()

	var found models.User
	row := r.db.QueryRowContext(ctx, findUserByLogin, login)
	err := row.Scan(&found.UserID, &found.Login, &found.PasswordHash, &found.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Error().Err(err).Msg("error searching for user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}
