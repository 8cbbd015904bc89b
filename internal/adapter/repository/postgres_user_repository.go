package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"upcyclehub/internal/domain/entity"
	"upcyclehub/internal/domain/repository"
	"upcyclehub/pkg/errors"
)

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) repository.UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = "id, uuid, username, email, password, full_name, COALESCE(avatar, ''), is_seller, is_collector, created_at"

func scanUser(row *sql.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.UUID, &u.Username, &u.Email, &u.Password,
		&u.FullName, &u.Avatar, &u.IsSeller, &u.IsCollector, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get user", err)
	}
	return &u, nil
}

func (r *postgresUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.UUID == "" {
		user.UUID = uuid.New().String()
	}
	user.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (uuid, username, email, password, full_name, avatar, is_seller, is_collector, created_at)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9) RETURNING id`,
		user.UUID, user.Username, user.Email, user.Password, user.FullName,
		user.Avatar, user.IsSeller, user.IsCollector, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username))
}
