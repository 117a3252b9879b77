package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the Store backed by PostgreSQL.
type PostgresStore struct {
	*UserRepository
	*TaskRepository
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		UserRepository: NewUserRepository(db),
		TaskRepository: NewTaskRepository(db),
		db:             db,
	}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.db.Close()
}
