// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"aidiary/internal/diary/ports/repositories"
)

// DB - минимальный интерфейс пула соединений, который использует репозиторий.
// Ему удовлетворяют *pgxpool.Pool и pgxmock.PgxPoolIface.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool DB
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool DB) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// DiaryRepository возвращает репозиторий для работы с дневником.
func (f *RepositoryFactory) DiaryRepository() repositories.DiaryRepository {
	return NewDiaryRepository(f.pool)
}
