package todos

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Todo struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	IsComplete bool   `json:"is_complete"`
}

// Store handles database operations for todo items.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS todos (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			is_complete BOOLEAN NOT NULL DEFAULT FALSE
		)
	`)
	return err
}

func (s *Store) List(ctx context.Context) ([]Todo, error) {
	return s.query(ctx, "SELECT id, name, is_complete FROM todos ORDER BY id")
}

func (s *Store) ListComplete(ctx context.Context) ([]Todo, error) {
	return s.query(ctx, "SELECT id, name, is_complete FROM todos WHERE is_complete ORDER BY id")
}

func (s *Store) query(ctx context.Context, sql string) ([]Todo, error) {
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Todo
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.Name, &t.IsComplete); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (Todo, error) {
	var t Todo
	err := s.pool.QueryRow(ctx, "SELECT id, name, is_complete FROM todos WHERE id = $1", id).Scan(&t.ID, &t.Name, &t.IsComplete)
	return t, err
}

func (s *Store) Create(ctx context.Context, name string, isComplete bool) (Todo, error) {
	t := Todo{Name: name, IsComplete: isComplete}
	err := s.pool.QueryRow(ctx, "INSERT INTO todos (name, is_complete) VALUES ($1, $2) RETURNING id", name, isComplete).Scan(&t.ID)
	return t, err
}

func (s *Store) Update(ctx context.Context, id int64, name string, isComplete bool) error {
	tag, err := s.pool.Exec(ctx, "UPDATE todos SET name = $1, is_complete = $2 WHERE id = $3", name, isComplete, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM todos WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
