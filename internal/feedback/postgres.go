package feedback

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cleancity/pickup-service/internal/domain"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns the durable feedback archive used when a
// Postgres DSN is configured.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, entry *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (id, name, email, subject, category, message)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.Name,
		entry.Email,
		entry.Subject,
		entry.Category,
		entry.Message,
	).Scan(&entry.CreatedAt)
}

func (r *postgresRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	const query = `
        SELECT id, name, email, subject, category, message, created_at
        FROM feedback ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Feedback
	for rows.Next() {
		var entry domain.Feedback
		if err := rows.Scan(
			&entry.ID,
			&entry.Name,
			&entry.Email,
			&entry.Subject,
			&entry.Category,
			&entry.Message,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
