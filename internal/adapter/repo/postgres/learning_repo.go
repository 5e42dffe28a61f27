package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/learnovatex/platform/internal/domain"
)

// LearningRepo persists tutor interactions using a minimal pgx pool.
type LearningRepo struct{ Pool PgxPool }

// NewLearningRepo constructs a LearningRepo with the given pool.
func NewLearningRepo(p PgxPool) *LearningRepo { return &LearningRepo{Pool: p} }

// Create inserts a learning entry and returns its id.
func (r *LearningRepo) Create(ctx domain.Context, e domain.LearningEntry) (string, error) {
	tracer := otel.Tracer("repo.learning")
	ctx, span := tracer.Start(ctx, "learning.Create")
	defer span.End()
	id := e.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO learning_entries (id, user_id, topic, difficulty, question, response, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.Pool.Exec(ctx, q, id, e.UserID, e.Topic, e.Difficulty, e.Question, e.Response, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("op=learning.create: %w", err)
	}
	return id, nil
}

// CountByUser counts all of a user's learning entries.
func (r *LearningRepo) CountByUser(ctx domain.Context, userID string) (int, error) {
	tracer := otel.Tracer("repo.learning")
	ctx, span := tracer.Start(ctx, "learning.CountByUser")
	defer span.End()
	var n int
	q := `SELECT COUNT(*) FROM learning_entries WHERE user_id=$1`
	if err := r.Pool.QueryRow(ctx, q, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("op=learning.count: %w", err)
	}
	return n, nil
}

// CountByUserSince counts a user's learning entries created at or after since.
func (r *LearningRepo) CountByUserSince(ctx domain.Context, userID string, since time.Time) (int, error) {
	tracer := otel.Tracer("repo.learning")
	ctx, span := tracer.Start(ctx, "learning.CountByUserSince")
	defer span.End()
	var n int
	q := `SELECT COUNT(*) FROM learning_entries WHERE user_id=$1 AND created_at >= $2`
	if err := r.Pool.QueryRow(ctx, q, userID, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("op=learning.count_since: %w", err)
	}
	return n, nil
}
