package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/learnovatex/platform/internal/domain"
)

// InterviewRepo persists interview evaluations using a minimal pgx pool.
type InterviewRepo struct{ Pool PgxPool }

// NewInterviewRepo constructs an InterviewRepo with the given pool.
func NewInterviewRepo(p PgxPool) *InterviewRepo { return &InterviewRepo{Pool: p} }

// Create inserts an interview evaluation and returns its id. Questions and
// answers are stored as JSONB documents.
func (r *InterviewRepo) Create(ctx domain.Context, e domain.InterviewEvaluation) (string, error) {
	tracer := otel.Tracer("repo.interview")
	ctx, span := tracer.Start(ctx, "interview.Create")
	defer span.End()
	id := e.ID
	if id == "" {
		id = uuid.New().String()
	}
	questions, err := json.Marshal(e.Questions)
	if err != nil {
		return "", fmt.Errorf("op=interview.create: %w", err)
	}
	answers, err := json.Marshal(e.Answers)
	if err != nil {
		return "", fmt.Errorf("op=interview.create: %w", err)
	}
	q := `INSERT INTO interview_evaluations (id, user_id, interview_type, questions, answers, evaluation, readiness_score, strengths, weaknesses, created_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err = r.Pool.Exec(ctx, q, id, e.UserID, e.InterviewType, questions, answers, e.Evaluation, e.ReadinessScore, e.Strengths, e.Weaknesses, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("op=interview.create: %w", err)
	}
	return id, nil
}

// CountByUser counts a user's interview evaluations.
func (r *InterviewRepo) CountByUser(ctx domain.Context, userID string) (int, error) {
	tracer := otel.Tracer("repo.interview")
	ctx, span := tracer.Start(ctx, "interview.CountByUser")
	defer span.End()
	var n int
	q := `SELECT COUNT(*) FROM interview_evaluations WHERE user_id=$1`
	if err := r.Pool.QueryRow(ctx, q, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("op=interview.count: %w", err)
	}
	return n, nil
}

// AvgReadinessByUser returns the user's mean readiness score, 0 when no
// interviews were taken.
func (r *InterviewRepo) AvgReadinessByUser(ctx domain.Context, userID string) (float64, error) {
	tracer := otel.Tracer("repo.interview")
	ctx, span := tracer.Start(ctx, "interview.AvgReadinessByUser")
	defer span.End()
	var avg float64
	q := `SELECT COALESCE(AVG(readiness_score), 0) FROM interview_evaluations WHERE user_id=$1`
	if err := r.Pool.QueryRow(ctx, q, userID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("op=interview.avg: %w", err)
	}
	return avg, nil
}
