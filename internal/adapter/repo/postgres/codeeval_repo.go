package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/learnovatex/platform/internal/domain"
)

// CodeEvalRepo persists code evaluations using a minimal pgx pool.
type CodeEvalRepo struct{ Pool PgxPool }

// NewCodeEvalRepo constructs a CodeEvalRepo with the given pool.
func NewCodeEvalRepo(p PgxPool) *CodeEvalRepo { return &CodeEvalRepo{Pool: p} }

// Create inserts a code evaluation and returns its id.
func (r *CodeEvalRepo) Create(ctx domain.Context, e domain.CodeEvaluation) (string, error) {
	tracer := otel.Tracer("repo.codeeval")
	ctx, span := tracer.Start(ctx, "codeeval.Create")
	defer span.End()
	id := e.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO code_evaluations (id, user_id, problem_id, code, language, evaluation, passed, score, quality, time_complexity, space_complexity, suggestions, created_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err := r.Pool.Exec(ctx, q, id, e.UserID, e.ProblemID, e.Code, e.Language, e.Evaluation, e.Passed, e.Score, e.Quality, e.TimeComplexity, e.SpaceComplexity, e.Suggestions, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("op=codeeval.create: %w", err)
	}
	return id, nil
}

// ListByUser lists a user's evaluations, newest first.
func (r *CodeEvalRepo) ListByUser(ctx domain.Context, userID string, limit int) ([]domain.CodeEvaluation, error) {
	tracer := otel.Tracer("repo.codeeval")
	ctx, span := tracer.Start(ctx, "codeeval.ListByUser")
	defer span.End()
	q := `SELECT id, user_id, problem_id, code, language, evaluation, passed, score, quality, time_complexity, space_complexity, suggestions, created_at
	      FROM code_evaluations WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.Pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("op=codeeval.list: %w", err)
	}
	defer rows.Close()
	var out []domain.CodeEvaluation
	for rows.Next() {
		var e domain.CodeEvaluation
		if err := rows.Scan(&e.ID, &e.UserID, &e.ProblemID, &e.Code, &e.Language, &e.Evaluation, &e.Passed, &e.Score, &e.Quality, &e.TimeComplexity, &e.SpaceComplexity, &e.Suggestions, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=codeeval.list: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=codeeval.list: %w", err)
	}
	return out, nil
}

// CountByUser counts a user's code evaluations.
func (r *CodeEvalRepo) CountByUser(ctx domain.Context, userID string) (int, error) {
	tracer := otel.Tracer("repo.codeeval")
	ctx, span := tracer.Start(ctx, "codeeval.CountByUser")
	defer span.End()
	var n int
	q := `SELECT COUNT(*) FROM code_evaluations WHERE user_id=$1`
	if err := r.Pool.QueryRow(ctx, q, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("op=codeeval.count: %w", err)
	}
	return n, nil
}

// AvgScoreByUser returns the user's mean code score, 0 when no submissions.
func (r *CodeEvalRepo) AvgScoreByUser(ctx domain.Context, userID string) (float64, error) {
	tracer := otel.Tracer("repo.codeeval")
	ctx, span := tracer.Start(ctx, "codeeval.AvgScoreByUser")
	defer span.End()
	var avg float64
	q := `SELECT COALESCE(AVG(score), 0) FROM code_evaluations WHERE user_id=$1`
	if err := r.Pool.QueryRow(ctx, q, userID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("op=codeeval.avg: %w", err)
	}
	return avg, nil
}

// Leaderboard returns ranked students by accumulated code points. Only
// student accounts compete; users without submissions are excluded.
// Ordering ties on points resolve by the higher average score.
func (r *CodeEvalRepo) Leaderboard(ctx domain.Context, limit int) ([]domain.LeaderboardEntry, error) {
	tracer := otel.Tracer("repo.codeeval")
	ctx, span := tracer.Start(ctx, "codeeval.Leaderboard")
	defer span.End()
	q := `SELECT u.id, u.name, u.email, AVG(c.score) AS avg_score, COUNT(c.id) AS submissions,
	             AVG(c.score) * COUNT(c.id) AS total_points
	      FROM users u
	      JOIN code_evaluations c ON c.user_id = u.id
	      WHERE u.role = 'student'
	      GROUP BY u.id, u.name, u.email
	      ORDER BY total_points DESC, avg_score DESC
	      LIMIT $1`
	rows, err := r.Pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("op=codeeval.leaderboard: %w", err)
	}
	defer rows.Close()
	var out []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.Email, &e.AvgCodeScore, &e.Submissions, &e.TotalPoints); err != nil {
			return nil, fmt.Errorf("op=codeeval.leaderboard: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=codeeval.leaderboard: %w", err)
	}
	return out, nil
}
