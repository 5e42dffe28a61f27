package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/learnovatex/platform/internal/domain"
)

// ResumeRepo persists resume analyses using a minimal pgx pool.
type ResumeRepo struct{ Pool PgxPool }

// NewResumeRepo constructs a ResumeRepo with the given pool.
func NewResumeRepo(p PgxPool) *ResumeRepo { return &ResumeRepo{Pool: p} }

// Create inserts a resume analysis and returns its id.
func (r *ResumeRepo) Create(ctx domain.Context, a domain.ResumeAnalysis) (string, error) {
	tracer := otel.Tracer("repo.resume")
	ctx, span := tracer.Start(ctx, "resume.Create")
	defer span.End()
	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO resume_analyses (id, user_id, filename, text_content, credibility_score, fake_skills, suggestions, analysis, created_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.Pool.Exec(ctx, q, id, a.UserID, a.Filename, a.TextContent, a.CredibilityScore, a.FakeSkills, a.Suggestions, a.Analysis, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("op=resume.create: %w", err)
	}
	return id, nil
}

// ListByUser lists a user's analyses, newest first.
func (r *ResumeRepo) ListByUser(ctx domain.Context, userID string, limit int) ([]domain.ResumeAnalysis, error) {
	tracer := otel.Tracer("repo.resume")
	ctx, span := tracer.Start(ctx, "resume.ListByUser")
	defer span.End()
	q := `SELECT id, user_id, filename, text_content, credibility_score, fake_skills, suggestions, analysis, created_at
	      FROM resume_analyses WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.Pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("op=resume.list: %w", err)
	}
	defer rows.Close()
	var out []domain.ResumeAnalysis
	for rows.Next() {
		var a domain.ResumeAnalysis
		if err := rows.Scan(&a.ID, &a.UserID, &a.Filename, &a.TextContent, &a.CredibilityScore, &a.FakeSkills, &a.Suggestions, &a.Analysis, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=resume.list: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=resume.list: %w", err)
	}
	return out, nil
}

// CountByUser counts a user's resume analyses.
func (r *ResumeRepo) CountByUser(ctx domain.Context, userID string) (int, error) {
	tracer := otel.Tracer("repo.resume")
	ctx, span := tracer.Start(ctx, "resume.CountByUser")
	defer span.End()
	var n int
	q := `SELECT COUNT(*) FROM resume_analyses WHERE user_id=$1`
	if err := r.Pool.QueryRow(ctx, q, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("op=resume.count: %w", err)
	}
	return n, nil
}

// AvgCredibilityByUser returns the user's mean credibility score, 0 when
// no analyses exist.
func (r *ResumeRepo) AvgCredibilityByUser(ctx domain.Context, userID string) (float64, error) {
	tracer := otel.Tracer("repo.resume")
	ctx, span := tracer.Start(ctx, "resume.AvgCredibilityByUser")
	defer span.End()
	var avg float64
	q := `SELECT COALESCE(AVG(credibility_score), 0) FROM resume_analyses WHERE user_id=$1`
	if err := r.Pool.QueryRow(ctx, q, userID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("op=resume.avg: %w", err)
	}
	return avg, nil
}
