package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/learnovatex/platform/internal/domain"
	"github.com/learnovatex/platform/internal/extract"
	"github.com/learnovatex/platform/internal/observability"
)

// CodeService evaluates submitted code and persists the typed result.
type CodeService struct {
	AI     Responder
	Repo   domain.CodeEvaluationRepository
	Quota  domain.QuotaKeeper
	Events domain.EventPublisher
}

// NewCodeService constructs a CodeService.
func NewCodeService(ai Responder, repo domain.CodeEvaluationRepository, quota domain.QuotaKeeper, events domain.EventPublisher) CodeService {
	return CodeService{AI: ai, Repo: repo, Quota: quota, Events: events}
}

// Evaluate reviews a code submission. The raw response text is stored next
// to the extracted fields so evaluations can be re-parsed later.
func (s CodeService) Evaluate(ctx domain.Context, userID, problemID, language, code string) (domain.CodeEvaluation, domain.ResponseOrigin, error) {
	if strings.TrimSpace(code) == "" {
		return domain.CodeEvaluation{}, "", fmt.Errorf("%w: code required", domain.ErrInvalidArgument)
	}
	if language = strings.TrimSpace(language); language == "" {
		language = "python"
	}
	if err := s.Quota.Allow(ctx, userID, ActionCodeSubmission); err != nil {
		return domain.CodeEvaluation{}, "", err
	}

	prompt := fmt.Sprintf(`Evaluate this %s code solution for problem %q.

%s

Respond with these markers:
CORRECT: Yes or No
SCORE: 0-100
QUALITY: 1-10
TIME_COMPLEXITY: big-O
SPACE_COMPLEXITY: big-O
SUGGESTIONS: comma-separated improvements`, language, problemID, code)

	resp := s.AI.Respond(ctx, domain.GenerationRequest{Prompt: prompt, Domain: domain.DomainCode})
	parsed := extract.ParseCodeEvaluation(resp.Text)

	eval := domain.CodeEvaluation{
		UserID:          userID,
		ProblemID:       problemID,
		Code:            code,
		Language:        language,
		Evaluation:      resp.Text,
		Passed:          parsed.Passed,
		Score:           parsed.Score,
		Quality:         parsed.Quality,
		TimeComplexity:  parsed.TimeComplexity,
		SpaceComplexity: parsed.SpaceComplexity,
		Suggestions:     parsed.Suggestions,
		CreatedAt:       time.Now().UTC(),
	}
	id, err := s.Repo.Create(ctx, eval)
	if err != nil {
		return domain.CodeEvaluation{}, "", err
	}
	eval.ID = id
	observability.CodeScoreHistogram.Observe(float64(eval.Score))
	_ = s.Events.PublishActivity(ctx, domain.ActivityEvent{
		UserID: userID, Kind: "code_submission", Score: eval.Score, CreatedAt: eval.CreatedAt,
	})
	return eval, resp.Source, nil
}

// History lists a user's recent evaluations, newest first.
func (s CodeService) History(ctx domain.Context, userID string, limit int) ([]domain.CodeEvaluation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListByUser(ctx, userID, limit)
}
