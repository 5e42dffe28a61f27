package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/learnovatex/platform/internal/domain"
	"github.com/learnovatex/platform/internal/extract"
	"github.com/learnovatex/platform/internal/observability"
	"github.com/learnovatex/platform/pkg/textx"
)

// Resume text beyond this length adds cost without improving the analysis.
const maxResumeChars = 3000

// ResumeService extracts text from uploaded resumes and analyzes it for
// credibility and improvement suggestions.
type ResumeService struct {
	AI        Responder
	Repo      domain.ResumeAnalysisRepository
	Extractor domain.TextExtractor
	Quota     domain.QuotaKeeper
	Events    domain.EventPublisher
}

// NewResumeService constructs a ResumeService.
func NewResumeService(ai Responder, repo domain.ResumeAnalysisRepository, extractor domain.TextExtractor, quota domain.QuotaKeeper, events domain.EventPublisher) ResumeService {
	return ResumeService{AI: ai, Repo: repo, Extractor: extractor, Quota: quota, Events: events}
}

// AnalyzeFile extracts text from the uploaded file at path and runs the
// analysis on it.
func (s ResumeService) AnalyzeFile(ctx domain.Context, userID, fileName, path string) (domain.ResumeAnalysis, domain.ResponseOrigin, error) {
	text, err := s.Extractor.ExtractPath(ctx, fileName, path)
	if err != nil {
		return domain.ResumeAnalysis{}, "", fmt.Errorf("op=resume.extract: %w", err)
	}
	return s.AnalyzeText(ctx, userID, fileName, text)
}

// AnalyzeText analyzes already-extracted resume text.
func (s ResumeService) AnalyzeText(ctx domain.Context, userID, fileName, text string) (domain.ResumeAnalysis, domain.ResponseOrigin, error) {
	text = textx.SanitizeText(text)
	if strings.TrimSpace(text) == "" {
		return domain.ResumeAnalysis{}, "", fmt.Errorf("%w: empty resume text", domain.ErrInvalidArgument)
	}
	if err := s.Quota.Allow(ctx, userID, ActionAIRequest); err != nil {
		return domain.ResumeAnalysis{}, "", err
	}

	prompt := fmt.Sprintf(`Analyze this resume for credibility and quality.

%s

Respond with these markers:
CREDIBILITY_SCORE: 0-100
FAKE_SKILLS: comma-separated suspicious claims, or None detected
SUGGESTIONS:
- up to four bullet improvements`, textx.Truncate(text, maxResumeChars))

	resp := s.AI.Respond(ctx, domain.GenerationRequest{Prompt: prompt, Domain: domain.DomainResume})
	parsed := extract.ParseResumeAnalysis(resp.Text)

	analysis := domain.ResumeAnalysis{
		UserID:           userID,
		Filename:         fileName,
		TextContent:      text,
		CredibilityScore: parsed.CredibilityScore,
		FakeSkills:       parsed.FakeSkills,
		Suggestions:      parsed.Suggestions,
		Analysis:         resp.Text,
		CreatedAt:        time.Now().UTC(),
	}
	id, err := s.Repo.Create(ctx, analysis)
	if err != nil {
		return domain.ResumeAnalysis{}, "", err
	}
	analysis.ID = id
	observability.CredibilityScoreHistogram.Observe(float64(analysis.CredibilityScore))
	_ = s.Events.PublishActivity(ctx, domain.ActivityEvent{
		UserID: userID, Kind: "resume_analysis", Score: analysis.CredibilityScore, CreatedAt: analysis.CreatedAt,
	})
	return analysis, resp.Source, nil
}

// History lists a user's recent analyses, newest first.
func (s ResumeService) History(ctx domain.Context, userID string, limit int) ([]domain.ResumeAnalysis, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListByUser(ctx, userID, limit)
}
