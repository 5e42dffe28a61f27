package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/learnovatex/platform/internal/domain"
	"github.com/learnovatex/platform/internal/extract"
	"github.com/learnovatex/platform/internal/observability"
)

// InterviewService generates mock interview questions and evaluates answers.
type InterviewService struct {
	AI     Responder
	Repo   domain.InterviewRepository
	Quota  domain.QuotaKeeper
	Events domain.EventPublisher
}

// NewInterviewService constructs an InterviewService.
func NewInterviewService(ai Responder, repo domain.InterviewRepository, quota domain.QuotaKeeper, events domain.EventPublisher) InterviewService {
	return InterviewService{AI: ai, Repo: repo, Quota: quota, Events: events}
}

// Start generates a question set for a mock interview of the given type
// (for example "technical" or "behavioral") targeting the given role.
func (s InterviewService) Start(ctx domain.Context, userID, interviewType, role string) ([]domain.InterviewQuestion, domain.ResponseOrigin, error) {
	if interviewType = strings.TrimSpace(interviewType); interviewType == "" {
		interviewType = "technical"
	}
	if role = strings.TrimSpace(role); role == "" {
		role = "software engineer"
	}
	if err := s.Quota.Allow(ctx, userID, ActionInterview); err != nil {
		return nil, "", err
	}

	prompt := fmt.Sprintf("Generate 5 %s interview questions for a %s position. Format each as Q1: ... through Q5: ...", interviewType, role)
	resp := s.AI.Respond(ctx, domain.GenerationRequest{Prompt: prompt, Domain: domain.DomainInterview})

	raw := extract.ParseInterviewQuestions(resp.Text)
	if len(raw) == 0 {
		return nil, "", fmt.Errorf("op=interview.start: no questions extracted: %w", domain.ErrInternal)
	}
	questions := make([]domain.InterviewQuestion, 0, len(raw))
	for i, q := range raw {
		questions = append(questions, domain.InterviewQuestion{
			ID:       fmt.Sprintf("q%d", i+1),
			Question: q,
			Type:     interviewType,
		})
	}
	return questions, resp.Source, nil
}

// Evaluate scores a completed interview and persists the evaluation.
func (s InterviewService) Evaluate(ctx domain.Context, userID, interviewType string, questions []domain.InterviewQuestion, answers []domain.InterviewAnswer) (domain.InterviewEvaluation, domain.ResponseOrigin, error) {
	if len(questions) == 0 || len(answers) == 0 {
		return domain.InterviewEvaluation{}, "", fmt.Errorf("%w: questions and answers required", domain.ErrInvalidArgument)
	}
	if err := s.Quota.Allow(ctx, userID, ActionAIRequest); err != nil {
		return domain.InterviewEvaluation{}, "", err
	}

	var b strings.Builder
	b.WriteString("Evaluate this mock interview transcript.\n\n")
	byID := make(map[string]string, len(answers))
	for _, a := range answers {
		byID[a.QuestionID] = a.Answer
	}
	for i, q := range questions {
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n\n", i+1, q.Question, i+1, byID[q.ID])
	}
	b.WriteString("Respond with these markers:\nREADINESS_SCORE: 0-100\nSTRENGTHS: up to three, comma-separated\nWEAKNESSES: up to three, comma-separated")

	resp := s.AI.Respond(ctx, domain.GenerationRequest{Prompt: b.String(), Domain: domain.DomainInterview})
	parsed := extract.ParseInterviewEvaluation(resp.Text)

	eval := domain.InterviewEvaluation{
		UserID:         userID,
		InterviewType:  interviewType,
		Questions:      questions,
		Answers:        answers,
		Evaluation:     resp.Text,
		ReadinessScore: parsed.ReadinessScore,
		Strengths:      parsed.Strengths,
		Weaknesses:     parsed.Weaknesses,
		CreatedAt:      time.Now().UTC(),
	}
	id, err := s.Repo.Create(ctx, eval)
	if err != nil {
		return domain.InterviewEvaluation{}, "", err
	}
	eval.ID = id
	observability.ReadinessScoreHistogram.Observe(float64(eval.ReadinessScore))
	_ = s.Events.PublishActivity(ctx, domain.ActivityEvent{
		UserID: userID, Kind: "interview_evaluation", Score: eval.ReadinessScore, CreatedAt: eval.CreatedAt,
	})
	return eval, resp.Source, nil
}
