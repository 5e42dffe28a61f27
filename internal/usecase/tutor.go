// Package usecase wires the domain services of the learning platform.
package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/learnovatex/platform/internal/domain"
)

// Responder is the AI entry point used by the services. It is total: a
// response always comes back, possibly from the demo fallback.
type Responder interface {
	Respond(ctx domain.Context, req domain.GenerationRequest) domain.RawResponse
}

// Quota actions tracked per user per day.
const (
	ActionAIRequest      = "ai_request"
	ActionCodeSubmission = "code_submission"
	ActionInterview      = "interview"
)

// TutorService answers learning questions and records each interaction in
// the user's learning history.
type TutorService struct {
	AI       Responder
	Learning domain.LearningRepository
	Quota    domain.QuotaKeeper
	Events   domain.EventPublisher
}

// NewTutorService constructs a TutorService.
func NewTutorService(ai Responder, learning domain.LearningRepository, quota domain.QuotaKeeper, events domain.EventPublisher) TutorService {
	return TutorService{AI: ai, Learning: learning, Quota: quota, Events: events}
}

// Ask answers a tutoring question. Topic and difficulty shape the prompt;
// the saved entry feeds learning consistency and achievements.
func (s TutorService) Ask(ctx domain.Context, userID, topic, difficulty, question string) (domain.LearningEntry, domain.ResponseOrigin, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.LearningEntry{}, "", fmt.Errorf("%w: question required", domain.ErrInvalidArgument)
	}
	if topic = strings.TrimSpace(topic); topic == "" {
		topic = "general"
	}
	if difficulty = strings.TrimSpace(difficulty); difficulty == "" {
		difficulty = "beginner"
	}
	if err := s.Quota.Allow(ctx, userID, ActionAIRequest); err != nil {
		return domain.LearningEntry{}, "", err
	}

	prompt := fmt.Sprintf("Topic: %s\nDifficulty: %s\n\nStudent question: %s", topic, difficulty, question)
	resp := s.AI.Respond(ctx, domain.GenerationRequest{Prompt: prompt, Domain: domain.DomainTutor})

	entry := domain.LearningEntry{
		UserID:     userID,
		Topic:      topic,
		Difficulty: difficulty,
		Question:   question,
		Response:   resp.Text,
		CreatedAt:  time.Now().UTC(),
	}
	id, err := s.Learning.Create(ctx, entry)
	if err != nil {
		return domain.LearningEntry{}, "", err
	}
	entry.ID = id
	_ = s.Events.PublishActivity(ctx, domain.ActivityEvent{
		UserID: userID, Kind: "learning_session", CreatedAt: entry.CreatedAt,
	})
	return entry, resp.Source, nil
}
