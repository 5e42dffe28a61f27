// Package domain holds the core entities and ports of the platform.
package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrRateLimited     = errors.New("rate limited")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrInternal        = errors.New("internal error")
)

// Domain enumerates the request domains understood by the AI layer.
type Domain string

// Request domains. DomainAuto lets the orchestrator classify by prompt content.
const (
	DomainAuto      Domain = ""
	DomainTutor     Domain = "tutor"
	DomainCode      Domain = "code"
	DomainResume    Domain = "resume"
	DomainInterview Domain = "interview"
)

// ResponseOrigin identifies which backend produced a response.
type ResponseOrigin string

// Response origins.
const (
	OriginLive ResponseOrigin = "live"
	OriginDemo ResponseOrigin = "demo"
)

// GenerationRequest is the immutable input to a response source.
type GenerationRequest struct {
	Prompt            string
	Domain            Domain
	SystemInstruction string
}

// RawResponse is the raw text produced for a GenerationRequest. It is
// constructed exactly once per request and never mutated afterwards.
type RawResponse struct {
	Text      string
	Source    ResponseOrigin
	Succeeded bool
}

// Account roles.
const (
	RoleStudent      = "student"
	RoleJobSeeker    = "job_seeker"
	RoleCompany      = "company"
	RoleCollegeAdmin = "college_admin"
)

// User is a registered account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
}

// LearningEntry is one tutor interaction saved to a user's learning history.
type LearningEntry struct {
	ID         string
	UserID     string
	Topic      string
	Difficulty string
	Question   string
	Response   string
	CreatedAt  time.Time
}

// CodeEvaluation is a persisted code evaluation record.
// Invariants: Score in [0,100]; Quality in [1,10]; Passed only when the raw
// evaluation carried an exact correctness marker.
type CodeEvaluation struct {
	ID              string
	UserID          string
	ProblemID       string
	Code            string
	Language        string
	Evaluation      string // raw response text, kept for audit
	Passed          bool
	Score           int
	Quality         int
	TimeComplexity  string
	SpaceComplexity string
	Suggestions     string
	CreatedAt       time.Time
}

// ResumeAnalysis is a persisted resume analysis record.
// Invariants: CredibilityScore in [0,100]; Suggestions non-empty.
type ResumeAnalysis struct {
	ID               string
	UserID           string
	Filename         string
	TextContent      string
	CredibilityScore int
	FakeSkills       []string
	Suggestions      []string
	Analysis         string // raw response text, kept for audit
	CreatedAt        time.Time
}

// InterviewQuestion is a single generated question.
type InterviewQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Type     string `json:"type"`
}

// InterviewAnswer pairs a question id with the candidate's answer.
type InterviewAnswer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// InterviewEvaluation is a persisted mock interview evaluation.
// Invariants: ReadinessScore in [0,100]; Strengths and Weaknesses hold at
// most three entries each and are never empty.
type InterviewEvaluation struct {
	ID             string
	UserID         string
	InterviewType  string
	Questions      []InterviewQuestion
	Answers        []InterviewAnswer
	Evaluation     string // raw response text, kept for audit
	ReadinessScore int
	Strengths      []string
	Weaknesses     []string
	CreatedAt      time.Time
}

// MetricSnapshot holds a user's four averages, each in [0,100]. It is derived
// fresh from history on every read and never cached.
type MetricSnapshot struct {
	AvgCodeScore          float64
	AvgResumeCredibility  float64
	AvgInterviewReadiness float64
	LearningConsistency   float64
}

// LeaderboardEntry is one ranked row. TotalPoints = AvgCodeScore * Submissions.
type LeaderboardEntry struct {
	UserID       string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	AvgCodeScore float64 `json:"avg_code_score"`
	Submissions  int     `json:"code_submissions"`
	TotalPoints  float64 `json:"total_points"`
}

// ActivityCounters are the raw per-user counters feeding achievements.
type ActivityCounters struct {
	LearningSessions int
	CodeSubmissions  int
	ResumeAnalyses   int
	InterviewsTaken  int
	LeaderboardRank  int // 0 when unranked
}

// ResponseSource produces natural-language answers for generation requests.
// Implementations: the live model client and the demo responder.
type ResponseSource interface {
	Generate(ctx Context, req GenerationRequest) (RawResponse, error)
}

// Repositories (ports)

// UserRepository persists accounts. Create returns ErrConflict when the
// email is already registered.
type UserRepository interface {
	Create(ctx Context, u User) (string, error)
	GetByEmail(ctx Context, email string) (User, error)
	GetByID(ctx Context, id string) (User, error)
	ListByRole(ctx Context, role string, limit int) ([]User, error)
}

// LearningRepository persists tutor interactions and answers consistency queries.
type LearningRepository interface {
	Create(ctx Context, e LearningEntry) (string, error)
	CountByUser(ctx Context, userID string) (int, error)
	CountByUserSince(ctx Context, userID string, since time.Time) (int, error)
}

// CodeEvaluationRepository persists code evaluations and serves the
// leaderboard aggregation.
type CodeEvaluationRepository interface {
	Create(ctx Context, e CodeEvaluation) (string, error)
	ListByUser(ctx Context, userID string, limit int) ([]CodeEvaluation, error)
	CountByUser(ctx Context, userID string) (int, error)
	AvgScoreByUser(ctx Context, userID string) (float64, error)
	Leaderboard(ctx Context, limit int) ([]LeaderboardEntry, error)
}

// ResumeAnalysisRepository persists resume analyses.
type ResumeAnalysisRepository interface {
	Create(ctx Context, a ResumeAnalysis) (string, error)
	ListByUser(ctx Context, userID string, limit int) ([]ResumeAnalysis, error)
	CountByUser(ctx Context, userID string) (int, error)
	AvgCredibilityByUser(ctx Context, userID string) (float64, error)
}

// InterviewRepository persists interview evaluations.
type InterviewRepository interface {
	Create(ctx Context, e InterviewEvaluation) (string, error)
	CountByUser(ctx Context, userID string) (int, error)
	AvgReadinessByUser(ctx Context, userID string) (float64, error)
}

// QuotaKeeper enforces per-user daily usage limits. Allow returns
// ErrRateLimited when the day's budget for the action is exhausted.
type QuotaKeeper interface {
	Allow(ctx Context, userID, action string) error
}

// ActivityEvent records one scored user activity.
type ActivityEvent struct {
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// EventPublisher emits activity events for downstream analytics.
// Publishing is best-effort; implementations must not block request handling
// on broker availability.
type EventPublisher interface {
	PublishActivity(ctx Context, ev ActivityEvent) error
}

// TextExtractor extracts plain text from an uploaded document.
type TextExtractor interface {
	ExtractPath(ctx Context, fileName, path string) (string, error)
}

// Context aliases context.Context so ports read uniformly.
type Context = context.Context
