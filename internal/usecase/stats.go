package usecase

import (
	"math"
	"time"

	"github.com/learnovatex/platform/internal/domain"
)

// Career readiness blends the four averages with fixed weights.
const (
	weightCode        = 0.30
	weightResume      = 0.25
	weightInterview   = 0.25
	weightConsistency = 0.20

	consistencyWindowDays = 30
)

// StatsService derives dashboard metrics fresh from history on every read.
type StatsService struct {
	Learning   domain.LearningRepository
	CodeEvals  domain.CodeEvaluationRepository
	Resumes    domain.ResumeAnalysisRepository
	Interviews domain.InterviewRepository
}

// NewStatsService constructs a StatsService.
func NewStatsService(learning domain.LearningRepository, code domain.CodeEvaluationRepository, resumes domain.ResumeAnalysisRepository, interviews domain.InterviewRepository) StatsService {
	return StatsService{Learning: learning, CodeEvals: code, Resumes: resumes, Interviews: interviews}
}

// Snapshot computes the user's four averages. Missing history contributes 0,
// so a brand-new user scores 0 everywhere.
func (s StatsService) Snapshot(ctx domain.Context, userID string) (domain.MetricSnapshot, error) {
	var snap domain.MetricSnapshot
	var err error
	if snap.AvgCodeScore, err = s.CodeEvals.AvgScoreByUser(ctx, userID); err != nil {
		return domain.MetricSnapshot{}, err
	}
	if snap.AvgResumeCredibility, err = s.Resumes.AvgCredibilityByUser(ctx, userID); err != nil {
		return domain.MetricSnapshot{}, err
	}
	if snap.AvgInterviewReadiness, err = s.Interviews.AvgReadinessByUser(ctx, userID); err != nil {
		return domain.MetricSnapshot{}, err
	}
	since := time.Now().UTC().AddDate(0, 0, -consistencyWindowDays)
	recent, err := s.Learning.CountByUserSince(ctx, userID, since)
	if err != nil {
		return domain.MetricSnapshot{}, err
	}
	snap.LearningConsistency = math.Min(float64(recent)*(100.0/consistencyWindowDays), 100)
	return snap, nil
}

// CareerReadiness folds a snapshot into the weighted composite score,
// rounded to two decimals. All-zero history yields exactly 0.
func CareerReadiness(snap domain.MetricSnapshot) float64 {
	score := weightCode*snap.AvgCodeScore +
		weightResume*snap.AvgResumeCredibility +
		weightInterview*snap.AvgInterviewReadiness +
		weightConsistency*snap.LearningConsistency
	return math.Round(score*100) / 100
}

// DashboardStats is the aggregate payload behind the dashboard endpoint.
type DashboardStats struct {
	Snapshot         domain.MetricSnapshot `json:"metrics"`
	CareerReadiness  float64               `json:"career_readiness_score"`
	LearningSessions int                   `json:"learning_sessions"`
	CodeSubmissions  int                   `json:"code_submissions"`
	ResumeAnalyses   int                   `json:"resume_analyses"`
	InterviewsTaken  int                   `json:"interviews_taken"`
}

// Dashboard assembles the user's full stats payload.
func (s StatsService) Dashboard(ctx domain.Context, userID string) (DashboardStats, error) {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return DashboardStats{}, err
	}
	out := DashboardStats{Snapshot: snap, CareerReadiness: CareerReadiness(snap)}
	if out.LearningSessions, err = s.Learning.CountByUser(ctx, userID); err != nil {
		return DashboardStats{}, err
	}
	if out.CodeSubmissions, err = s.CodeEvals.CountByUser(ctx, userID); err != nil {
		return DashboardStats{}, err
	}
	if out.ResumeAnalyses, err = s.Resumes.CountByUser(ctx, userID); err != nil {
		return DashboardStats{}, err
	}
	if out.InterviewsTaken, err = s.Interviews.CountByUser(ctx, userID); err != nil {
		return DashboardStats{}, err
	}
	return out, nil
}

// Leaderboard returns the ranked student rows. The limit is clamped to
// [1,100] with a default of 10.
func (s StatsService) Leaderboard(ctx domain.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	rows, err := s.CodeEvals.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].AvgCodeScore = math.Round(rows[i].AvgCodeScore*100) / 100
		rows[i].TotalPoints = math.Round(rows[i].TotalPoints*100) / 100
	}
	return rows, nil
}

// Counters collects the raw activity counters feeding achievements.
// The leaderboard rank is resolved separately by the achievement service.
func (s StatsService) Counters(ctx domain.Context, userID string) (domain.ActivityCounters, error) {
	var c domain.ActivityCounters
	var err error
	if c.LearningSessions, err = s.Learning.CountByUser(ctx, userID); err != nil {
		return domain.ActivityCounters{}, err
	}
	if c.CodeSubmissions, err = s.CodeEvals.CountByUser(ctx, userID); err != nil {
		return domain.ActivityCounters{}, err
	}
	if c.ResumeAnalyses, err = s.Resumes.CountByUser(ctx, userID); err != nil {
		return domain.ActivityCounters{}, err
	}
	if c.InterviewsTaken, err = s.Interviews.CountByUser(ctx, userID); err != nil {
		return domain.ActivityCounters{}, err
	}
	return c, nil
}
