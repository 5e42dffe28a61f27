package usecase

import (
	"fmt"
	"time"

	"github.com/learnovatex/platform/internal/domain"
)

// fakeResponder echoes a scripted text as a demo-origin response.
type fakeResponder struct {
	text     string
	lastReq  domain.GenerationRequest
	numCalls int
}

func (f *fakeResponder) Respond(_ domain.Context, req domain.GenerationRequest) domain.RawResponse {
	f.lastReq = req
	f.numCalls++
	return domain.RawResponse{Text: f.text, Source: domain.OriginDemo, Succeeded: true}
}

type memLearning struct {
	entries []domain.LearningEntry
}

func (m *memLearning) Create(_ domain.Context, e domain.LearningEntry) (string, error) {
	e.ID = fmt.Sprintf("l-%d", len(m.entries)+1)
	m.entries = append(m.entries, e)
	return e.ID, nil
}

func (m *memLearning) CountByUser(_ domain.Context, userID string) (int, error) {
	n := 0
	for _, e := range m.entries {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *memLearning) CountByUserSince(_ domain.Context, userID string, since time.Time) (int, error) {
	n := 0
	for _, e := range m.entries {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type memCodeEvals struct {
	evals []domain.CodeEvaluation
	board []domain.LeaderboardEntry
}

func (m *memCodeEvals) Create(_ domain.Context, e domain.CodeEvaluation) (string, error) {
	e.ID = fmt.Sprintf("c-%d", len(m.evals)+1)
	m.evals = append(m.evals, e)
	return e.ID, nil
}

func (m *memCodeEvals) ListByUser(_ domain.Context, userID string, limit int) ([]domain.CodeEvaluation, error) {
	var out []domain.CodeEvaluation
	for _, e := range m.evals {
		if e.UserID == userID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memCodeEvals) CountByUser(_ domain.Context, userID string) (int, error) {
	n := 0
	for _, e := range m.evals {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *memCodeEvals) AvgScoreByUser(_ domain.Context, userID string) (float64, error) {
	sum, n := 0, 0
	for _, e := range m.evals {
		if e.UserID == userID {
			sum += e.Score
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (m *memCodeEvals) Leaderboard(_ domain.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if len(m.board) > limit {
		return m.board[:limit], nil
	}
	return m.board, nil
}

type memResumes struct {
	analyses []domain.ResumeAnalysis
}

func (m *memResumes) Create(_ domain.Context, a domain.ResumeAnalysis) (string, error) {
	a.ID = fmt.Sprintf("r-%d", len(m.analyses)+1)
	m.analyses = append(m.analyses, a)
	return a.ID, nil
}

func (m *memResumes) ListByUser(_ domain.Context, userID string, limit int) ([]domain.ResumeAnalysis, error) {
	var out []domain.ResumeAnalysis
	for _, a := range m.analyses {
		if a.UserID == userID && len(out) < limit {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memResumes) CountByUser(_ domain.Context, userID string) (int, error) {
	n := 0
	for _, a := range m.analyses {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *memResumes) AvgCredibilityByUser(_ domain.Context, userID string) (float64, error) {
	sum, n := 0, 0
	for _, a := range m.analyses {
		if a.UserID == userID {
			sum += a.CredibilityScore
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

type memInterviews struct {
	evals []domain.InterviewEvaluation
}

func (m *memInterviews) Create(_ domain.Context, e domain.InterviewEvaluation) (string, error) {
	e.ID = fmt.Sprintf("i-%d", len(m.evals)+1)
	m.evals = append(m.evals, e)
	return e.ID, nil
}

func (m *memInterviews) CountByUser(_ domain.Context, userID string) (int, error) {
	n := 0
	for _, e := range m.evals {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *memInterviews) AvgReadinessByUser(_ domain.Context, userID string) (float64, error) {
	sum, n := 0, 0
	for _, e := range m.evals {
		if e.UserID == userID {
			sum += e.ReadinessScore
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

type memUsers struct {
	users []domain.User
}

func (m *memUsers) Create(_ domain.Context, u domain.User) (string, error) {
	for _, e := range m.users {
		if e.Email == u.Email {
			return "", domain.ErrConflict
		}
	}
	u.ID = fmt.Sprintf("u-%d", len(m.users)+1)
	m.users = append(m.users, u)
	return u.ID, nil
}

func (m *memUsers) GetByEmail(_ domain.Context, email string) (domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *memUsers) GetByID(_ domain.Context, id string) (domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *memUsers) ListByRole(_ domain.Context, role string, limit int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		if u.Role == role && len(out) < limit {
			out = append(out, u)
		}
	}
	return out, nil
}

// openQuota never limits; deniedQuota always limits.
type openQuota struct{}

func (openQuota) Allow(domain.Context, string, string) error { return nil }

type deniedQuota struct{}

func (deniedQuota) Allow(domain.Context, string, string) error { return domain.ErrRateLimited }

type recordedEvents struct {
	events []domain.ActivityEvent
}

func (r *recordedEvents) PublishActivity(_ domain.Context, ev domain.ActivityEvent) error {
	r.events = append(r.events, ev)
	return nil
}

type staticExtractor struct {
	text string
	err  error
}

func (s staticExtractor) ExtractPath(domain.Context, string, string) (string, error) {
	return s.text, s.err
}
