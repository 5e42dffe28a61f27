package httpserver

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/learnovatex/platform/internal/adapter/ai"
	"github.com/learnovatex/platform/internal/config"
	"github.com/learnovatex/platform/internal/domain"
	"github.com/learnovatex/platform/internal/usecase"
)

// Server bundles the services behind the REST handlers.
type Server struct {
	Cfg          config.Config
	Auth         usecase.AuthService
	Tutor        usecase.TutorService
	Code         usecase.CodeService
	Resume       usecase.ResumeService
	Interview    usecase.InterviewService
	Stats        usecase.StatsService
	Achievements usecase.AchievementService
	AIStatus     func() ai.Status
}

// NewServer constructs a Server.
func NewServer(cfg config.Config, auth usecase.AuthService, tutor usecase.TutorService, code usecase.CodeService, resume usecase.ResumeService, interview usecase.InterviewService, stats usecase.StatsService, achievements usecase.AchievementService, aiStatus func() ai.Status) *Server {
	return &Server{
		Cfg: cfg, Auth: auth, Tutor: tutor, Code: code, Resume: resume,
		Interview: interview, Stats: stats, Achievements: achievements, AIStatus: aiStatus,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type authResponse struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}

func toUserPayload(u domain.User) userPayload {
	return userPayload{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// HandleRegister creates an account and returns a bearer token.
func (s *Server) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, details)
			return
		}
		u, token, err := s.Auth.Register(r.Context(), req.Email, req.Password, req.Name, req.Role)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusCreated, authResponse{User: toUserPayload(u), Token: token})
	}
}

// HandleLogin verifies credentials and returns a bearer token.
func (s *Server) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, details)
			return
		}
		u, token, err := s.Auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, authResponse{User: toUserPayload(u), Token: token})
	}
}

// HandleMe returns the authenticated user's profile.
func (s *Server) HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.Auth.Users.GetByID(r.Context(), UserIDFrom(r.Context()))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toUserPayload(u))
	}
}

type tutorRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Question   string `json:"question" validate:"required"`
}

// HandleTutorChat answers a tutoring question.
func (s *Server) HandleTutorChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tutorRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, details)
			return
		}
		entry, origin, err := s.Tutor.Ask(r.Context(), UserIDFrom(r.Context()), req.Topic, req.Difficulty, req.Question)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":       entry.ID,
			"response": entry.Response,
			"topic":    entry.Topic,
			"source":   origin,
		})
	}
}

type codeRequest struct {
	ProblemID string `json:"problem_id" validate:"required"`
	Language  string `json:"language"`
	Code      string `json:"code" validate:"required"`
}

type codeEvalPayload struct {
	ID              string                `json:"id"`
	Passed          bool                  `json:"passed"`
	Score           int                   `json:"score"`
	Quality         int                   `json:"quality"`
	TimeComplexity  string                `json:"time_complexity"`
	SpaceComplexity string                `json:"space_complexity"`
	Suggestions     string                `json:"suggestions"`
	Source          domain.ResponseOrigin `json:"source"`
}

// HandleCodeEvaluate reviews a code submission.
func (s *Server) HandleCodeEvaluate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req codeRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, details)
			return
		}
		eval, origin, err := s.Code.Evaluate(r.Context(), UserIDFrom(r.Context()), req.ProblemID, req.Language, req.Code)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, codeEvalPayload{
			ID: eval.ID, Passed: eval.Passed, Score: eval.Score, Quality: eval.Quality,
			TimeComplexity: eval.TimeComplexity, SpaceComplexity: eval.SpaceComplexity,
			Suggestions: eval.Suggestions, Source: origin,
		})
	}
}

// HandleCodeHistory lists the user's recent evaluations.
func (s *Server) HandleCodeHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		evals, err := s.Code.History(r.Context(), UserIDFrom(r.Context()), limit)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		out := make([]codeEvalPayload, 0, len(evals))
		for _, e := range evals {
			out = append(out, codeEvalPayload{
				ID: e.ID, Passed: e.Passed, Score: e.Score, Quality: e.Quality,
				TimeComplexity: e.TimeComplexity, SpaceComplexity: e.SpaceComplexity,
				Suggestions: e.Suggestions,
			})
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"evaluations": out})
	}
}

// Upload types accepted for resume analysis.
var allowedResumeTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

// HandleResumeAnalyze accepts a multipart resume upload and analyzes it.
func (s *Server) HandleResumeAnalyze() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxBytes := s.Cfg.MaxUploadMB << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			writeError(w, r, fmt.Errorf("%w: upload too large or malformed", domain.ErrInvalidArgument), nil)
			return
		}
		file, header, err := r.FormFile("resume")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume file required", domain.ErrInvalidArgument), nil)
			return
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, r, fmt.Errorf("op=resume.read_upload: %w", err), nil)
			return
		}
		mt := mimetype.Detect(data)
		if !allowedResumeTypes[mt.String()] {
			writeError(w, r, fmt.Errorf("%w: unsupported file type %s", domain.ErrInvalidArgument, mt.String()), nil)
			return
		}

		tmp, err := os.CreateTemp("", "resume-*"+filepath.Ext(header.Filename))
		if err != nil {
			writeError(w, r, fmt.Errorf("op=resume.tempfile: %w", err), nil)
			return
		}
		defer func() { _ = os.Remove(tmp.Name()) }()
		if _, err := tmp.Write(data); err != nil {
			_ = tmp.Close()
			writeError(w, r, fmt.Errorf("op=resume.tempfile: %w", err), nil)
			return
		}
		_ = tmp.Close()

		analysis, origin, err := s.Resume.AnalyzeFile(r.Context(), UserIDFrom(r.Context()), header.Filename, tmp.Name())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		if analysis.FakeSkills == nil {
			analysis.FakeSkills = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":                analysis.ID,
			"credibility_score": analysis.CredibilityScore,
			"fake_skills":       analysis.FakeSkills,
			"suggestions":       analysis.Suggestions,
			"source":            origin,
		})
	}
}

// HandleResumeHistory lists the user's recent analyses.
func (s *Server) HandleResumeHistory() http.HandlerFunc {
	type entry struct {
		ID               string   `json:"id"`
		Filename         string   `json:"filename"`
		CredibilityScore int      `json:"credibility_score"`
		FakeSkills       []string `json:"fake_skills"`
		Suggestions      []string `json:"suggestions"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		analyses, err := s.Resume.History(r.Context(), UserIDFrom(r.Context()), limit)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		out := make([]entry, 0, len(analyses))
		for _, a := range analyses {
			if a.FakeSkills == nil {
				a.FakeSkills = []string{}
			}
			out = append(out, entry{
				ID: a.ID, Filename: a.Filename, CredibilityScore: a.CredibilityScore,
				FakeSkills: a.FakeSkills, Suggestions: a.Suggestions,
			})
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"analyses": out})
	}
}

type interviewStartRequest struct {
	Type string `json:"type"`
	Role string `json:"role"`
}

// HandleInterviewStart generates a mock interview question set.
func (s *Server) HandleInterviewStart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req interviewStartRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, details)
			return
		}
		questions, origin, err := s.Interview.Start(r.Context(), UserIDFrom(r.Context()), req.Type, req.Role)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions, "source": origin})
	}
}

type interviewEvaluateRequest struct {
	Type      string                     `json:"type"`
	Questions []domain.InterviewQuestion `json:"questions" validate:"required,min=1"`
	Answers   []domain.InterviewAnswer   `json:"answers" validate:"required,min=1"`
}

// HandleInterviewEvaluate scores a completed mock interview.
func (s *Server) HandleInterviewEvaluate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req interviewEvaluateRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, details)
			return
		}
		eval, origin, err := s.Interview.Evaluate(r.Context(), UserIDFrom(r.Context()), req.Type, req.Questions, req.Answers)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":              eval.ID,
			"readiness_score": eval.ReadinessScore,
			"strengths":       eval.Strengths,
			"weaknesses":      eval.Weaknesses,
			"source":          origin,
		})
	}
}

// HandleDashboardStats returns the user's aggregate metrics.
func (s *Server) HandleDashboardStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Stats.Dashboard(r.Context(), UserIDFrom(r.Context()))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// HandleAchievements evaluates the user's badges.
func (s *Server) HandleAchievements() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, points, err := s.Achievements.Evaluate(r.Context(), UserIDFrom(r.Context()))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"achievements": list,
			"total_points": points,
		})
	}
}

// HandleLeaderboard returns the ranked student rows.
func (s *Server) HandleLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		rows, err := s.Stats.Leaderboard(r.Context(), limit)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		if rows == nil {
			rows = []domain.LeaderboardEntry{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": rows})
	}
}

// HandleHealth reports liveness with the AI layer status.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"ai":     s.AIStatus(),
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// HandleStatus reports deployment configuration for operators.
func (s *Server) HandleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := s.AIStatus()
		LoggerFrom(r).Debug("status requested", slog.String("ai_mode", st.Mode))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"app":     s.Cfg.AppName,
			"env":     s.Cfg.AppEnv,
			"ai":      st,
			"storage": s.Cfg.StorageBackend(),
		})
	}
}
