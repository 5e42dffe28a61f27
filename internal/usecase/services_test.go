package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnovatex/platform/internal/domain"
)

func TestTutorAsk(t *testing.T) {
	ai := &fakeResponder{text: "Recursion is a function calling itself."}
	learning := &memLearning{}
	events := &recordedEvents{}
	svc := NewTutorService(ai, learning, openQuota{}, events)

	entry, origin, err := svc.Ask(context.Background(), "u-1", "recursion", "beginner", "What is recursion?")
	require.NoError(t, err)
	assert.Equal(t, domain.OriginDemo, origin)
	assert.Equal(t, "Recursion is a function calling itself.", entry.Response)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, domain.DomainTutor, ai.lastReq.Domain)
	require.Len(t, learning.entries, 1)
	require.Len(t, events.events, 1)
	assert.Equal(t, "learning_session", events.events[0].Kind)
}

func TestTutorAskDefaults(t *testing.T) {
	svc := NewTutorService(&fakeResponder{text: "ok"}, &memLearning{}, openQuota{}, &recordedEvents{})
	entry, _, err := svc.Ask(context.Background(), "u-1", "", "", "How do maps work?")
	require.NoError(t, err)
	assert.Equal(t, "general", entry.Topic)
	assert.Equal(t, "beginner", entry.Difficulty)
}

func TestTutorAskEmptyQuestion(t *testing.T) {
	svc := NewTutorService(&fakeResponder{}, &memLearning{}, openQuota{}, &recordedEvents{})
	_, _, err := svc.Ask(context.Background(), "u-1", "maps", "beginner", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestTutorAskQuotaExceeded(t *testing.T) {
	ai := &fakeResponder{}
	svc := NewTutorService(ai, &memLearning{}, deniedQuota{}, &recordedEvents{})
	_, _, err := svc.Ask(context.Background(), "u-1", "maps", "beginner", "How?")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Zero(t, ai.numCalls, "no AI spend past the quota gate")
}

func TestCodeEvaluate(t *testing.T) {
	ai := &fakeResponder{text: "CORRECT: Yes\nSCORE: 92\nQUALITY: 9\nTIME_COMPLEXITY: O(n)\nSPACE_COMPLEXITY: O(1)\nSUGGESTIONS: none"}
	repo := &memCodeEvals{}
	events := &recordedEvents{}
	svc := NewCodeService(ai, repo, openQuota{}, events)

	eval, origin, err := svc.Evaluate(context.Background(), "u-1", "two-sum", "go", "func solve() {}")
	require.NoError(t, err)
	assert.Equal(t, domain.OriginDemo, origin)
	assert.True(t, eval.Passed)
	assert.Equal(t, 92, eval.Score)
	assert.Equal(t, 9, eval.Quality)
	assert.Equal(t, "O(n)", eval.TimeComplexity)
	require.Len(t, repo.evals, 1)
	assert.Equal(t, ai.text, repo.evals[0].Evaluation, "raw response stored for audit")
	require.Len(t, events.events, 1)
	assert.Equal(t, 92, events.events[0].Score)
}

func TestCodeEvaluateUnparsableDefaults(t *testing.T) {
	ai := &fakeResponder{text: "The model rambled with no markers at all."}
	svc := NewCodeService(ai, &memCodeEvals{}, openQuota{}, &recordedEvents{})

	eval, _, err := svc.Evaluate(context.Background(), "u-1", "two-sum", "go", "func solve() {}")
	require.NoError(t, err)
	assert.False(t, eval.Passed)
	assert.Equal(t, 50, eval.Score)
	assert.Equal(t, 5, eval.Quality)
}

func TestCodeEvaluateEmptyCode(t *testing.T) {
	svc := NewCodeService(&fakeResponder{}, &memCodeEvals{}, openQuota{}, &recordedEvents{})
	_, _, err := svc.Evaluate(context.Background(), "u-1", "two-sum", "go", "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestResumeAnalyzeText(t *testing.T) {
	ai := &fakeResponder{text: "CREDIBILITY_SCORE: 81\nFAKE_SKILLS: None detected\nSUGGESTIONS:\n- Add metrics\n- Trim buzzwords"}
	repo := &memResumes{}
	svc := NewResumeService(ai, repo, staticExtractor{}, openQuota{}, &recordedEvents{})

	analysis, _, err := svc.AnalyzeText(context.Background(), "u-1", "cv.pdf", "Jane Doe\nEngineer")
	require.NoError(t, err)
	assert.Equal(t, 81, analysis.CredibilityScore)
	assert.Empty(t, analysis.FakeSkills)
	assert.Equal(t, []string{"Add metrics", "Trim buzzwords"}, analysis.Suggestions)
	require.Len(t, repo.analyses, 1)
}

func TestResumeAnalyzeFile(t *testing.T) {
	ai := &fakeResponder{text: "CREDIBILITY_SCORE: 64"}
	svc := NewResumeService(ai, &memResumes{}, staticExtractor{text: "extracted resume text"}, openQuota{}, &recordedEvents{})

	analysis, _, err := svc.AnalyzeFile(context.Background(), "u-1", "cv.pdf", "/tmp/upload-1")
	require.NoError(t, err)
	assert.Equal(t, 64, analysis.CredibilityScore)
	assert.Equal(t, "extracted resume text", analysis.TextContent)
	// Defaults fill in when the response carries no suggestion list.
	assert.NotEmpty(t, analysis.Suggestions)
}

func TestResumeAnalyzeEmptyText(t *testing.T) {
	svc := NewResumeService(&fakeResponder{}, &memResumes{}, staticExtractor{}, openQuota{}, &recordedEvents{})
	_, _, err := svc.AnalyzeText(context.Background(), "u-1", "cv.pdf", "\x00\x00")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestInterviewStart(t *testing.T) {
	ai := &fakeResponder{text: "Q1: First?\nQ2: Second?\nQ3: Third?\nQ4: Fourth?\nQ5: Fifth?"}
	svc := NewInterviewService(ai, &memInterviews{}, openQuota{}, &recordedEvents{})

	questions, origin, err := svc.Start(context.Background(), "u-1", "technical", "backend engineer")
	require.NoError(t, err)
	assert.Equal(t, domain.OriginDemo, origin)
	require.Len(t, questions, 5)
	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, "First?", questions[0].Question)
	assert.Equal(t, "technical", questions[0].Type)
}

func TestInterviewStartQuotaExceeded(t *testing.T) {
	svc := NewInterviewService(&fakeResponder{}, &memInterviews{}, deniedQuota{}, &recordedEvents{})
	_, _, err := svc.Start(context.Background(), "u-1", "technical", "")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestInterviewEvaluate(t *testing.T) {
	ai := &fakeResponder{text: "READINESS_SCORE: 82\nSTRENGTHS: Clear thinking, Calm delivery\nWEAKNESSES: Shallow on databases"}
	repo := &memInterviews{}
	svc := NewInterviewService(ai, repo, openQuota{}, &recordedEvents{})

	questions := []domain.InterviewQuestion{{ID: "q1", Question: "Tell me about a project.", Type: "behavioral"}}
	answers := []domain.InterviewAnswer{{QuestionID: "q1", Answer: "I built a platform."}}

	eval, _, err := svc.Evaluate(context.Background(), "u-1", "behavioral", questions, answers)
	require.NoError(t, err)
	assert.Equal(t, 82, eval.ReadinessScore)
	assert.Equal(t, []string{"Clear thinking", "Calm delivery"}, eval.Strengths)
	assert.Equal(t, []string{"Shallow on databases"}, eval.Weaknesses)
	require.Len(t, repo.evals, 1)
}

func TestInterviewEvaluateMissingInput(t *testing.T) {
	svc := NewInterviewService(&fakeResponder{}, &memInterviews{}, openQuota{}, &recordedEvents{})
	_, _, err := svc.Evaluate(context.Background(), "u-1", "technical", nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
