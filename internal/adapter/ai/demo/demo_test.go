package demo_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnovatex/platform/internal/adapter/ai/demo"
	"github.com/learnovatex/platform/internal/domain"
	"github.com/learnovatex/platform/internal/extract"
)

func TestGenerateNeverFails(t *testing.T) {
	d := demo.New()
	for _, dom := range []domain.Domain{domain.DomainTutor, domain.DomainCode, domain.DomainResume, domain.DomainInterview} {
		resp, err := d.Generate(context.Background(), domain.GenerationRequest{Prompt: "anything", Domain: dom})
		require.NoError(t, err)
		assert.True(t, resp.Succeeded)
		assert.Equal(t, domain.OriginDemo, resp.Source)
		assert.NotEmpty(t, resp.Text)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	d := demo.New()
	a := d.Render(domain.DomainCode, "def add(a, b): return a + b")
	b := d.Render(domain.DomainCode, "completely different prompt")
	assert.Equal(t, a, b)
}

func TestInterviewTemplateSelection(t *testing.T) {
	d := demo.New()

	gen := d.Render(domain.DomainInterview, "Generate 5 technical interview questions for a backend engineer position.")
	assert.Contains(t, gen, "Q1:")
	assert.Contains(t, gen, "Q5:")

	eval := d.Render(domain.DomainInterview, "Q1: Tell me about yourself.\nAnswer: I am a developer.")
	assert.Contains(t, eval, "READINESS_SCORE:")
	assert.NotContains(t, eval, "Q2:")
}

func TestTemplatesParseCleanly(t *testing.T) {
	d := demo.New()

	code := extract.ParseCodeEvaluation(d.Render(domain.DomainCode, ""))
	assert.True(t, code.Passed)
	assert.Equal(t, 85, code.Score)
	assert.Equal(t, 8, code.Quality)
	assert.True(t, strings.HasPrefix(code.TimeComplexity, "O(n)"))

	resume := extract.ParseResumeAnalysis(d.Render(domain.DomainResume, ""))
	assert.Equal(t, 78, resume.CredibilityScore)
	assert.Empty(t, resume.FakeSkills)
	assert.Len(t, resume.Suggestions, 4)

	questions := extract.ParseInterviewQuestions(d.Render(domain.DomainInterview, "generate questions"))
	assert.Len(t, questions, 5)

	eval := extract.ParseInterviewEvaluation(d.Render(domain.DomainInterview, "Q1: x\nAnswer: y"))
	assert.Equal(t, 75, eval.ReadinessScore)
	assert.Len(t, eval.Strengths, 3)
	assert.Len(t, eval.Weaknesses, 3)
}
