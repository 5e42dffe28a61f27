package extract

import "strings"

// InterviewEvaluation holds the typed fields extracted from an interview
// feedback response.
type InterviewEvaluation struct {
	ReadinessScore int // [0,100], default 70
	Strengths      []string
	Weaknesses     []string
}

const defaultReadiness = 70

// Default entries used when the response carried no usable list.
var (
	FallbackStrengths  = []string{"Good communication"}
	FallbackWeaknesses = []string{"Need more technical depth"}
)

// ParseInterviewEvaluation scans raw model output for the interview markers.
// Strength and weakness lists are capped at three entries each.
func ParseInterviewEvaluation(text string) InterviewEvaluation {
	ie := InterviewEvaluation{ReadinessScore: defaultReadiness}
	for _, line := range splitLines(text) {
		if v, ok := fieldValue(line, "READINESS_SCORE:"); ok {
			ie.ReadinessScore = parseIntField(v, defaultReadiness, 0, 100)
		}
		if v, ok := fieldValue(line, "STRENGTHS:"); ok {
			ie.Strengths = capList(splitList(v), 3)
		}
		if v, ok := fieldValue(line, "WEAKNESSES:"); ok {
			ie.Weaknesses = capList(splitList(v), 3)
		}
	}
	if len(ie.Strengths) == 0 {
		ie.Strengths = append([]string(nil), FallbackStrengths...)
	}
	if len(ie.Weaknesses) == 0 {
		ie.Weaknesses = append([]string(nil), FallbackWeaknesses...)
	}
	return ie
}

// ParseInterviewQuestions extracts the ordered question list from a
// generation response. A question line starts with "Q" and separates the
// label from the question text with the first colon.
func ParseInterviewQuestions(text string) []string {
	var out []string
	for _, line := range splitLines(text) {
		t := strings.TrimSpace(line)
		if !strings.HasPrefix(t, "Q") {
			continue
		}
		parts := strings.SplitN(t, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if q := strings.TrimSpace(parts[1]); q != "" {
			out = append(out, q)
		}
	}
	return out
}
