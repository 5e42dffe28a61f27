package extract

import "strings"

// CodeEvaluation holds the typed fields extracted from a code review response.
type CodeEvaluation struct {
	Passed          bool
	Score           int // [0,100], default 50 when unparsable
	Quality         int // [1,10], default 5 when unparsable
	TimeComplexity  string
	SpaceComplexity string
	Suggestions     string
}

const (
	defaultCodeScore   = 50
	defaultCodeQuality = 5
)

// ParseCodeEvaluation scans raw model output for the code evaluation markers.
// The correctness check is an exact substring match; both the spaced and
// unspaced forms are accepted, without case folding.
func ParseCodeEvaluation(text string) CodeEvaluation {
	ev := CodeEvaluation{
		Passed:  strings.Contains(text, "CORRECT: Yes") || strings.Contains(text, "CORRECT:Yes"),
		Score:   defaultCodeScore,
		Quality: defaultCodeQuality,
	}
	for _, line := range splitLines(text) {
		if v, ok := fieldValue(line, "SCORE:"); ok {
			ev.Score = parseIntField(v, defaultCodeScore, 0, 100)
		}
		if v, ok := fieldValue(line, "QUALITY:"); ok {
			ev.Quality = parseIntField(v, defaultCodeQuality, 1, 10)
		}
		if v, ok := fieldValue(line, "TIME_COMPLEXITY:"); ok {
			ev.TimeComplexity = v
		}
		if v, ok := fieldValue(line, "SPACE_COMPLEXITY:"); ok {
			ev.SpaceComplexity = v
		}
		if v, ok := fieldValue(line, "SUGGESTIONS:"); ok {
			ev.Suggestions = v
		}
	}
	return ev
}
