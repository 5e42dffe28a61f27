package extract

import "strings"

// ResumeAnalysis holds the typed fields extracted from a resume review response.
type ResumeAnalysis struct {
	CredibilityScore int // [0,100], default 70
	FakeSkills       []string
	Suggestions      []string
}

const defaultCredibility = 70

// FallbackSuggestions are substituted when no bullet suggestions are found.
var FallbackSuggestions = []string{
	"Improve technical skills section",
	"Add measurable achievements",
}

// ParseResumeAnalysis scans raw model output for the resume analysis markers.
// Suggestions are collected from up to four bullet lines immediately
// following the SUGGESTIONS: marker rather than from the marker line itself.
func ParseResumeAnalysis(text string) ResumeAnalysis {
	ra := ResumeAnalysis{CredibilityScore: defaultCredibility}
	lines := splitLines(text)
	for i, line := range lines {
		if v, ok := fieldValue(line, "CREDIBILITY_SCORE:"); ok {
			ra.CredibilityScore = parseIntField(v, defaultCredibility, 0, 100)
		}
		if v, ok := fieldValue(line, "FAKE_SKILLS:"); ok {
			ra.FakeSkills = splitList(v)
		}
		if _, ok := fieldValue(line, "SUGGESTIONS:"); ok {
			for j := i + 1; j < len(lines) && j <= i+4; j++ {
				if t := strings.TrimSpace(lines[j]); isBullet(t) {
					ra.Suggestions = append(ra.Suggestions, stripBullet(t))
				}
			}
		}
	}
	if len(ra.Suggestions) == 0 {
		ra.Suggestions = append([]string(nil), FallbackSuggestions...)
	}
	return ra
}
