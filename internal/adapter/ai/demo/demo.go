// Package demo provides the deterministic offline response source.
//
// Templates follow the structured-field contract consumed by the extract
// package, so demo output always parses into fully-populated records.
package demo

import (
	"strings"

	"github.com/learnovatex/platform/internal/domain"
)

// Responder implements domain.ResponseSource with canned answers keyed by
// domain. It is pure: the same request always yields the same text.
type Responder struct{}

// New constructs a demo Responder.
func New() *Responder { return &Responder{} }

// Generate returns the canned answer for the request's domain. It never fails.
func (d *Responder) Generate(_ domain.Context, req domain.GenerationRequest) (domain.RawResponse, error) {
	return domain.RawResponse{
		Text:      d.Render(req.Domain, req.Prompt),
		Source:    domain.OriginDemo,
		Succeeded: true,
	}, nil
}

// Render picks the template for a domain. For the interview domain the
// prompt decides between question generation and answer evaluation: prompts
// that already quote questions contain the literal "Q1".
func (d *Responder) Render(dom domain.Domain, prompt string) string {
	switch dom {
	case domain.DomainCode:
		return codeTemplate
	case domain.DomainResume:
		return resumeTemplate
	case domain.DomainInterview:
		if strings.Contains(strings.ToLower(prompt), "generate") || !strings.Contains(prompt, "Q1") {
			return interviewQuestionsTemplate
		}
		return interviewEvaluationTemplate
	default:
		return tutorTemplate
	}
}

const codeTemplate = `CORRECT: Yes
TIME_COMPLEXITY: O(n) - Linear time complexity
SPACE_COMPLEXITY: O(1) - Constant space complexity
QUALITY: 8
SCORE: 85
SUGGESTIONS:
- Consider adding input validation
- Add docstrings for better documentation
- Use more descriptive variable names
- Consider edge cases like empty inputs

Great job! Your code demonstrates solid programming practices. The logic is correct and efficient.
To improve further, consider adding error handling and unit tests.`

const resumeTemplate = `CREDIBILITY_SCORE: 78
FAKE_SKILLS: None detected
SUGGESTIONS:
- Add quantifiable achievements with metrics
- Include more technical keywords for ATS optimization
- Add a professional summary section
- Include relevant certifications
- Improve formatting for better readability

ANALYSIS: The resume shows good foundational experience. Skills listed appear genuine and relevant to the target role.
Consider adding specific project outcomes and metrics to strengthen credibility.
The education section is well-presented. Work experience could benefit from more action verbs and quantifiable results.`

const interviewQuestionsTemplate = `Q1: Tell me about a challenging project you worked on and how you overcame obstacles.
Q2: How do you stay updated with the latest technologies in your field?
Q3: Describe your approach to debugging a complex issue in production.
Q4: How do you handle disagreements with team members on technical decisions?
Q5: Where do you see yourself professionally in 5 years?`

const interviewEvaluationTemplate = `READINESS_SCORE: 75
STRENGTHS: Good communication skills, Technical knowledge, Problem-solving ability
WEAKNESSES: Could provide more specific examples, Need deeper technical explanations, Consider STAR method for behavioral questions

FEEDBACK: Overall, you demonstrated solid interview skills. Your answers show good understanding of concepts.
To improve: Use specific examples from your experience, quantify achievements where possible, and practice the STAR method
(Situation, Task, Action, Result) for behavioral questions. Consider preparing 2-3 strong project stories you can adapt to different questions.`

const tutorTemplate = `Great question! Let me explain this concept step by step:

**Overview:**
This is a fundamental concept in programming that you'll use frequently.

**Key Points:**
1. **Definition**: Understanding the core concept is essential for building more complex solutions.

2. **How it works**:
   - The process begins with input validation
   - Data is then processed according to the algorithm
   - Results are returned in a structured format

3. **Best Practices**:
   - Always validate inputs
   - Use meaningful variable names
   - Add comments for complex logic
   - Test edge cases

4. **Common Mistakes to Avoid**:
   - Don't skip input validation
   - Avoid deeply nested code
   - Remember to handle errors gracefully

**Practice Exercise:**
Try implementing a simple version of this concept with the following requirements:
- Accept user input
- Validate the input
- Process and return results

Would you like me to elaborate on any specific part?`
