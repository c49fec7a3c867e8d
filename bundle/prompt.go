package bundle

// Prompt length thresholds.
const (
	detailedPromptLen   = 50
	complexPromptLen    = 150
	fullComplexityLen   = 200
	PromptWarnLimit     = 1000
	PromptCriticalLimit = 2000
)

// Complexity is a coarse label for how much a prompt asks for.
type Complexity string

const (
	ComplexitySimple   Complexity = "Simple"
	ComplexityDetailed Complexity = "Detailed"
	ComplexityComplex  Complexity = "Complex"
)

// PromptAnalysis summarizes a prompt before it is sent to the generator.
type PromptAnalysis struct {
	Length     int        `json:"length"`
	Complexity Complexity `json:"complexity"`
	Percent    float64    `json:"percent"` // 0..100
	Warning    string     `json:"warning,omitempty"`
}

// AnalyzePrompt rates prompt by its length in bytes.
func AnalyzePrompt(prompt string) PromptAnalysis {
	n := len(prompt)
	a := PromptAnalysis{
		Length:     n,
		Complexity: ComplexitySimple,
		Percent:    min(100, float64(n)/fullComplexityLen*100),
	}

	if n > detailedPromptLen {
		a.Complexity = ComplexityDetailed
	}
	if n > complexPromptLen {
		a.Complexity = ComplexityComplex
	}

	switch {
	case n > PromptCriticalLimit:
		a.Warning = "Prompt is very long. Results may be truncated or less accurate."
	case n > PromptWarnLimit:
		a.Warning = "Prompt is long. Consider simplifying for better results."
	}
	return a
}
