package bundle

import "strings"

// Failure is a user-facing explanation of a failed generation.
type Failure struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Tip     string `json:"tip"`
}

// ClassifyFailure maps an error from the generation service, or from
// decoding its response, to a Failure. The error text is matched for HTTP
// status codes and well-known markers; the first match wins.
func ClassifyFailure(err error) Failure {
	if err == nil {
		return Failure{}
	}
	msg := err.Error()
	if msg == "" {
		msg = "Unknown error"
	}

	switch {
	case strings.Contains(msg, "400"):
		return Failure{
			Title:   "Invalid Request",
			Message: "The AI could not process this prompt.",
			Tip:     "Check if your prompt is too long or contains prohibited content.",
		}
	case strings.Contains(msg, "429"):
		return Failure{
			Title:   "Rate Limit Exceeded",
			Message: "You are generating too fast.",
			Tip:     "Please wait a minute before trying again.",
		}
	case strings.Contains(msg, "503"), strings.Contains(msg, "500"):
		return Failure{
			Title:   "AI Service Unavailable",
			Message: "The AI service is temporarily down.",
			Tip:     "Please try again in a few minutes.",
		}
	case strings.Contains(msg, "JSON"):
		return Failure{
			Title:   "Generation Glitch",
			Message: "The AI returned malformed code.",
			Tip:     "Try again. If it persists, simplify your prompt.",
		}
	case strings.Contains(msg, "SAFETY"):
		return Failure{
			Title:   "Safety Block",
			Message: "The request violated safety policies.",
			Tip:     "Modify your prompt to avoid sensitive topics.",
		}
	}
	return Failure{
		Title:   "Unexpected Error",
		Message: msg,
		Tip:     "Check your internet connection or try again.",
	}
}
