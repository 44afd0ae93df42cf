package llm

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json|python)?\\s*(.*?)\\s*```")

// StripCodeFences removes markdown code fences around a model answer.
func StripCodeFences(s string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(s, "$1"))
}
