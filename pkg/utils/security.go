// pkg/utils/security.go
package utils

import (
	"regexp"
	"strings"
)

// Patterns that tend to show up in prompt-injection attempts. Context text
// from upstream providers is screened with these before it is allowed into
// an LLM prompt.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(ignore|forget|disregard)\s+(previous|above|all|these|your)\s+(instructions?|prompts?|rules?)\b`),
	regexp.MustCompile(`(?i)\b(act|behave|pretend|roleplay)\s+as\s+(a|an)\s+\w+`),
	regexp.MustCompile(`(?i)\bnow\s+(respond|answer|say|tell|write|generate)\b`),
	regexp.MustCompile(`(?i)<\s*/?\s*(system|assistant|user)\s*>`),
	regexp.MustCompile(`(?i)\b(jailbreak|bypass|override)\b.*\b(instructions?|rules?|filters?)\b`),
	regexp.MustCompile("```\\s*(python|javascript|bash|sh|sql)"),
	regexp.MustCompile(`(?i)\bi\s+am\s+(your\s+)?(creator|developer|admin|owner)\b`),
}

var suspiciousKeywords = []string{"system", "ignore", "override", "jailbreak", "bypass", "prompt", "instruction"}

var controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
var collapseWS = regexp.MustCompile(`\s+`)

// SanitizeInput trims, strips control characters and collapses whitespace.
// Returns "" when the input exceeds maxLen; callers treat that as invalid.
func SanitizeInput(text string, maxLen int) string {
	if len(text) > maxLen {
		return ""
	}
	s := controlChars.ReplaceAllString(strings.TrimSpace(text), "")
	return strings.TrimSpace(collapseWS.ReplaceAllString(s, " "))
}

// DetectPromptInjection reports whether text looks like an attempt to steer
// the model, along with the patterns that fired.
func DetectPromptInjection(text string) (bool, []string) {
	var matched []string
	for _, re := range injectionPatterns {
		if re.MatchString(text) {
			matched = append(matched, re.String())
		}
	}

	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range suspiciousKeywords {
		hits += strings.Count(lower, kw)
	}
	if hits > 3 {
		matched = append(matched, "excessive_suspicious_keywords")
	}

	return len(matched) > 0, matched
}
