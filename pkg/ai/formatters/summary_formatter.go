// Package formatters builds the ai-service prompts for CV suggestions and
// reads the answers back.
package formatters

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SummaryRequest asks for a professional summary.
type SummaryRequest struct {
	FullName       string `json:"full_name"`
	CurrentSummary string `json:"current_summary"`
	Context        string `json:"context,omitempty"`
}

// SummaryPrompt is the chat input for a summary suggestion. An empty
// language leaves the answer in the language of the request.
func SummaryPrompt(req SummaryRequest, language string) string {
	current := strings.TrimSpace(req.CurrentSummary)
	if current == "" {
		current = "None provided"
	}
	instr := "Write a compelling 2-3 sentence professional summary for a CV that highlights key strengths, experience and value proposition. " +
		"Keep it under 300 characters. Return ONLY a JSON object {\"summary\": string} with no extra text."
	if language != "" {
		instr = fmt.Sprintf("LANGUAGE: write the summary in %s.\n", language) + instr
	}
	userCtx := map[string]interface{}{
		"full_name":       req.FullName,
		"current_summary": current,
		"context":         contextOr(req.Context, "professional_summary"),
		"instructions":    instr,
	}
	return "Suggest a professional summary:\n" + mustMarshal(userCtx)
}

// ParseSummary reads the summary from a chat answer. Answers that are not
// JSON are taken as the summary text itself.
func ParseSummary(output string) string {
	var out struct {
		Summary string `json:"summary"`
	}
	if sub, ok := extractJSON(output, '{', '}'); ok {
		if err := json.Unmarshal([]byte(sub), &out); err == nil && strings.TrimSpace(out.Summary) != "" {
			return strings.TrimSpace(out.Summary)
		}
	}
	return strings.Trim(strings.TrimSpace(output), "\"")
}

// extractJSON returns the outermost open...close span of s. Models often
// wrap JSON in prose or code fences.
func extractJSON(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func contextOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
