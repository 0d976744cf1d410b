package formatters

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// BulletsRequest asks for work experience bullet points.
type BulletsRequest struct {
	JobTitle            string   `json:"job_title"`
	Company             string   `json:"company"`
	CurrentDescriptions []string `json:"current_descriptions"`
	Context             string   `json:"context,omitempty"`
}

// MaxBullets is the most suggestions returned for one request.
const MaxBullets = 5

func BulletsPrompt(req BulletsRequest, language string) string {
	instr := fmt.Sprintf("Generate %d action-oriented CV bullet points for this role. "+
		"Start each with a strong action verb, quantify results where possible and keep each under 200 characters. "+
		"Do not repeat the current descriptions. Return ONLY a JSON object {\"suggestions\": [string]} with no extra text.", MaxBullets)
	if language != "" {
		instr = fmt.Sprintf("LANGUAGE: write every bullet in %s.\n", language) + instr
	}
	current := req.CurrentDescriptions
	if current == nil {
		current = []string{}
	}
	userCtx := map[string]interface{}{
		"job_title":            req.JobTitle,
		"company":              req.Company,
		"current_descriptions": current,
		"context":              contextOr(req.Context, "work_experience"),
		"instructions":         instr,
	}
	return "Suggest job description bullets:\n" + mustMarshal(userCtx)
}

var bulletMarker = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)

// ParseBullets reads suggestions from a chat answer: a JSON object, a JSON
// array, or plain lines with optional bullet markers.
func ParseBullets(output string) []string {
	var obj struct {
		Suggestions []string `json:"suggestions"`
	}
	if sub, ok := extractJSON(output, '{', '}'); ok {
		if err := json.Unmarshal([]byte(sub), &obj); err == nil && len(obj.Suggestions) > 0 {
			return clean(obj.Suggestions)
		}
	}
	var arr []string
	if sub, ok := extractJSON(output, '[', ']'); ok {
		if err := json.Unmarshal([]byte(sub), &arr); err == nil && len(arr) > 0 {
			return clean(arr)
		}
	}
	return clean(strings.Split(output, "\n"))
}

func clean(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(bulletMarker.ReplaceAllString(l, ""))
		if l == "" || strings.HasPrefix(l, "```") {
			continue
		}
		out = append(out, l)
	}
	return out
}

func mustMarshal(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}
