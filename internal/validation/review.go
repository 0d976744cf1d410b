package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"cv-builder/internal/model"
)

var actionVerbs = []string{
	"achieved", "administered", "analyzed", "built", "collaborated",
	"created", "designed", "developed", "directed", "enhanced",
	"established", "executed", "generated", "implemented", "improved",
	"increased", "led", "managed", "optimized", "organized",
	"planned", "produced", "reduced", "resolved", "streamlined",
}

var digitRe = regexp.MustCompile(`\d`)

// Report is the whole-document check shown before export.
type Report struct {
	Valid       bool     `json:"is_valid"`
	Missing     []string `json:"missing_required_fields"`
	Suggestions []string `json:"suggestions"`
}

// Review checks a complete document: hard problems go to Missing, stylistic
// hints to Suggestions. Suggestions never make a document invalid.
func Review(doc model.CVDocument) Report {
	r := Report{Missing: []string{}, Suggestions: []string{}}

	r.Missing = append(r.Missing, messages("", Personal(doc.PersonalInfo))...)

	if len(doc.Education) == 0 {
		r.Missing = append(r.Missing, "At least one education entry is required")
	}
	for i, e := range doc.Education {
		r.Missing = append(r.Missing, messages(fmt.Sprintf("Education %d: ", i+1), Education(e))...)
	}

	if len(doc.Experience) == 0 {
		r.Suggestions = append(r.Suggestions, "Consider adding work experience to strengthen your CV")
	}
	for i, e := range doc.Experience {
		prefix := fmt.Sprintf("Experience %d: ", i+1)
		r.Missing = append(r.Missing, messages(prefix, Experience(e))...)
		r.Suggestions = append(r.Suggestions, bulletSuggestions(prefix, e.Description)...)
	}

	if len(doc.Skills) == 0 {
		r.Missing = append(r.Missing, "Skills section is required")
	}

	if len(doc.Projects) == 0 {
		r.Suggestions = append(r.Suggestions, "Consider adding projects to showcase your practical skills")
	}
	if len(doc.Certifications) == 0 {
		r.Suggestions = append(r.Suggestions, "Add relevant certifications to strengthen your credentials")
	}
	if len(doc.Languages) == 0 {
		r.Suggestions = append(r.Suggestions, "Consider adding language skills, especially if you're multilingual")
	}
	if len(doc.Skills) > 10 && !categorized(doc.Skills) {
		r.Suggestions = append(r.Suggestions, "Consider grouping your skills into categories (e.g., Programming, Soft Skills, Tools)")
	}

	r.Valid = len(r.Missing) == 0
	return r
}

func messages(prefix string, errs FieldErrors) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, prefix+errs[k])
	}
	return out
}

func bulletSuggestions(prefix string, bullets []string) []string {
	var weak []string
	hasNumber := false
	for i, b := range bullets {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if digitRe.MatchString(b) {
			hasNumber = true
		}
		first := strings.ToLower(strings.Fields(b)[0])
		if !oneOf(first, actionVerbs) {
			weak = append(weak, fmt.Sprint(i+1))
		}
	}
	var out []string
	if len(weak) > 0 {
		out = append(out, fmt.Sprintf("%sConsider starting bullet points %s with action verbs like: %s, etc.",
			prefix, strings.Join(weak, ", "), strings.Join(actionVerbs[:5], ", ")))
	}
	if !hasNumber && len(bullets) > 0 {
		out = append(out, prefix+"Try to include quantifiable achievements (numbers, percentages, etc.)")
	}
	return out
}

func categorized(skills []model.Skill) bool {
	for _, s := range skills {
		if strings.TrimSpace(s.Category) == "" {
			return false
		}
	}
	return true
}
