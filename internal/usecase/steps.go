package usecase

import (
	"strings"

	"cv-builder/internal/document"
	"cv-builder/internal/model"
	"cv-builder/internal/validation"
)

// Step is one page of the wizard. Section is empty for the template picker.
type Step struct {
	Title    string
	Section  model.Section
	Required bool
}

var steps = []Step{
	{Title: "Template", Section: model.SectionTemplate},
	{Title: "Personal Info", Section: model.SectionPersonal, Required: true},
	{Title: "Education", Section: model.SectionEducation, Required: true},
	{Title: "Experience", Section: model.SectionExperience},
	{Title: "Skills", Section: model.SectionSkills, Required: true},
	{Title: "Projects", Section: model.SectionProjects},
	{Title: "Certifications", Section: model.SectionCertifications},
	{Title: "Languages", Section: model.SectionLanguages},
	{Title: "Awards", Section: model.SectionAwards},
	{Title: "References", Section: model.SectionReferences},
}

// StepCount is the number of wizard steps.
func StepCount() int { return len(steps) }

// StepState is the navigation view of a step.
type StepState struct {
	Index    int      `json:"index"`
	Title    string   `json:"title"`
	Section  string   `json:"section"`
	Required bool     `json:"required"`
	Complete bool     `json:"complete"`
	Current  bool     `json:"current"`
	Missing  []string `json:"missing,omitempty"`
}

// stepComplete is the gate that must pass before leaving step i forwards.
// Optional steps always pass.
func stepComplete(agg *document.Aggregate, i int) bool {
	st := steps[i]
	if !st.Required {
		return true
	}
	return agg.SectionComplete(st.Section)
}

// stepMissing names what keeps a required step from completing.
func stepMissing(agg *document.Aggregate, i int) []string {
	st := steps[i]
	if !st.Required || agg.SectionComplete(st.Section) {
		return nil
	}
	switch st.Section {
	case model.SectionPersonal:
		info := agg.Personal.Info()
		var missing []string
		for _, field := range []string{"full_name", "professional_title", "email", "phone"} {
			if v, _ := info.Field(field); strings.TrimSpace(v) == "" {
				missing = append(missing, validation.PersonalLabel(field))
			}
		}
		return missing
	case model.SectionEducation:
		return []string{"At least one education entry"}
	case model.SectionSkills:
		return []string{"At least one skill"}
	}
	return nil
}
