package validation

import "cv-builder/internal/model"

var maxLengths = map[model.Section]map[string]int{
	model.SectionPersonal: {
		"full_name":          100,
		"professional_title": 100,
		"summary":            300,
	},
	model.SectionEducation:      {"start_date": 7, "end_date": 7},
	model.SectionExperience:     {"start_date": 7, "end_date": 7, "description": 200},
	model.SectionProjects:       {"start_date": 7, "end_date": 7},
	model.SectionCertifications: {"date_issued": 7, "expiry_date": 7},
	model.SectionAwards:         {"date": 7, "description": 200},
}

// MaxLen is the input limit for a field, or 0 when unbounded. For list
// fields it applies to each item.
func MaxLen(section model.Section, field string) int {
	return maxLengths[section][field]
}

// Truncate cuts value to the field's input limit, counting runes.
func Truncate(section model.Section, field, value string) string {
	limit := MaxLen(section, field)
	if limit == 0 {
		return value
	}
	r := []rune(value)
	if len(r) <= limit {
		return value
	}
	return string(r[:limit])
}
