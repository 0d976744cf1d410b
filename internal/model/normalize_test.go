package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_CanonicalAndCamelCase(t *testing.T) {
	raw := map[string]any{
		"personalInfo": map[string]any{
			"fullName":          "Ada Lovelace",
			"professionalTitle": "Analyst",
			"linkedIn":          "https://linkedin.com/in/ada",
		},
		"experience": []any{
			map[string]any{
				"id":          float64(1700000000001),
				"jobTitle":    "Engineer",
				"company":     "Analytical Engines",
				"startDate":   "01/2020",
				"endDate":     "02/2021",
				"isCurrent":   true,
				"description": []any{"Designed the first published algorithm"},
			},
		},
		"templateId": float64(3),
		"unknown":    "dropped",
	}

	doc, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", doc.PersonalInfo.FullName)
	assert.Equal(t, "Analyst", doc.PersonalInfo.ProfessionalTitle)
	assert.Equal(t, "https://linkedin.com/in/ada", doc.PersonalInfo.LinkedIn)
	require.Len(t, doc.Experience, 1)
	exp := doc.Experience[0]
	assert.Equal(t, EntryID(1700000000001), exp.ID)
	assert.Equal(t, "Engineer", exp.JobTitle)
	assert.True(t, exp.IsCurrent)
	assert.Empty(t, exp.EndDate)
	assert.Equal(t, []string{"Designed the first published algorithm"}, exp.Description)
	assert.Equal(t, 3, doc.TemplateID)
	assert.NotNil(t, doc.Skills)
}

func TestNormalize_LegacyAliases(t *testing.T) {
	raw := map[string]any{
		"personal_info": map[string]any{
			"full_name":            "Grace Hopper",
			"title":                "Rear Admiral",
			"address":              "Arlington",
			"portfolio":            "https://example.com",
			"professional_summary": "Pioneer of compilers",
		},
		"education":  []any{map[string]any{"school_name": "Yale", "degree": "PhD", "gpa": float64(4)}},
		"experience": []any{map[string]any{"company_name": "US Navy", "job_description": "Built COBOL\n• Found the first bug"}},
		"skills":     []any{map[string]any{"skill_name": "Compilers", "proficiency_level": "expert"}},
		"projects":   []any{map[string]any{"project_title": "FLOW-MATIC", "technologies_used": []any{"UNIVAC"}}},
		"certifications": []any{
			map[string]any{"certificate_name": "Medal", "date_obtained": "01/1991", "expiration_date": "01/2000"},
		},
		"achievements": []any{map[string]any{"title": "National Medal of Technology"}},
		"languages":    []any{map[string]any{"language": "English", "proficiency": "native"}},
		"template_id":  "modern",
	}

	doc, err := Normalize(raw)
	require.NoError(t, err)
	p := doc.PersonalInfo
	assert.Equal(t, "Rear Admiral", p.ProfessionalTitle)
	assert.Equal(t, "Arlington", p.Location)
	assert.Equal(t, "https://example.com", p.Website)
	assert.Equal(t, "Pioneer of compilers", p.Summary)

	assert.Equal(t, "Yale", doc.Education[0].School)
	assert.Equal(t, "4", doc.Education[0].Grade)
	assert.Equal(t, "US Navy", doc.Experience[0].Company)
	assert.Equal(t, []string{"Built COBOL", "Found the first bug"}, doc.Experience[0].Description)
	assert.Equal(t, "Expert", doc.Skills[0].Proficiency)
	assert.Equal(t, []string{"UNIVAC"}, doc.Projects[0].Technologies)
	assert.Equal(t, "01/1991", doc.Certifications[0].DateIssued)
	assert.True(t, doc.Certifications[0].Expires)
	assert.Equal(t, "National Medal of Technology", doc.Awards[0].Title)
	assert.Equal(t, "Native", doc.Languages[0].Proficiency)
	assert.Equal(t, 1, doc.TemplateID)
}

func TestNormalize_CanonicalKeyWinsOverAlias(t *testing.T) {
	raw := map[string]any{
		"experience": []any{map[string]any{"company": "New", "company_name": "Old"}},
	}
	doc, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "New", doc.Experience[0].Company)
}

func TestNormalize_TemplateFallback(t *testing.T) {
	for _, v := range []any{float64(99), "12", "retro", nil} {
		doc, err := Normalize(map[string]any{"template_id": v})
		require.NoError(t, err)
		assert.Equal(t, DefaultTemplateID, doc.TemplateID, "%v", v)
	}
	doc, err := Normalize(map[string]any{"template": "Tech Modern"})
	require.NoError(t, err)
	assert.Equal(t, 5, doc.TemplateID)
}

func TestNormalizeJSON_RejectsGarbage(t *testing.T) {
	_, err := NormalizeJSON([]byte("{not json"))
	assert.Error(t, err)
}

func TestValidateMap(t *testing.T) {
	ok := map[string]interface{}{
		"personal_info": map[string]interface{}{"full_name": "Ada"},
		"experience":    []interface{}{map[string]interface{}{"description": "one line"}},
		"template_id":   float64(8),
	}
	require.NoError(t, ValidateMap(ok))

	bad := map[string]interface{}{
		"personal_info": "Ada",
		"skills":        map[string]interface{}{},
		"template_id":   float64(9),
	}
	err := ValidateMap(bad)
	require.Error(t, err)
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.GreaterOrEqual(t, len(se.Violations), 3)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestImport(t *testing.T) {
	doc, err := Import(map[string]interface{}{"personal_info": map[string]interface{}{"email": "a@b.co"}})
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", doc.PersonalInfo.Email)

	_, err = Import(map[string]interface{}{"education": "none"})
	assert.Error(t, err)
}
