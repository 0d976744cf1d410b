package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"cv-builder/internal/templates"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize is the single boundary where persisted or imported documents
// become a CVDocument. It accepts snake_case and camelCase keys plus the
// legacy field names older clients stored, and drops anything it does not
// recognise. Code past this point only sees canonical fields.
func Normalize(raw map[string]any) (*CVDocument, error) {
	doc := NewCVDocument()
	top := canonicalKeys(raw, sectionAliases)

	if p, ok := top[string(SectionPersonal)].(map[string]any); ok {
		if err := applyFields(&doc.PersonalInfo, SectionPersonal, p); err != nil {
			return nil, err
		}
	}

	var err error
	if doc.Education, err = normalizeEntries[Education](top, SectionEducation); err != nil {
		return nil, err
	}
	if doc.Experience, err = normalizeEntries[Experience](top, SectionExperience); err != nil {
		return nil, err
	}
	if doc.Skills, err = normalizeEntries[Skill](top, SectionSkills); err != nil {
		return nil, err
	}
	if doc.Projects, err = normalizeEntries[Project](top, SectionProjects); err != nil {
		return nil, err
	}
	if doc.Certifications, err = normalizeEntries[Certification](top, SectionCertifications); err != nil {
		return nil, err
	}
	if doc.Languages, err = normalizeEntries[Language](top, SectionLanguages); err != nil {
		return nil, err
	}
	if doc.Awards, err = normalizeEntries[Award](top, SectionAwards); err != nil {
		return nil, err
	}
	if doc.References, err = normalizeEntries[Reference](top, SectionReferences); err != nil {
		return nil, err
	}

	for i := range doc.Skills {
		doc.Skills[i].Proficiency = titleLevel(doc.Skills[i].Proficiency)
	}
	for i := range doc.Languages {
		doc.Languages[i].Proficiency = titleLevel(doc.Languages[i].Proficiency)
	}
	for i := range doc.Certifications {
		if doc.Certifications[i].ExpiryDate != "" {
			doc.Certifications[i].Expires = true
		}
	}

	doc.TemplateID = normalizeTemplate(top["template_id"])
	return &doc, nil
}

// NormalizeJSON decodes b and normalizes it.
func NormalizeJSON(b []byte) (*CVDocument, error) {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return Normalize(raw)
}

type setter interface {
	Set(field string, v any) error
}

// entryPtr ties an entry type to its pointer so generic code can call Set.
type entryPtr[E any] interface {
	*E
	setter
}

func normalizeEntries[E any, P entryPtr[E]](top map[string]any, section Section) ([]E, error) {
	out := []E{}
	items, ok := top[string(section)].([]any)
	if !ok {
		return out, nil
	}
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		var e E
		if err := applyFields(P(&e), section, m); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func applyFields(dst setter, section Section, raw map[string]any) error {
	fields := canonicalKeys(raw, fieldAliases[section])
	if id, ok := fields["id"]; ok {
		if withID, ok := dst.(interface{ SetEntryID(EntryID) }); ok {
			withID.SetEntryID(parseEntryID(id))
		}
		delete(fields, "id")
	}
	// expires goes first so a stored expiry date survives; current/ongoing go
	// last so such entries end up without an end date.
	if v, ok := fields["expires"]; ok {
		if err := dst.Set("expires", v); err != nil {
			return fmt.Errorf("normalize %s: %w", section, err)
		}
	}
	for k, v := range fields {
		if k == "expires" || k == "is_current" || k == "is_ongoing" {
			continue
		}
		if err := dst.Set(k, coerce(section, k, v)); err != nil {
			return fmt.Errorf("normalize %s: %w", section, err)
		}
	}
	for _, k := range []string{"is_current", "is_ongoing"} {
		if v, ok := fields[k]; ok {
			if err := dst.Set(k, v); err != nil {
				return fmt.Errorf("normalize %s: %w", section, err)
			}
		}
	}
	return nil
}

// canonicalKeys maps raw keys to canonical names. A canonical spelling wins
// over any alias for the same field.
func canonicalKeys(raw map[string]any, aliases map[string]string) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		key := snake(k)
		if c, ok := aliases[key]; ok && c == key {
			out[c] = v
		}
	}
	for k, v := range raw {
		key := snake(k)
		c, ok := aliases[key]
		if !ok || c == key {
			continue
		}
		if _, seen := out[c]; !seen {
			out[c] = v
		}
	}
	return out
}

func snake(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		switch {
		case r == '-' || r == ' ':
			b.WriteByte('_')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return b.String()
}

func coerce(section Section, field string, v any) any {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case string:
		if section == SectionExperience && field == "description" {
			return splitBullets(t)
		}
	}
	return v
}

func splitBullets(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "•-* ")
		if line != "" {
			out = append(out, line)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func parseEntryID(v any) EntryID {
	switch t := v.(type) {
	case float64:
		return EntryID(t)
	case int64:
		return EntryID(t)
	case int:
		return EntryID(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return EntryID(n)
		}
	}
	return 0
}

func titleLevel(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return cases.Title(language.English).String(strings.ToLower(s))
}

func normalizeTemplate(v any) int {
	switch t := v.(type) {
	case float64:
		if _, ok := templates.Lookup(int(t)); ok {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			if _, ok := templates.Lookup(n); ok {
				return n
			}
			return DefaultTemplateID
		}
		if id, ok := templates.ByName(t); ok {
			return id
		}
	}
	return DefaultTemplateID
}


func aliasMap(fields map[string][]string) map[string]string {
	out := map[string]string{}
	for canonical, aliases := range fields {
		out[canonical] = canonical
		for _, a := range aliases {
			out[a] = canonical
		}
	}
	return out
}

var sectionAliases = aliasMap(map[string][]string{
	"personal_info":  {"personal", "personal_details"},
	"education":      {"educations"},
	"experience":     {"work_experience", "experiences", "work_history"},
	"skills":         {"skill"},
	"projects":       {"project"},
	"certifications": {"certificates"},
	"languages":      {"language"},
	"awards":         {"achievements", "honors"},
	"references":     {"referees"},
	"template_id":    {"template", "selected_template"},
})

var fieldAliases = map[Section]map[string]string{
	SectionPersonal: aliasMap(map[string][]string{
		"full_name":          {"name", "fullname"},
		"professional_title": {"title", "headline", "job_title"},
		"email":              {"email_address"},
		"phone":              {"phone_number"},
		"location":           {"address"},
		"linkedin":           {"linked_in", "linkedin_url"},
		"github":             {"git_hub", "github_url"},
		"website":            {"portfolio", "portfolio_url", "website_url"},
		"summary":            {"profile_summary", "professional_summary", "about"},
	}),
	SectionEducation: aliasMap(map[string][]string{
		"id":             nil,
		"school":         {"school_name", "institution", "university"},
		"degree":         nil,
		"field_of_study": {"field", "major"},
		"location":       nil,
		"start_date":     nil,
		"end_date":       nil,
		"is_current":     {"current"},
		"grade":          {"gpa"},
		"description":    nil,
	}),
	SectionExperience: aliasMap(map[string][]string{
		"id":          nil,
		"job_title":   {"title", "position", "role"},
		"company":     {"company_name", "employer"},
		"location":    nil,
		"start_date":  nil,
		"end_date":    nil,
		"is_current":  {"current"},
		"description": {"job_description", "responsibilities", "bullets"},
	}),
	SectionSkills: aliasMap(map[string][]string{
		"id":          nil,
		"name":        {"skill_name", "skill"},
		"category":    nil,
		"proficiency": {"proficiency_level", "level"},
	}),
	SectionProjects: aliasMap(map[string][]string{
		"id":           nil,
		"title":        {"project_title", "name"},
		"description":  nil,
		"technologies": {"technologies_used", "tech_stack"},
		"link":         {"url", "project_link"},
		"github_link":  {"github", "repository"},
		"start_date":   nil,
		"end_date":     nil,
		"is_ongoing":   {"ongoing", "is_current"},
	}),
	SectionCertifications: aliasMap(map[string][]string{
		"id":             nil,
		"name":           {"certificate_name", "certification_name", "title"},
		"issuer":         {"issuing_organization", "organization"},
		"date_issued":    {"date_obtained", "issue_date", "date"},
		"expiry_date":    {"expiration_date"},
		"expires":        {"has_expiry"},
		"credential_url": {"url", "credential_link"},
	}),
	SectionLanguages: aliasMap(map[string][]string{
		"id":          nil,
		"name":        {"language"},
		"proficiency": {"level", "proficiency_level"},
	}),
	SectionAwards: aliasMap(map[string][]string{
		"id":          nil,
		"title":       {"name", "award_name"},
		"issuer":      nil,
		"date":        {"date_received"},
		"description": nil,
	}),
	SectionReferences: aliasMap(map[string][]string{
		"id":           nil,
		"name":         nil,
		"relationship": nil,
		"company":      nil,
		"contact":      {"contact_info", "email", "phone"},
		"notes":        nil,
	}),
}
