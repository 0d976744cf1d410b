package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrFieldType    = errors.New("invalid value for field")
)

// ListHolder is implemented by entries that own a list of strings
// (experience bullets, project technologies).
type ListHolder interface {
	List(field string) ([]string, bool)
	SetList(field string, items []string) bool
}

func asString(field string, v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("%w %q: want string, got %T", ErrFieldType, field, v)
}

func asBool(field string, v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "on", "yes":
			return true, nil
		case "false", "0", "off", "no", "":
			return false, nil
		}
	}
	return false, fmt.Errorf("%w %q: want boolean, got %v", ErrFieldType, field, v)
}

func asStrings(field string, v any) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return append([]string{}, t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w %q: list items must be strings", ErrFieldType, field)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return []string{t}, nil
	case nil:
		return []string{}, nil
	}
	return nil, fmt.Errorf("%w %q: want list of strings, got %T", ErrFieldType, field, v)
}

func unknown(section Section, field string) error {
	return fmt.Errorf("%w %q in %s", ErrUnknownField, field, section)
}

// setString assigns v to dst when field matches one of the named string fields.
func setString(fields map[string]*string, field string, v any) (bool, error) {
	dst, ok := fields[field]
	if !ok {
		return false, nil
	}
	s, err := asString(field, v)
	if err != nil {
		return true, err
	}
	*dst = s
	return true, nil
}

func (p *PersonalInfo) fields() map[string]*string {
	return map[string]*string{
		"full_name":          &p.FullName,
		"professional_title": &p.ProfessionalTitle,
		"email":              &p.Email,
		"phone":              &p.Phone,
		"location":           &p.Location,
		"linkedin":           &p.LinkedIn,
		"github":             &p.GitHub,
		"website":            &p.Website,
		"summary":            &p.Summary,
	}
}

// PersonalFields lists personal info fields in form order.
var PersonalFields = []string{
	"full_name", "professional_title", "email", "phone", "location",
	"linkedin", "github", "website", "summary",
}

func (p *PersonalInfo) Set(field string, v any) error {
	ok, err := setString(p.fields(), field, v)
	if !ok {
		return unknown(SectionPersonal, field)
	}
	return err
}

// Field returns the value of a personal info field by its JSON name.
func (p PersonalInfo) Field(field string) (string, bool) {
	dst, ok := p.fields()[field]
	if !ok {
		return "", false
	}
	return *dst, true
}

// IsEmpty reports whether no personal field has been filled in.
func (p PersonalInfo) IsEmpty() bool {
	for _, v := range p.fields() {
		if strings.TrimSpace(*v) != "" {
			return false
		}
	}
	return true
}

func (e Education) EntryID() EntryID { return e.ID }

func (e *Education) Set(field string, v any) error {
	switch field {
	case "is_current":
		b, err := asBool(field, v)
		if err != nil {
			return err
		}
		e.IsCurrent = b
		if b {
			e.EndDate = ""
		}
		return nil
	case "end_date":
		s, err := asString(field, v)
		if err != nil {
			return err
		}
		if !e.IsCurrent {
			e.EndDate = s
		}
		return nil
	}
	ok, err := setString(map[string]*string{
		"school":         &e.School,
		"degree":         &e.Degree,
		"field_of_study": &e.FieldOfStudy,
		"location":       &e.Location,
		"start_date":     &e.StartDate,
		"grade":          &e.Grade,
		"description":    &e.Description,
	}, field, v)
	if !ok {
		return unknown(SectionEducation, field)
	}
	return err
}

func (e Experience) EntryID() EntryID { return e.ID }

func (e *Experience) Set(field string, v any) error {
	switch field {
	case "is_current":
		b, err := asBool(field, v)
		if err != nil {
			return err
		}
		e.IsCurrent = b
		if b {
			e.EndDate = ""
		}
		return nil
	case "end_date":
		s, err := asString(field, v)
		if err != nil {
			return err
		}
		if !e.IsCurrent {
			e.EndDate = s
		}
		return nil
	case "description":
		items, err := asStrings(field, v)
		if err != nil {
			return err
		}
		e.Description = items
		return nil
	}
	ok, err := setString(map[string]*string{
		"job_title":  &e.JobTitle,
		"company":    &e.Company,
		"location":   &e.Location,
		"start_date": &e.StartDate,
	}, field, v)
	if !ok {
		return unknown(SectionExperience, field)
	}
	return err
}

func (e *Experience) List(field string) ([]string, bool) {
	if field != "description" {
		return nil, false
	}
	return e.Description, true
}

func (e *Experience) SetList(field string, items []string) bool {
	if field != "description" {
		return false
	}
	e.Description = items
	return true
}

func (s Skill) EntryID() EntryID { return s.ID }

func (s *Skill) Set(field string, v any) error {
	ok, err := setString(map[string]*string{
		"name":        &s.Name,
		"category":    &s.Category,
		"proficiency": &s.Proficiency,
	}, field, v)
	if !ok {
		return unknown(SectionSkills, field)
	}
	return err
}

func (p Project) EntryID() EntryID { return p.ID }

func (p *Project) Set(field string, v any) error {
	switch field {
	case "is_ongoing":
		b, err := asBool(field, v)
		if err != nil {
			return err
		}
		p.IsOngoing = b
		if b {
			p.EndDate = ""
		}
		return nil
	case "end_date":
		s, err := asString(field, v)
		if err != nil {
			return err
		}
		if !p.IsOngoing {
			p.EndDate = s
		}
		return nil
	case "technologies":
		items, err := asStrings(field, v)
		if err != nil {
			return err
		}
		p.Technologies = UniqueFold(items)
		return nil
	}
	ok, err := setString(map[string]*string{
		"title":       &p.Title,
		"description": &p.Description,
		"link":        &p.Link,
		"github_link": &p.GitHubLink,
		"start_date":  &p.StartDate,
	}, field, v)
	if !ok {
		return unknown(SectionProjects, field)
	}
	return err
}

func (p *Project) List(field string) ([]string, bool) {
	if field != "technologies" {
		return nil, false
	}
	return p.Technologies, true
}

func (p *Project) SetList(field string, items []string) bool {
	if field != "technologies" {
		return false
	}
	p.Technologies = UniqueFold(items)
	return true
}

func (c Certification) EntryID() EntryID { return c.ID }

func (c *Certification) Set(field string, v any) error {
	if field == "expires" {
		b, err := asBool(field, v)
		if err != nil {
			return err
		}
		c.Expires = b
		if !b {
			c.ExpiryDate = ""
		}
		return nil
	}
	ok, err := setString(map[string]*string{
		"name":           &c.Name,
		"issuer":         &c.Issuer,
		"date_issued":    &c.DateIssued,
		"expiry_date":    &c.ExpiryDate,
		"credential_url": &c.CredentialURL,
	}, field, v)
	if !ok {
		return unknown(SectionCertifications, field)
	}
	return err
}

func (l Language) EntryID() EntryID { return l.ID }

func (l *Language) Set(field string, v any) error {
	ok, err := setString(map[string]*string{
		"name":        &l.Name,
		"proficiency": &l.Proficiency,
	}, field, v)
	if !ok {
		return unknown(SectionLanguages, field)
	}
	return err
}

func (a Award) EntryID() EntryID { return a.ID }

func (a *Award) Set(field string, v any) error {
	ok, err := setString(map[string]*string{
		"title":       &a.Title,
		"issuer":      &a.Issuer,
		"date":        &a.Date,
		"description": &a.Description,
	}, field, v)
	if !ok {
		return unknown(SectionAwards, field)
	}
	return err
}

func (r Reference) EntryID() EntryID { return r.ID }

func (r *Reference) Set(field string, v any) error {
	ok, err := setString(map[string]*string{
		"name":         &r.Name,
		"relationship": &r.Relationship,
		"company":      &r.Company,
		"contact":      &r.Contact,
		"notes":        &r.Notes,
	}, field, v)
	if !ok {
		return unknown(SectionReferences, field)
	}
	return err
}

// UniqueFold trims items, drops empties and removes case-insensitive duplicates,
// keeping the first spelling seen.
func UniqueFold(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		key := strings.ToLower(it)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
