package validation

import (
	"strings"

	"cv-builder/internal/model"
)

var personalFields = map[string]Field{
	"full_name":          {Label: "Full name", Required: true, Format: FormatPersonName, Max: 100},
	"professional_title": {Label: "Professional title", Required: true, Min: 2, Max: 100},
	"email":              {Label: "Email", Required: true, Format: FormatEmail},
	"phone":              {Label: "Phone number", Required: true, Format: FormatPhone},
	"location":           {Label: "Location", Max: 100},
	"linkedin":           {Label: "LinkedIn", Format: FormatLinkedIn},
	"github":             {Label: "GitHub", Format: FormatGitHub},
	"website":            {Label: "Website", Format: FormatURL},
	"summary":            {Label: "Summary", Required: true, RequiredMsg: "Professional summary is required", Min: 50, Max: 300},
}

var (
	startDate = Field{Label: "Start date", Required: true, Format: FormatDate, Max: 7}
	endDate   = func(unless string) Field {
		return Field{Label: "End date", Format: FormatDate, Max: 7, After: "start_date", Unless: unless}
	}
	optionalDate = Field{Label: "Date", Format: FormatDate, Max: 7}
)

var educationFields = map[string]Field{
	"school":         {Label: "School name", Required: true},
	"degree":         {Label: "Degree", Required: true},
	"field_of_study": {Label: "Field of study", Required: true},
	"start_date":     startDate,
	"end_date":       endDate("is_current"),
}

var experienceFields = map[string]Field{
	"job_title":  {Label: "Job title", Required: true},
	"company":    {Label: "Company name", Required: true},
	"start_date": startDate,
	"end_date":   endDate("is_current"),
}

var bulletList = ListField{
	RequiredMsg: "At least one job responsibility is required",
	ItemMin:     10,
	ItemMinMsg:  "Each responsibility should be at least 10 characters long",
	ItemMax:     200,
}

var projectFields = map[string]Field{
	"title":       {Label: "Project title", Required: true},
	"description": {Label: "Description", Required: true, RequiredMsg: "Project description is required", Min: 50},
	"link":        {Label: "Link", Format: FormatURL},
	"github_link": {Label: "GitHub link", Format: FormatGitHub},
	"start_date":  optionalDate,
	"end_date":    endDate("is_ongoing"),
}

var technologyList = ListField{RequiredMsg: "At least one technology is required"}

var certificationFields = map[string]Field{
	"name":           {Label: "Certificate name", Required: true},
	"issuer":         {Label: "Issuer", Required: true},
	"date_issued":    {Label: "Issue date", Required: true, Format: FormatDate, Max: 7},
	"expiry_date":    {Label: "Expiry date", Required: true, Format: FormatDate, Max: 7, After: "date_issued"},
	"credential_url": {Label: "Credential URL", Format: FormatURL},
}

var awardFields = map[string]Field{
	"title":       {Label: "Award title", Required: true},
	"date":        optionalDate,
	"description": {Label: "Description", Max: 200},
}

var referenceFields = map[string]Field{
	"name":         {Label: "Name", Required: true},
	"relationship": {Label: "Relationship", Required: true},
	"contact":      {Label: "Contact", Required: true, RequiredMsg: "Contact information is required", Format: FormatContact},
}

// PersonalField validates a single personal info field.
func PersonalField(p model.PersonalInfo, field string) Result {
	f, known := personalFields[field]
	if !known {
		return valid
	}
	v, _ := p.Field(field)
	return Validate(f, v, nil)
}

// PersonalLabel is the display name of a personal info field.
func PersonalLabel(field string) string {
	if f, known := personalFields[field]; known {
		return f.Label
	}
	return field
}

// Personal validates every personal info field.
func Personal(p model.PersonalInfo) FieldErrors {
	errs := FieldErrors{}
	for _, name := range model.PersonalFields {
		errs.add(name, PersonalField(p, name))
	}
	return errs
}

func Education(e model.Education) FieldErrors {
	sib := Siblings{"start_date": e.StartDate, "is_current": flag(e.IsCurrent)}
	errs := FieldErrors{}
	errs.add("school", Validate(educationFields["school"], e.School, sib))
	errs.add("degree", Validate(educationFields["degree"], e.Degree, sib))
	errs.add("field_of_study", Validate(educationFields["field_of_study"], e.FieldOfStudy, sib))
	errs.add("start_date", Validate(educationFields["start_date"], e.StartDate, sib))
	errs.add("end_date", Validate(educationFields["end_date"], e.EndDate, sib))
	return errs
}

func Experience(e model.Experience) FieldErrors {
	sib := Siblings{"start_date": e.StartDate, "is_current": flag(e.IsCurrent)}
	errs := FieldErrors{}
	errs.add("job_title", Validate(experienceFields["job_title"], e.JobTitle, sib))
	errs.add("company", Validate(experienceFields["company"], e.Company, sib))
	errs.add("start_date", Validate(experienceFields["start_date"], e.StartDate, sib))
	errs.add("end_date", Validate(experienceFields["end_date"], e.EndDate, sib))
	errs.add("description", ValidateList(bulletList, e.Description))
	return errs
}

func Skill(s model.Skill) FieldErrors {
	errs := FieldErrors{}
	errs.add("name", Validate(Field{Label: "Skill name", Required: true}, s.Name, nil))
	if s.Proficiency != "" && !oneOf(s.Proficiency, model.SkillLevels) {
		errs["proficiency"] = "Proficiency must be one of " + strings.Join(model.SkillLevels, ", ")
	}
	return errs
}

func Project(p model.Project) FieldErrors {
	sib := Siblings{"start_date": p.StartDate, "is_ongoing": flag(p.IsOngoing)}
	errs := FieldErrors{}
	errs.add("title", Validate(projectFields["title"], p.Title, sib))
	errs.add("description", Validate(projectFields["description"], p.Description, sib))
	errs.add("technologies", ValidateList(technologyList, p.Technologies))
	errs.add("link", Validate(projectFields["link"], p.Link, sib))
	errs.add("github_link", Validate(projectFields["github_link"], p.GitHubLink, sib))
	errs.add("start_date", Validate(projectFields["start_date"], p.StartDate, sib))
	errs.add("end_date", Validate(projectFields["end_date"], p.EndDate, sib))
	return errs
}

func Certification(c model.Certification) FieldErrors {
	sib := Siblings{"date_issued": c.DateIssued}
	errs := FieldErrors{}
	errs.add("name", Validate(certificationFields["name"], c.Name, sib))
	errs.add("issuer", Validate(certificationFields["issuer"], c.Issuer, sib))
	errs.add("date_issued", Validate(certificationFields["date_issued"], c.DateIssued, sib))
	if c.Expires {
		errs.add("expiry_date", Validate(certificationFields["expiry_date"], c.ExpiryDate, sib))
	}
	errs.add("credential_url", Validate(certificationFields["credential_url"], c.CredentialURL, sib))
	return errs
}

func Language(l model.Language) FieldErrors {
	errs := FieldErrors{}
	errs.add("name", Validate(Field{Label: "Language", Required: true}, l.Name, nil))
	if !oneOf(l.Proficiency, model.LanguageLevels) {
		errs["proficiency"] = "Proficiency must be one of " + strings.Join(model.LanguageLevels, ", ")
	}
	return errs
}

func Award(a model.Award) FieldErrors {
	errs := FieldErrors{}
	errs.add("title", Validate(awardFields["title"], a.Title, nil))
	errs.add("date", Validate(awardFields["date"], a.Date, nil))
	errs.add("description", Validate(awardFields["description"], a.Description, nil))
	return errs
}

func Reference(r model.Reference) FieldErrors {
	errs := FieldErrors{}
	errs.add("name", Validate(referenceFields["name"], r.Name, nil))
	errs.add("relationship", Validate(referenceFields["relationship"], r.Relationship, nil))
	errs.add("contact", Validate(referenceFields["contact"], r.Contact, nil))
	return errs
}

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}
