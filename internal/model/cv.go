package model

// Go models for the CV document edited by the wizard and persisted by the API.

// Section names a top-level part of a CVDocument.
type Section string

const (
	SectionPersonal       Section = "personal_info"
	SectionEducation      Section = "education"
	SectionExperience     Section = "experience"
	SectionSkills         Section = "skills"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionLanguages      Section = "languages"
	SectionAwards         Section = "awards"
	SectionReferences     Section = "references"
	// SectionTemplate is reported to change listeners when the template changes.
	SectionTemplate Section = "template_id"
)

// EntrySections lists the collection sections in document order.
var EntrySections = []Section{
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionLanguages,
	SectionAwards,
	SectionReferences,
}

// ParseSection maps a name to a known section.
func ParseSection(name string) (Section, bool) {
	s := Section(name)
	if s == SectionPersonal {
		return s, true
	}
	for _, e := range EntrySections {
		if e == s {
			return s, true
		}
	}
	return "", false
}

type PersonalInfo struct {
	FullName          string `json:"full_name"`
	ProfessionalTitle string `json:"professional_title"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Location          string `json:"location"`
	LinkedIn          string `json:"linkedin"`
	GitHub            string `json:"github"`
	Website           string `json:"website"`
	Summary           string `json:"summary"`
}

type Education struct {
	ID           EntryID `json:"id"`
	School       string  `json:"school"`
	Degree       string  `json:"degree"`
	FieldOfStudy string  `json:"field_of_study"`
	Location     string  `json:"location"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	IsCurrent    bool    `json:"is_current"`
	Grade        string  `json:"grade"`
	Description  string  `json:"description"`
}

type Experience struct {
	ID          EntryID  `json:"id"`
	JobTitle    string   `json:"job_title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	IsCurrent   bool     `json:"is_current"`
	Description []string `json:"description"`
}

// Skill proficiency levels.
const (
	ProficiencyBeginner     = "Beginner"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyAdvanced     = "Advanced"
	ProficiencyExpert       = "Expert"
)

// SkillLevels is the closed set of skill proficiencies.
var SkillLevels = []string{ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert}

type Skill struct {
	ID          EntryID `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Proficiency string  `json:"proficiency"`
}

type Project struct {
	ID           EntryID  `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
	GitHubLink   string   `json:"github_link"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	IsOngoing    bool     `json:"is_ongoing"`
}

type Certification struct {
	ID            EntryID `json:"id"`
	Name          string  `json:"name"`
	Issuer        string  `json:"issuer"`
	DateIssued    string  `json:"date_issued"`
	ExpiryDate    string  `json:"expiry_date"`
	Expires       bool    `json:"expires"`
	CredentialURL string  `json:"credential_url"`
}

// LanguageLevels is the closed set of spoken-language proficiencies.
var LanguageLevels = []string{"Basic", "Conversational", "Fluent", "Native"}

type Language struct {
	ID          EntryID `json:"id"`
	Name        string  `json:"name"`
	Proficiency string  `json:"proficiency"`
}

type Award struct {
	ID          EntryID `json:"id"`
	Title       string  `json:"title"`
	Issuer      string  `json:"issuer"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type Reference struct {
	ID           EntryID `json:"id"`
	Name         string  `json:"name"`
	Relationship string  `json:"relationship"`
	Company      string  `json:"company"`
	Contact      string  `json:"contact"`
	Notes        string  `json:"notes"`
}

// CVDocument is the whole CV as edited in one wizard session.
type CVDocument struct {
	PersonalInfo   PersonalInfo    `json:"personal_info"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Skills         []Skill         `json:"skills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Languages      []Language      `json:"languages"`
	Awards         []Award         `json:"awards"`
	References     []Reference     `json:"references"`
	TemplateID     int             `json:"template_id"`
}

// DefaultTemplateID is used whenever a document carries no usable template.
const DefaultTemplateID = 1

// NewCVDocument returns an empty document with every collection non-nil.
func NewCVDocument() CVDocument {
	return CVDocument{
		Education:      []Education{},
		Experience:     []Experience{},
		Skills:         []Skill{},
		Projects:       []Project{},
		Certifications: []Certification{},
		Languages:      []Language{},
		Awards:         []Award{},
		References:     []Reference{},
		TemplateID:     DefaultTemplateID,
	}
}

// Clone returns a deep copy; nested bullet and technology slices are not shared.
func (d CVDocument) Clone() CVDocument {
	out := d
	out.Education = append([]Education{}, d.Education...)
	out.Experience = make([]Experience, len(d.Experience))
	for i, e := range d.Experience {
		e.Description = append([]string{}, e.Description...)
		out.Experience[i] = e
	}
	out.Skills = append([]Skill{}, d.Skills...)
	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		p.Technologies = append([]string{}, p.Technologies...)
		out.Projects[i] = p
	}
	out.Certifications = append([]Certification{}, d.Certifications...)
	out.Languages = append([]Language{}, d.Languages...)
	out.Awards = append([]Award{}, d.Awards...)
	out.References = append([]Reference{}, d.References...)
	return out
}

// Title is the label stored alongside a persisted document.
func (d CVDocument) Title() string {
	if d.PersonalInfo.FullName != "" {
		return d.PersonalInfo.FullName + " CV"
	}
	return "Untitled CV"
}
