// Package preview turns a CV document into the view shown next to the wizard
// and printed on export.
package preview

import (
	"strings"

	"cv-builder/internal/model"
	"cv-builder/internal/templates"
)

// WatermarkText is overlaid on documents that require a watermark.
const WatermarkText = "SmartCV • Free Plan"

const (
	placeholderName  = "Your Name"
	placeholderTitle = "Professional Title"
	otherCategory    = "Other"
)

type View struct {
	Template      templates.Template `json:"template"`
	Watermark     bool               `json:"watermark"`
	WatermarkText string             `json:"watermark_text,omitempty"`
	Header        Header             `json:"header"`
	Sections      []Section          `json:"sections"`
}

type Header struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Contacts []Contact `json:"contacts"`
}

type Contact struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

type Section struct {
	Key       model.Section `json:"key"`
	Title     string        `json:"title"`
	Paragraph string        `json:"paragraph,omitempty"`
	Items     []Item        `json:"items,omitempty"`
	Groups    []Group       `json:"groups,omitempty"`
}

type Item struct {
	Heading    string   `json:"heading,omitempty"`
	Subheading string   `json:"subheading,omitempty"`
	Location   string   `json:"location,omitempty"`
	Dates      string   `json:"dates,omitempty"`
	Meta       string   `json:"meta,omitempty"`
	Body       string   `json:"body,omitempty"`
	Bullets    []string `json:"bullets,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Links      []Link   `json:"links,omitempty"`
}

func (it Item) empty() bool {
	return it.Heading == "" && it.Subheading == "" && it.Body == "" && it.Dates == "" &&
		len(it.Bullets) == 0 && len(it.Tags) == 0 && len(it.Links) == 0
}

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Group is one skill category.
type Group struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Build binds doc to the resolved template. Empty sections are left out and
// the rest follow a fixed order.
func Build(doc model.CVDocument, res templates.Resolution) View {
	v := View{
		Template:  res.Template,
		Watermark: res.RequiresWatermark,
		Header:    header(doc.PersonalInfo),
	}
	if v.Watermark {
		v.WatermarkText = WatermarkText
	}

	if s := strings.TrimSpace(doc.PersonalInfo.Summary); s != "" {
		v.Sections = append(v.Sections, Section{Key: model.SectionPersonal, Title: "Professional Summary", Paragraph: s})
	}
	add := func(key model.Section, title string, items []Item) {
		if len(items) > 0 {
			v.Sections = append(v.Sections, Section{Key: key, Title: title, Items: items})
		}
	}
	add(model.SectionExperience, "Work Experience", collect(doc.Experience, experienceItem))
	add(model.SectionEducation, "Education", collect(doc.Education, educationItem))
	if groups := GroupSkills(doc.Skills); len(groups) > 0 {
		v.Sections = append(v.Sections, Section{Key: model.SectionSkills, Title: "Skills", Groups: groups})
	}
	add(model.SectionProjects, "Projects", collect(doc.Projects, projectItem))
	add(model.SectionCertifications, "Certifications", collect(doc.Certifications, certificationItem))
	add(model.SectionLanguages, "Languages", collect(doc.Languages, languageItem))
	add(model.SectionAwards, "Awards & Achievements", collect(doc.Awards, awardItem))
	add(model.SectionReferences, "References", collect(doc.References, referenceItem))
	return v
}

func header(p model.PersonalInfo) Header {
	h := Header{Name: strings.TrimSpace(p.FullName), Title: strings.TrimSpace(p.ProfessionalTitle)}
	if h.Name == "" {
		h.Name = placeholderName
	}
	if h.Title == "" {
		h.Title = placeholderTitle
	}
	if v := strings.TrimSpace(p.Email); v != "" {
		h.Contacts = append(h.Contacts, Contact{Kind: "email", Text: v, Href: "mailto:" + v})
	}
	if v := strings.TrimSpace(p.Phone); v != "" {
		h.Contacts = append(h.Contacts, Contact{Kind: "phone", Text: v})
	}
	if v := strings.TrimSpace(p.Location); v != "" {
		h.Contacts = append(h.Contacts, Contact{Kind: "location", Text: v})
	}
	for _, l := range []struct{ kind, url string }{
		{"linkedin", p.LinkedIn}, {"github", p.GitHub}, {"website", p.Website},
	} {
		if v := strings.TrimSpace(l.url); v != "" {
			h.Contacts = append(h.Contacts, Contact{Kind: l.kind, Text: LinkLabel(v), Href: v})
		}
	}
	return h
}

func collect[E any](entries []E, item func(E) Item) []Item {
	var out []Item
	for _, e := range entries {
		if it := item(e); !it.empty() {
			out = append(out, it)
		}
	}
	return out
}

func experienceItem(e model.Experience) Item {
	return Item{
		Heading:    strings.TrimSpace(e.JobTitle),
		Subheading: strings.TrimSpace(e.Company),
		Location:   strings.TrimSpace(e.Location),
		Dates:      FormatRange(e.StartDate, e.EndDate, e.IsCurrent),
		Bullets:    nonEmpty(e.Description),
	}
}

func educationItem(e model.Education) Item {
	heading := strings.TrimSpace(e.Degree)
	if f := strings.TrimSpace(e.FieldOfStudy); f != "" {
		if heading != "" {
			heading += " in " + f
		} else {
			heading = f
		}
	}
	it := Item{
		Heading:    heading,
		Subheading: strings.TrimSpace(e.School),
		Location:   strings.TrimSpace(e.Location),
		Dates:      FormatRange(e.StartDate, e.EndDate, e.IsCurrent),
		Body:       strings.TrimSpace(e.Description),
	}
	if g := strings.TrimSpace(e.Grade); g != "" {
		it.Meta = "Grade: " + g
	}
	return it
}

func projectItem(p model.Project) Item {
	it := Item{
		Heading: strings.TrimSpace(p.Title),
		Dates:   FormatRange(p.StartDate, p.EndDate, p.IsOngoing),
		Body:    strings.TrimSpace(p.Description),
		Tags:    nonEmpty(p.Technologies),
	}
	if v := strings.TrimSpace(p.Link); v != "" {
		it.Links = append(it.Links, Link{Label: LinkLabel(v), Href: v})
	}
	if v := strings.TrimSpace(p.GitHubLink); v != "" {
		it.Links = append(it.Links, Link{Label: LinkLabel(v), Href: v})
	}
	return it
}

func certificationItem(c model.Certification) Item {
	it := Item{
		Heading:    strings.TrimSpace(c.Name),
		Subheading: strings.TrimSpace(c.Issuer),
	}
	if d := FormatDate(c.DateIssued); d != "" {
		it.Dates = "Issued " + d
	}
	if c.Expires {
		if d := FormatDate(c.ExpiryDate); d != "" {
			if it.Dates != "" {
				it.Dates += " · "
			}
			it.Dates += "Expires " + d
		}
	}
	if v := strings.TrimSpace(c.CredentialURL); v != "" {
		it.Links = append(it.Links, Link{Label: LinkLabel(v), Href: v})
	}
	return it
}

func languageItem(l model.Language) Item {
	return Item{Heading: strings.TrimSpace(l.Name), Meta: strings.TrimSpace(l.Proficiency)}
}

func awardItem(a model.Award) Item {
	return Item{
		Heading:    strings.TrimSpace(a.Title),
		Subheading: strings.TrimSpace(a.Issuer),
		Dates:      FormatDate(a.Date),
		Body:       strings.TrimSpace(a.Description),
	}
}

func referenceItem(r model.Reference) Item {
	sub := strings.TrimSpace(r.Relationship)
	if c := strings.TrimSpace(r.Company); c != "" {
		if sub != "" {
			sub += ", " + c
		} else {
			sub = c
		}
	}
	return Item{
		Heading:    strings.TrimSpace(r.Name),
		Subheading: sub,
		Meta:       strings.TrimSpace(r.Contact),
		Body:       strings.TrimSpace(r.Notes),
	}
}

// GroupSkills buckets skills by category in first-seen order. Skills
// without a category go to "Other".
func GroupSkills(skills []model.Skill) []Group {
	var groups []Group
	index := map[string]int{}
	for _, s := range skills {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		cat := strings.TrimSpace(s.Category)
		if cat == "" {
			cat = otherCategory
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, Group{Name: cat})
		}
		groups[i].Items = append(groups[i].Items, Item{Heading: name, Meta: s.Proficiency})
	}
	return groups
}

func nonEmpty(items []string) []string {
	var out []string
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
