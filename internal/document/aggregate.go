// Package document owns the CV being edited: it keeps the section stores and
// the document snapshot in step and tracks unsaved changes.
package document

import (
	"errors"
	"fmt"
	"strings"

	"cv-builder/internal/model"
	"cv-builder/internal/section"
	"cv-builder/internal/templates"
	"cv-builder/internal/validation"
)

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrSectionData    = errors.New("section data has the wrong type")
)

// Aggregate is the root of one editing session. It is not safe for
// concurrent use.
type Aggregate struct {
	doc       model.CVDocument
	ids       *model.IDSource
	dirty     bool
	listeners []func(model.Section)

	Personal       *section.PersonalStore
	Education      *section.Store[model.Education, *model.Education]
	Experience     *section.Store[model.Experience, *model.Experience]
	Skills         *section.Store[model.Skill, *model.Skill]
	Projects       *section.Store[model.Project, *model.Project]
	Certifications *section.Store[model.Certification, *model.Certification]
	Languages      *section.Store[model.Language, *model.Language]
	Awards         *section.Store[model.Award, *model.Award]
	References     *section.Store[model.Reference, *model.Reference]
}

// New returns an aggregate holding an empty document.
func New(ids *model.IDSource) *Aggregate {
	if ids == nil {
		ids = model.NewIDSource()
	}
	a := &Aggregate{doc: model.NewCVDocument(), ids: ids}

	a.Personal = section.NewPersonal(func(p model.PersonalInfo) {
		a.apply(model.SectionPersonal, p)
	})
	a.Education = section.New[model.Education, *model.Education](ids, section.Config[model.Education]{
		Section:    model.SectionEducation,
		Validate:   validation.Education,
		RequireOne: true,
		OnChange:   func(e []model.Education) { a.apply(model.SectionEducation, e) },
	})
	a.Experience = section.New[model.Experience, *model.Experience](ids, section.Config[model.Experience]{
		Section:    model.SectionExperience,
		New:        func() model.Experience { return model.Experience{Description: []string{""}} },
		Validate:   validation.Experience,
		RequireOne: true,
		OnChange:   func(e []model.Experience) { a.apply(model.SectionExperience, e) },
	})
	a.Skills = section.New[model.Skill, *model.Skill](ids, section.Config[model.Skill]{
		Section:  model.SectionSkills,
		New:      func() model.Skill { return model.Skill{Proficiency: model.ProficiencyIntermediate} },
		Validate: validation.Skill,
		OnChange: func(e []model.Skill) { a.apply(model.SectionSkills, e) },
	})
	a.Projects = section.New[model.Project, *model.Project](ids, section.Config[model.Project]{
		Section:  model.SectionProjects,
		New:      func() model.Project { return model.Project{Technologies: []string{}} },
		Validate: validation.Project,
		OnChange: func(e []model.Project) { a.apply(model.SectionProjects, e) },
	})
	a.Certifications = section.New[model.Certification, *model.Certification](ids, section.Config[model.Certification]{
		Section:  model.SectionCertifications,
		Validate: validation.Certification,
		OnChange: func(e []model.Certification) { a.apply(model.SectionCertifications, e) },
	})
	a.Languages = section.New[model.Language, *model.Language](ids, section.Config[model.Language]{
		Section:  model.SectionLanguages,
		New:      func() model.Language { return model.Language{Proficiency: "Conversational"} },
		Validate: validation.Language,
		OnChange: func(e []model.Language) { a.apply(model.SectionLanguages, e) },
	})
	a.Awards = section.New[model.Award, *model.Award](ids, section.Config[model.Award]{
		Section:  model.SectionAwards,
		Validate: validation.Award,
		OnChange: func(e []model.Award) { a.apply(model.SectionAwards, e) },
	})
	a.References = section.New[model.Reference, *model.Reference](ids, section.Config[model.Reference]{
		Section:  model.SectionReferences,
		Validate: validation.Reference,
		OnChange: func(e []model.Reference) { a.apply(model.SectionReferences, e) },
	})
	return a
}

// OnChange registers fn to run after every change to the document.
func (a *Aggregate) OnChange(fn func(model.Section)) {
	a.listeners = append(a.listeners, fn)
}

// Editor returns the store of a collection section.
func (a *Aggregate) Editor(name model.Section) (section.Editor, bool) {
	switch name {
	case model.SectionEducation:
		return a.Education, true
	case model.SectionExperience:
		return a.Experience, true
	case model.SectionSkills:
		return a.Skills, true
	case model.SectionProjects:
		return a.Projects, true
	case model.SectionCertifications:
		return a.Certifications, true
	case model.SectionLanguages:
		return a.Languages, true
	case model.SectionAwards:
		return a.Awards, true
	case model.SectionReferences:
		return a.References, true
	}
	return nil, false
}

// UpdateSection replaces a whole section and brings its store in line.
func (a *Aggregate) UpdateSection(name model.Section, data any) error {
	switch name {
	case model.SectionPersonal:
		p, ok := data.(model.PersonalInfo)
		if !ok {
			return sectionType(name, data)
		}
		a.Personal.Replace(p)
		a.apply(name, p)
	case model.SectionEducation:
		e, ok := data.([]model.Education)
		if !ok {
			return sectionType(name, data)
		}
		a.apply(name, a.Education.Replace(e))
	case model.SectionExperience:
		e, ok := data.([]model.Experience)
		if !ok {
			return sectionType(name, data)
		}
		a.apply(name, a.Experience.Replace(e))
	case model.SectionSkills:
		e, ok := data.([]model.Skill)
		if !ok {
			return sectionType(name, data)
		}
		a.apply(name, a.Skills.Replace(e))
	case model.SectionProjects:
		e, ok := data.([]model.Project)
		if !ok {
			return sectionType(name, data)
		}
		a.apply(name, a.Projects.Replace(e))
	case model.SectionCertifications:
		e, ok := data.([]model.Certification)
		if !ok {
			return sectionType(name, data)
		}
		a.apply(name, a.Certifications.Replace(e))
	case model.SectionLanguages:
		e, ok := data.([]model.Language)
		if !ok {
			return sectionType(name, data)
		}
		a.apply(name, a.Languages.Replace(e))
	case model.SectionAwards:
		e, ok := data.([]model.Award)
		if !ok {
			return sectionType(name, data)
		}
		a.apply(name, a.Awards.Replace(e))
	case model.SectionReferences:
		e, ok := data.([]model.Reference)
		if !ok {
			return sectionType(name, data)
		}
		a.apply(name, a.References.Replace(e))
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSection, name)
	}
	return nil
}

func sectionType(name model.Section, data any) error {
	return fmt.Errorf("%w: %s got %T", ErrSectionData, name, data)
}

// apply stores data in the snapshot, marks it dirty and notifies listeners.
// Stores call it through OnChange, so it must not touch them.
func (a *Aggregate) apply(name model.Section, data any) {
	switch v := data.(type) {
	case model.PersonalInfo:
		a.doc.PersonalInfo = v
	case []model.Education:
		a.doc.Education = v
	case []model.Experience:
		a.doc.Experience = v
	case []model.Skill:
		a.doc.Skills = v
	case []model.Project:
		a.doc.Projects = v
	case []model.Certification:
		a.doc.Certifications = v
	case []model.Language:
		a.doc.Languages = v
	case []model.Award:
		a.doc.Awards = v
	case []model.Reference:
		a.doc.References = v
	}
	a.dirty = true
	a.notify(name)
}

func (a *Aggregate) notify(name model.Section) {
	for _, fn := range a.listeners {
		fn(name)
	}
}

// Document returns a deep copy of the current document.
func (a *Aggregate) Document() model.CVDocument {
	return a.doc.Clone()
}

// TemplateID is the currently selected template.
func (a *Aggregate) TemplateID() int { return a.doc.TemplateID }

// SetTemplate applies id when the registry allows it for this user and
// reports whether it did. Rejections leave the document untouched.
func (a *Aggregate) SetTemplate(id int, premium bool) bool {
	if _, known := templates.Lookup(id); !known {
		return false
	}
	if !templates.Resolve(id, premium).Selectable {
		return false
	}
	if a.doc.TemplateID != id {
		a.doc.TemplateID = id
		a.dirty = true
		a.notify(model.SectionTemplate)
	}
	return true
}

// Load replaces the whole document, typically after reading it from
// persistence. The result is clean and listeners are not notified.
func (a *Aggregate) Load(doc model.CVDocument) {
	doc = doc.Clone()
	a.Personal.Replace(doc.PersonalInfo)
	a.doc = model.CVDocument{
		PersonalInfo:   doc.PersonalInfo,
		Education:      a.Education.Replace(doc.Education),
		Experience:     a.Experience.Replace(doc.Experience),
		Skills:         a.Skills.Replace(doc.Skills),
		Projects:       a.Projects.Replace(doc.Projects),
		Certifications: a.Certifications.Replace(doc.Certifications),
		Languages:      a.Languages.Replace(doc.Languages),
		Awards:         a.Awards.Replace(doc.Awards),
		References:     a.References.Replace(doc.References),
		TemplateID:     doc.TemplateID,
	}
	if _, known := templates.Lookup(a.doc.TemplateID); !known {
		a.doc.TemplateID = model.DefaultTemplateID
	}
	a.dirty = false
}

func (a *Aggregate) Dirty() bool { return a.dirty }

func (a *Aggregate) MarkClean() { a.dirty = false }

// SectionComplete is the step gate for a section. Personal info needs name,
// title, email and phone; education and skills need at least one entry.
// Every other section is optional.
func (a *Aggregate) SectionComplete(name model.Section) bool {
	switch name {
	case model.SectionPersonal:
		p := a.doc.PersonalInfo
		for _, v := range []string{p.FullName, p.ProfessionalTitle, p.Email, p.Phone} {
			if strings.TrimSpace(v) == "" {
				return false
			}
		}
		return true
	case model.SectionEducation:
		return len(a.doc.Education) > 0
	case model.SectionSkills:
		return len(a.doc.Skills) > 0
	}
	return true
}

// Review runs the whole-document check.
func (a *Aggregate) Review() validation.Report {
	return validation.Review(a.doc)
}
