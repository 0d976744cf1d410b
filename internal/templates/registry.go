// Package templates holds the fixed catalogue of CV templates and the rules
// deciding which of them a user may select.
package templates

import "strings"

// Tier separates templates anyone can use from subscriber-only ones.
type Tier string

const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Style carries the presentation tokens a template applies to each region of
// the preview. The values are opaque class names.
type Style struct {
	Container   string `json:"container"`
	Header      string `json:"header"`
	Name        string `json:"name"`
	TitleText   string `json:"title_text"`
	Section     string `json:"section"`
	SectionHead string `json:"section_head"`
	Text        string `json:"text"`
	Accent      string `json:"accent"`
}

type Template struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tier        Tier   `json:"tier"`
	Style       Style  `json:"style"`
}

func (t Template) Premium() bool { return t.Tier == TierPremium }

// DefaultID is used for unknown ids and as the render fallback.
const DefaultID = 1

var catalogue = []Template{
	{
		ID: 1, Name: "Professional", Tier: TierStandard,
		Description: "Clean and traditional layout suited to most industries",
		Style: Style{
			Container: "tpl-professional", Header: "header-centered border-bottom",
			Name: "name-serif", TitleText: "title-muted", Section: "section-ruled",
			SectionHead: "head-uppercase", Text: "text-dark", Accent: "accent-navy",
		},
	},
	{
		ID: 2, Name: "Creative", Tier: TierStandard,
		Description: "Colourful header and bold headings for creative roles",
		Style: Style{
			Container: "tpl-creative", Header: "header-banner",
			Name: "name-display", TitleText: "title-light", Section: "section-card",
			SectionHead: "head-accent", Text: "text-dark", Accent: "accent-purple",
		},
	},
	{
		ID: 3, Name: "Minimalist", Tier: TierStandard,
		Description: "Generous whitespace and restrained typography",
		Style: Style{
			Container: "tpl-minimalist", Header: "header-left",
			Name: "name-light", TitleText: "title-muted", Section: "section-plain",
			SectionHead: "head-small", Text: "text-gray", Accent: "accent-black",
		},
	},
	{
		ID: 4, Name: "Executive", Tier: TierPremium,
		Description: "Formal layout for senior and leadership positions",
		Style: Style{
			Container: "tpl-executive", Header: "header-dark",
			Name: "name-serif-large", TitleText: "title-gold", Section: "section-ruled",
			SectionHead: "head-serif", Text: "text-dark", Accent: "accent-gold",
		},
	},
	{
		ID: 5, Name: "Tech Modern", Tier: TierPremium,
		Description: "Monospace accents and skill-forward layout for engineers",
		Style: Style{
			Container: "tpl-tech-modern", Header: "header-split",
			Name: "name-mono", TitleText: "title-teal", Section: "section-plain",
			SectionHead: "head-mono", Text: "text-slate", Accent: "accent-teal",
		},
	},
	{
		ID: 6, Name: "Designer Pro", Tier: TierPremium,
		Description: "Sidebar layout with strong visual hierarchy",
		Style: Style{
			Container: "tpl-designer-pro", Header: "header-sidebar",
			Name: "name-display", TitleText: "title-rose", Section: "section-card",
			SectionHead: "head-accent", Text: "text-dark", Accent: "accent-rose",
		},
	},
	{
		ID: 7, Name: "Academic", Tier: TierPremium,
		Description: "Publication-friendly layout for research and teaching",
		Style: Style{
			Container: "tpl-academic", Header: "header-centered",
			Name: "name-serif", TitleText: "title-muted", Section: "section-ruled",
			SectionHead: "head-small-caps", Text: "text-dark", Accent: "accent-maroon",
		},
	},
	{
		ID: 8, Name: "International", Tier: TierPremium,
		Description: "Europass-style layout with language proficiency emphasis",
		Style: Style{
			Container: "tpl-international", Header: "header-left border-bottom",
			Name: "name-sans", TitleText: "title-blue", Section: "section-plain",
			SectionHead: "head-uppercase", Text: "text-dark", Accent: "accent-blue",
		},
	},
}

// Lookup returns the template with the given id.
func Lookup(id int) (Template, bool) {
	if id < 1 || id > len(catalogue) {
		return Template{}, false
	}
	return catalogue[id-1], true
}

// ByName resolves a template by its display name or a slug of it
// ("tech modern", "tech-modern", "tech_modern"). "modern" is an older name
// for the default template.
func ByName(name string) (int, bool) {
	key := slug(name)
	if key == "modern" {
		return DefaultID, true
	}
	for _, t := range catalogue {
		if slug(t.Name) == key {
			return t.ID, true
		}
	}
	return 0, false
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}

// Resolution is the outcome of checking a template against a subscription.
type Resolution struct {
	Template          Template `json:"template"`
	RequiresWatermark bool     `json:"requires_watermark"`
	Selectable        bool     `json:"selectable"`
}

// Resolve looks up id (falling back to the default template) and reports
// whether the user may select it and whether its output is watermarked.
// Standard templates are watermarked for non-subscribers; premium templates
// are not selectable for them at all.
func Resolve(id int, premium bool) Resolution {
	t, ok := Lookup(id)
	if !ok {
		t, _ = Lookup(DefaultID)
	}
	return Resolution{
		Template:          t,
		RequiresWatermark: !t.Premium() && !premium,
		Selectable:        !t.Premium() || premium,
	}
}

// ResolveForRender is Resolve, except that a template the user may not select
// is swapped for the default one. A stored document can name a premium
// template after the subscription lapsed.
func ResolveForRender(id int, premium bool) Resolution {
	res := Resolve(id, premium)
	if !res.Selectable {
		return Resolve(DefaultID, premium)
	}
	return res
}

// Option describes one entry of the template picker.
type Option struct {
	Template
	Locked bool `json:"locked"`
}

// List returns every template in id order, marking the ones the user cannot pick.
func List(premium bool) []Option {
	out := make([]Option, 0, len(catalogue))
	for _, t := range catalogue {
		out = append(out, Option{Template: t, Locked: t.Premium() && !premium})
	}
	return out
}

// Count is the number of templates in the catalogue.
func Count() int { return len(catalogue) }
