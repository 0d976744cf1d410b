package preview

import (
	"strings"
	"testing"

	"cv-builder/internal/model"
	"cv-builder/internal/templates"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	tests := map[string]string{
		"03/2024":    "Mar 2024",
		"12/1999":    "Dec 1999",
		"2024-03-15": "Mar 2024",
		"2021-07":    "Jul 2021",
		"Summer 24":  "Summer 24",
		"13/2024":    "13/2024",
		"":           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatDate(in), in)
	}
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "Jan 2020 - Mar 2022", FormatRange("01/2020", "03/2022", false))
	assert.Equal(t, "Jan 2020 - Present", FormatRange("01/2020", "03/2022", true))
	assert.Equal(t, "Jan 2020", FormatRange("01/2020", "", false))
	assert.Equal(t, "Present", FormatRange("", "", true))
	assert.Equal(t, "", FormatRange("", "", false))
}

func TestLinkLabel(t *testing.T) {
	assert.Equal(t, "linkedin.com/in/ada", LinkLabel("https://www.linkedin.com/in/ada/"))
	assert.Equal(t, "example.co.uk/work", LinkLabel("https://portfolio.example.co.uk/work"))
	assert.Equal(t, "not a url", LinkLabel("not a url"))
}

func TestGroupSkills(t *testing.T) {
	groups := GroupSkills([]model.Skill{
		{Name: "Python", Category: "Lang"},
		{Name: "Git", Category: ""},
		{Name: "Go", Category: "Lang"},
		{Name: "  "},
	})
	require.Len(t, groups, 2)
	assert.Equal(t, "Lang", groups[0].Name)
	assert.Equal(t, "Python", groups[0].Items[0].Heading)
	assert.Equal(t, "Go", groups[0].Items[1].Heading)
	assert.Equal(t, "Other", groups[1].Name)
	require.Len(t, groups[1].Items, 1)
	assert.Equal(t, "Git", groups[1].Items[0].Heading)
}

func sampleDoc() model.CVDocument {
	doc := model.NewCVDocument()
	doc.PersonalInfo = model.PersonalInfo{
		FullName:          "Ada Lovelace",
		ProfessionalTitle: "Analyst",
		Email:             "ada@example.com",
		Phone:             "+44 20 7946 0958",
		LinkedIn:          "https://www.linkedin.com/in/ada",
		Summary:           "Mathematician known for work on the Analytical Engine.",
	}
	doc.Experience = []model.Experience{{
		ID: 1, JobTitle: "Engineer", Company: "Analytical Engines", StartDate: "01/1842",
		IsCurrent: true, Description: []string{"Published the first algorithm", ""},
	}}
	doc.Education = []model.Education{{ID: 2}}
	doc.Skills = []model.Skill{{ID: 3, Name: "Python", Category: "Lang"}, {ID: 4, Name: "Git"}}
	doc.Projects = []model.Project{{ID: 5, Title: "Notes", Technologies: []string{"Quill"}}}
	return doc
}

func TestBuild(t *testing.T) {
	v := Build(sampleDoc(), templates.Resolve(2, false))
	assert.True(t, v.Watermark)
	assert.Equal(t, WatermarkText, v.WatermarkText)
	assert.Equal(t, "Ada Lovelace", v.Header.Name)

	var keys []model.Section
	for _, s := range v.Sections {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []model.Section{
		model.SectionPersonal, model.SectionExperience, model.SectionSkills, model.SectionProjects,
	}, keys, "blank education entry is skipped and order is fixed")

	exp := v.Sections[1].Items[0]
	assert.Equal(t, "Jan 1842 - Present", exp.Dates)
	assert.Equal(t, []string{"Published the first algorithm"}, exp.Bullets)

	contacts := map[string]Contact{}
	for _, c := range v.Header.Contacts {
		contacts[c.Kind] = c
	}
	assert.Equal(t, "linkedin.com/in/ada", contacts["linkedin"].Text)
	assert.Equal(t, "mailto:ada@example.com", contacts["email"].Href)
}

func TestBuild_Placeholders(t *testing.T) {
	v := Build(model.NewCVDocument(), templates.Resolve(5, true))
	assert.Equal(t, "Your Name", v.Header.Name)
	assert.Equal(t, "Professional Title", v.Header.Title)
	assert.Empty(t, v.Sections)
	assert.False(t, v.Watermark)
	assert.Empty(t, v.WatermarkText)
}

func TestRender(t *testing.T) {
	v := Build(sampleDoc(), templates.Resolve(1, false))
	html, err := RenderHTML(v, PageSetup{Size: "A4"})
	require.NoError(t, err)
	assert.Contains(t, html, "@page { size: A4; margin: 0.5in; }")
	assert.Contains(t, html, "break-inside: avoid")

	dom, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", dom.Find("h1.cv-name").Text())
	assert.True(t, dom.Find("main.cv").HasClass("tpl-professional"))
	assert.Equal(t, "SmartCV • Free Plan", dom.Find(".cv-watermark").Text())
	assert.Equal(t, 4, dom.Find("section.cv-section").Length())
	assert.Equal(t, "Professional Summary", dom.Find("#section-personal_info h2").Text())
	assert.Equal(t, 1, dom.Find("#section-experience .cv-bullets li").Length())
	assert.Equal(t, []string{"Lang", "Other"}, dom.Find(".cv-skill-group h3").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	}))
	href, ok := dom.Find(".contact-linkedin a").Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "https://www.linkedin.com/in/ada", href)
}

func TestRender_PremiumHasNoWatermark(t *testing.T) {
	v := Build(sampleDoc(), templates.Resolve(7, true))
	html, err := RenderHTML(v, DefaultPage)
	require.NoError(t, err)

	dom, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Zero(t, dom.Find(".cv-watermark").Length())
	assert.True(t, dom.Find("main.cv").HasClass("tpl-academic"))
	assert.Contains(t, html, "size: Letter")
}

func TestRender_EscapesUserInput(t *testing.T) {
	doc := model.NewCVDocument()
	doc.PersonalInfo.FullName = "<script>alert(1)</script>"
	html, err := RenderHTML(Build(doc, templates.Resolve(1, true)), DefaultPage)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}
