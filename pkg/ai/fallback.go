package ai

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// FallbackSummary is the canned summary used when the ai-service is
// unavailable. The choice is stable for a given name.
func FallbackSummary(fullName string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "This professional"
	}
	summaries := []string{
		"Dedicated and results-driven professional with expertise in delivering high-quality solutions. %s brings a strong analytical mindset and excellent communication skills to drive project success and team collaboration.",
		"Experienced professional with a proven track record of achieving measurable results. %s combines technical expertise with strategic thinking to solve complex challenges and deliver value to organizations.",
		"Dynamic and motivated professional with strong problem-solving abilities. %s is committed to continuous learning and innovation, bringing fresh perspectives to drive business growth and operational excellence.",
		"Detail-oriented professional with extensive experience in project management and team leadership. %s excels at building relationships, managing complex initiatives, and delivering results that exceed expectations.",
	}
	return fmt.Sprintf(summaries[pick(name, len(summaries))], name)
}

var roleBullets = []struct {
	keyword string
	bullets []string
}{
	{"software", []string{
		"Developed and maintained scalable software applications using modern technologies and frameworks",
		"Participated in code reviews and implemented best practices for software development lifecycle",
		"Debugged and resolved complex technical issues to ensure optimal system performance",
	}},
	{"manager", []string{
		"Supervised and developed a team of professionals, providing guidance and performance feedback",
		"Established and monitored key performance indicators to drive team success and goal achievement",
		"Facilitated strategic planning sessions and coordinated cross-departmental initiatives",
	}},
	{"analyst", []string{
		"Conducted comprehensive data analysis to identify trends and provide actionable business insights",
		"Created detailed reports and presentations for stakeholders and executive leadership",
		"Implemented data-driven solutions to optimize business processes and support decision-making",
	}},
	{"sales", []string{
		"Exceeded sales targets through effective client relationship management and strategic prospecting",
		"Developed and presented compelling proposals that addressed client needs and pain points",
		"Built and maintained a strong pipeline of qualified leads through networking and referrals",
	}},
}

// FallbackBullets returns up to n canned bullets for a role, skipping any
// the entry already has. Role-specific bullets come first.
func FallbackBullets(jobTitle, company string, current []string, n int) []string {
	if strings.TrimSpace(company) == "" {
		company = "the company"
	}
	base := []string{
		fmt.Sprintf("Led strategic initiatives at %s that resulted in improved operational efficiency and team productivity", company),
		"Collaborated with cross-functional teams to deliver high-impact projects on time and within budget",
		"Developed and implemented innovative solutions that enhanced business processes and customer satisfaction",
		"Managed key stakeholder relationships and communicated project progress to senior leadership",
		"Analyzed market trends and business requirements to inform strategic decision-making processes",
		"Mentored junior team members and contributed to a positive, collaborative work environment",
		"Utilized industry best practices to optimize workflows and drive continuous improvement initiatives",
	}

	var pool []string
	title := strings.ToLower(jobTitle)
	for _, r := range roleBullets {
		if strings.Contains(title, r.keyword) {
			pool = append(pool, r.bullets...)
			break
		}
	}
	off := pick(jobTitle+"|"+company, len(base))
	pool = append(pool, base[off:]...)
	pool = append(pool, base[:off]...)

	return fill(nil, pool, current, n)
}

// fill appends items from pool to out until it holds n, skipping duplicates
// of out and of existing.
func fill(out, pool, existing []string, n int) []string {
	seen := map[string]bool{}
	for _, s := range existing {
		seen[strings.ToLower(strings.TrimSpace(s))] = true
	}
	for _, s := range out {
		seen[strings.ToLower(s)] = true
	}
	for _, s := range pool {
		if len(out) >= n {
			break
		}
		k := strings.ToLower(s)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}

func pick(key string, n int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(key)))
	return int(h.Sum32() % uint32(n))
}
