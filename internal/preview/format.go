package preview

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

var dateLayouts = []string{"01/2006", "2006-01-02", "2006-01"}

// FormatDate renders stored dates as "Mar 2024". Values in no known layout
// are returned unchanged so half-typed input still shows up.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return s
}

// FormatRange renders "start - end", with "Present" for current entries.
func FormatRange(start, end string, current bool) string {
	from := FormatDate(start)
	to := FormatDate(end)
	if current {
		to = "Present"
	}
	switch {
	case from == "" && to == "":
		return ""
	case to == "":
		return from
	case from == "":
		return to
	}
	return from + " - " + to
}

// LinkLabel shortens a URL to its registrable domain plus path, e.g.
// "https://www.linkedin.com/in/ada/" becomes "linkedin.com/in/ada".
func LinkLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	host := u.Hostname()
	label := strings.TrimPrefix(host, "www.")
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		label = strings.TrimPrefix(etld, "www.")
	}
	return label + strings.TrimSuffix(u.EscapedPath(), "/")
}
