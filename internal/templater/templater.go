// Package templater performs the simple token-substitution pass that runs
// before placeholder substitution when the caller asks for it. It is a flat
// regex replace over a fixed token set, not a template language; substituted
// values are never re-scanned.
package templater

import (
	"regexp"
	"strings"
	"time"
)

var (
	datePattern  = regexp.MustCompile(`<%\s*tp\.date\.now\(\s*(?:"([^"]*)")?\s*\)\s*%>`)
	timePattern  = regexp.MustCompile(`<%\s*tp\.time\.now\(\s*\)\s*%>`)
	titlePattern = regexp.MustCompile(`<%\s*tp\.file\.title\s*%>`)
)

// momentReplacements maps the moment.js-style format letters vault templates
// use onto Go reference-time layouts. Longest tokens first so "YYYY" is not
// consumed as two "YY"s.
var momentReplacements = []struct {
	from string
	to   string
}{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

// Context supplies the values tokens resolve against.
type Context struct {
	Title string
	Now   time.Time
}

// Process replaces date, time and file-title tokens in body.
func Process(body string, ctx Context) string {
	now := ctx.Now
	if now.IsZero() {
		now = time.Now()
	}

	out := datePattern.ReplaceAllStringFunc(body, func(match string) string {
		groups := datePattern.FindStringSubmatch(match)
		layout := "2006-01-02"
		if len(groups) > 1 && groups[1] != "" {
			layout = momentToGoLayout(groups[1])
		}
		return now.Format(layout)
	})

	out = timePattern.ReplaceAllString(out, now.Format("15:04"))
	out = titlePattern.ReplaceAllString(out, ctx.Title)
	return out
}

func momentToGoLayout(format string) string {
	layout := format
	for _, r := range momentReplacements {
		layout = strings.ReplaceAll(layout, r.from, r.to)
	}
	return layout
}
