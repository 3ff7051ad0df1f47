// Package summary turns a paper into the tagged-section prompt the LLM
// answers and parses that answer back into fields.
package summary

import (
	"strings"

	"paper-summary-api/internal/pkg/textutil"
)

// Summary is the structured form of an LLM summary reply.
type Summary struct {
	Title        string
	Authors      string
	Abstract     string
	Introduction string
	Methods      string
	Results      string
	Discussion   string
	Conclusion   string
	Keywords     []string
}

type section int

const (
	sectionNone section = iota
	sectionTitle
	sectionAuthors
	sectionAbstract
	sectionIntroduction
	sectionMethods
	sectionResults
	sectionDiscussion
	sectionConclusion
	sectionKeywords
)

const (
	MarkerTitle        = "**TITLE:**"
	MarkerAuthors      = "**AUTHORS:**"
	MarkerAbstract     = "**ABSTRACT:**"
	MarkerIntroduction = "**INTRODUCTION:**"
	MarkerMethods      = "**METHODS:**"
	MarkerResults      = "**RESULTS:**"
	MarkerDiscussion   = "**DISCUSSION:**"
	MarkerConclusion   = "**CONCLUSION:**"
	MarkerKeywords     = "**KEYWORDS:**"
)

var markers = []struct {
	token   string
	section section
}{
	{MarkerTitle, sectionTitle},
	{MarkerAuthors, sectionAuthors},
	{MarkerAbstract, sectionAbstract},
	{MarkerIntroduction, sectionIntroduction},
	{MarkerMethods, sectionMethods},
	{MarkerResults, sectionResults},
	{MarkerDiscussion, sectionDiscussion},
	{MarkerConclusion, sectionConclusion},
	{MarkerKeywords, sectionKeywords},
}

// ParseSummary extracts the marked sections from an LLM reply.
//
// A line starting with a marker opens that section; the rest of the line is
// its first value. Following lines that do not start with "**" are appended
// with a single space. The keywords line is comma-split and closes the open
// section. Missing markers leave their field empty.
func ParseSummary(text string) Summary {
	out := Summary{Keywords: []string{}}
	current := sectionNone

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if sec, rest, ok := matchMarker(line); ok {
			if sec == sectionKeywords {
				out.Keywords = splitKeywords(rest)
				current = sectionNone
				continue
			}
			current = sec
			*out.field(sec) = rest
			continue
		}

		if current == sectionNone || strings.HasPrefix(line, "**") {
			continue
		}
		field := out.field(current)
		if *field == "" {
			*field = line
		} else {
			*field += " " + line
		}
	}

	out.sanitize()
	return out
}

func matchMarker(line string) (section, string, bool) {
	for _, m := range markers {
		if strings.HasPrefix(line, m.token) {
			return m.section, strings.TrimSpace(strings.TrimPrefix(line, m.token)), true
		}
	}
	return sectionNone, "", false
}

func splitKeywords(s string) []string {
	keywords := []string{}
	for _, kw := range strings.Split(s, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func (s *Summary) field(sec section) *string {
	switch sec {
	case sectionTitle:
		return &s.Title
	case sectionAuthors:
		return &s.Authors
	case sectionAbstract:
		return &s.Abstract
	case sectionIntroduction:
		return &s.Introduction
	case sectionMethods:
		return &s.Methods
	case sectionResults:
		return &s.Results
	case sectionDiscussion:
		return &s.Discussion
	case sectionConclusion:
		return &s.Conclusion
	default:
		panic("summary: no text field for section")
	}
}

func (s *Summary) sanitize() {
	for _, f := range []*string{
		&s.Title, &s.Authors, &s.Abstract, &s.Introduction,
		&s.Methods, &s.Results, &s.Discussion, &s.Conclusion,
	} {
		*f = textutil.Sanitize(*f)
	}
	kept := s.Keywords[:0]
	for _, kw := range s.Keywords {
		if kw = textutil.Sanitize(kw); kw != "" {
			kept = append(kept, kw)
		}
	}
	s.Keywords = kept
}
