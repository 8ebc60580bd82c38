package wikitext

import (
	"strconv"
	"strings"
)

// Template is a single template occurrence in a page's wikitext.
type Template struct {
	// Name is the template name as written, surrounding whitespace trimmed.
	Name string
	// Params maps parameter names to raw values. Positional parameters are
	// keyed by their one-based index ("1", "2", ...).
	Params map[string]string
}

// ParseTemplates returns every template in the markup in the order
// encountered, parents before the templates nested in their parameter
// values. Unterminated templates are skipped.
func ParseTemplates(markup string) []Template {
	var out []Template
	scanTemplates(markup, &out)
	return out
}

func scanTemplates(s string, out *[]Template) {
	for i := 0; i+1 < len(s); {
		if s[i] != '{' || s[i+1] != '{' {
			i++
			continue
		}
		end, ok := matchBraces(s, i)
		if !ok {
			// No closing braces; nothing after this opener can be a
			// well-formed template at this level.
			i += 2
			continue
		}
		body := s[i+2 : end-2]
		if t, ok := parseBody(body); ok {
			*out = append(*out, t)
		}
		scanTemplates(body, out)
		i = end
	}
}

// matchBraces finds the end (exclusive) of the {{...}} starting at start.
func matchBraces(s string, start int) (int, bool) {
	depth := 0
	for i := start; i+1 < len(s); {
		switch {
		case s[i] == '{' && s[i+1] == '{':
			depth++
			i += 2
		case s[i] == '}' && s[i+1] == '}':
			depth--
			i += 2
			if depth == 0 {
				return i, true
			}
		default:
			i++
		}
	}
	return 0, false
}

// parseBody splits a template body (the text between the braces) into its
// name and parameters. Pipes and equals signs inside nested templates or
// wiki links do not act as separators.
func parseBody(body string) (Template, bool) {
	segments := splitTop(body)
	name := strings.TrimSpace(segments[0])
	if name == "" {
		return Template{}, false
	}

	t := Template{Name: name, Params: make(map[string]string, len(segments)-1)}
	positional := 0
	for _, seg := range segments[1:] {
		if key, value, ok := cutTop(seg); ok {
			t.Params[strings.TrimSpace(key)] = strings.TrimSpace(value)
			continue
		}
		positional++
		t.Params[strconv.Itoa(positional)] = strings.TrimSpace(seg)
	}
	return t, true
}

// splitTop splits on pipes at nesting depth zero.
func splitTop(s string) []string {
	var parts []string
	var braces, brackets int
	last := 0
	for i := 0; i < len(s); i++ {
		switch {
		case i+1 < len(s) && s[i] == '{' && s[i+1] == '{':
			braces++
			i++
		case i+1 < len(s) && s[i] == '}' && s[i+1] == '}':
			braces--
			i++
		case i+1 < len(s) && s[i] == '[' && s[i+1] == '[':
			brackets++
			i++
		case i+1 < len(s) && s[i] == ']' && s[i+1] == ']':
			brackets--
			i++
		case s[i] == '|' && braces == 0 && brackets == 0:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	return append(parts, s[last:])
}

// cutTop splits a parameter segment at the first equals sign at nesting
// depth zero. Reports false for positional parameters.
func cutTop(s string) (key, value string, ok bool) {
	var braces, brackets int
	for i := 0; i < len(s); i++ {
		switch {
		case i+1 < len(s) && s[i] == '{' && s[i+1] == '{':
			braces++
			i++
		case i+1 < len(s) && s[i] == '}' && s[i+1] == '}':
			braces--
			i++
		case i+1 < len(s) && s[i] == '[' && s[i+1] == '[':
			brackets++
			i++
		case i+1 < len(s) && s[i] == ']' && s[i+1] == ']':
			brackets--
			i++
		case s[i] == '=' && braces == 0 && brackets == 0:
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}
