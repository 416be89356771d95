// Package transform implements the token substitution engine used to render
// course metadata templates. Tokens have the form {key|filter1|filter2:arg};
// filters chain left to right and evaluation is total: missing keys render
// as empty strings and unknown filters pass their input through unchanged.
package transform

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var tokenPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Transformer renders template strings against captured-value maps and a
// set of named lookup tables.
type Transformer struct {
	maps map[string]map[string]string
}

// New creates an empty Transformer.
func New() *Transformer {
	return &Transformer{maps: make(map[string]map[string]string)}
}

// RegisterMap registers a static key-value lookup table under name, used by
// the map:<name> filter. Re-registering a name replaces the table.
func (t *Transformer) RegisterMap(name string, table map[string]string) {
	copied := make(map[string]string, len(table))
	for k, v := range table {
		copied[k] = v
	}
	t.maps[name] = copied
}

// Maps exports all registered lookup tables for configuration round-trips.
func (t *Transformer) Maps() map[string]map[string]string {
	out := make(map[string]map[string]string, len(t.maps))
	for name, table := range t.maps {
		copied := make(map[string]string, len(table))
		for k, v := range table {
			copied[k] = v
		}
		out[name] = copied
	}
	return out
}

// Apply renders template against values. It never fails; worst case it
// echoes the literal template text.
func (t *Transformer) Apply(template string, values map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(token string) string {
		inner := token[1 : len(token)-1]
		parts := strings.Split(inner, "|")

		value := values[strings.TrimSpace(parts[0])]
		for _, filter := range parts[1:] {
			value = t.applyFilter(strings.TrimSpace(filter), value)
		}
		return value
	})
}

func (t *Transformer) applyFilter(filter, value string) string {
	name, arg := filter, ""
	if idx := strings.Index(filter, ":"); idx >= 0 {
		name, arg = filter[:idx], filter[idx+1:]
	}

	switch name {
	case "upper":
		return strings.ToUpper(value)
	case "lower":
		return strings.ToLower(value)
	case "titlecase":
		return titlecase(value)
	case "truncate":
		return truncate(value, arg)
	case "clean":
		return clean(value)
	case "extract_grade":
		return extractGrade(value)
	case "map":
		return t.lookup(arg, value)
	default:
		slog.Debug("Unknown template filter, passing value through", "filter", name)
		return value
	}
}

// titlecase capitalizes the first letter of each whitespace-separated
// word, preserving the separators themselves.
func titlecase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	atWordStart := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			atWordStart = true
			b.WriteRune(r)
			continue
		}
		if atWordStart {
			r = unicode.ToUpper(r)
			atWordStart = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// truncate cuts the value to at most n characters, no ellipsis. A
// malformed or negative length leaves the value untouched.
func truncate(s, arg string) string {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// clean replaces every character outside [A-Za-z0-9_-] with an underscore.
func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

var leadingDigits = regexp.MustCompile(`^[0-9]+`)

// extractGrade pulls the leading numeric portion of a value ("10a" -> "10").
// Values without leading digits pass through unchanged.
func extractGrade(s string) string {
	if grade := leadingDigits.FindString(s); grade != "" {
		return grade
	}
	return s
}

// lookup resolves value in the named table, case-insensitively. A miss or
// an unregistered table passes the original value through; lookup tables
// are a convenience, not a validation gate.
func (t *Transformer) lookup(name, value string) string {
	table, ok := t.maps[name]
	if !ok {
		return value
	}
	for k, v := range table {
		if strings.EqualFold(k, value) {
			return v
		}
	}
	return value
}
