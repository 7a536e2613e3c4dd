// Package binding fills `${column}` placeholders from a source row.
package binding

import (
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Row looks up a column value by name; ok is false when the column is missing or blank.
type Row interface {
	Value(column string) (string, bool)
}

// Map is a Row backed by a map keyed by lower-case column name.
type Map map[string]string

// Value implements Row with case-insensitive, whitespace-trimmed lookup.
func (m Map) Value(column string) (string, bool) {
	v, ok := m[strings.ToLower(strings.TrimSpace(column))]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Interpolate replaces every ${column} in text with the row's value.
// A placeholder may list alternatives, ${imagen|codigo}, the first present one wins.
// Unresolved placeholders are left in place and reported through ok.
func Interpolate(text string, row Row) (out string, ok bool) {
	ok = true
	out = exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 || row == nil {
			ok = false
			return match
		}
		for _, name := range strings.Split(groups[1], "|") {
			if name = strings.TrimSpace(name); name == "" {
				continue
			}
			if val, found := row.Value(name); found {
				return val
			}
		}
		ok = false
		return match
	})
	return out, ok
}

// References lists the column names a template refers to, in order of appearance.
func References(text string) []string {
	var names []string
	for _, m := range exprPattern.FindAllStringSubmatch(text, -1) {
		for _, name := range strings.Split(m[1], "|") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// IsTemplate reports whether text contains at least one placeholder.
func IsTemplate(text string) bool { return exprPattern.MatchString(text) }
