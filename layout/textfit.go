package layout

import "strings"

// Ellipsis marks text cut off by the line budget.
const Ellipsis = "..."

// Fitter wraps text into a bounded box using a width Measurer.
type Fitter struct {
	m Measurer
}

// NewFitter returns a Fitter measuring with m.
func NewFitter(m Measurer) *Fitter { return &Fitter{m: m} }

// Wrap greedily packs whitespace-separated words into at most maxLines lines of at most maxWidth mm.
//
// Once maxLines lines are closed and another one would be needed the remaining words are
// dropped and the last line is shortened until it fits with a trailing ellipsis. A single word
// wider than maxWidth is kept whole on its own line.
func (f *Fitter) Wrap(text string, maxWidth float64, style FontStyle, size float64, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || maxLines < 1 {
		return nil
	}

	var lines []string
	current := ""
	truncated := false
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if f.m.TextWidth(candidate, style, size) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
		if len(lines) >= maxLines {
			truncated = true
			break
		}
	}
	if !truncated && current != "" {
		lines = append(lines, current)
	}

	if truncated {
		lines = lines[:maxLines]
		lines[maxLines-1] = f.ellipsize(lines[maxLines-1], maxWidth, style, size)
	}
	return lines
}

// ellipsize strips trailing runes until line+"..." fits or only three runes are left.
func (f *Fitter) ellipsize(line string, maxWidth float64, style FontStyle, size float64) string {
	runes := []rune(line)
	for len(runes) > 3 && f.m.TextWidth(string(runes)+Ellipsis, style, size) > maxWidth {
		runes = runes[:len(runes)-1]
	}
	if len(runes) > 3 {
		return string(runes) + Ellipsis
	}
	return Ellipsis
}

// Lines wraps text and measures every resulting line.
func (f *Fitter) Lines(text string, maxWidth float64, style FontStyle, size float64, maxLines int) []TextLine {
	wrapped := f.Wrap(text, maxWidth, style, size, maxLines)
	out := make([]TextLine, 0, len(wrapped))
	for _, s := range wrapped {
		out = append(out, TextLine{Content: s, Width: f.m.TextWidth(s, style, size)})
	}
	return out
}
