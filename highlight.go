package dialect

import "strings"

// Highlighter wraps replaced spans in inline markup.
type Highlighter struct {
	Open  string
	Close string
}

// HighlightClass is the CSS class carried by the default marker.
const HighlightClass = "highlight"

// DefaultHighlighter wraps spans in <span class="highlight">…</span>.
var DefaultHighlighter = Highlighter{
	Open:  `<span class="` + HighlightClass + `">`,
	Close: `</span>`,
}

// Wrap surrounds s with the marker.
func (h Highlighter) Wrap(s string) string {
	return h.Open + s + h.Close
}

// Strip removes every Open marker together with the first Close marker that
// follows it. Text outside marker pairs is returned untouched, so stripping a
// highlighted result yields the matching plain result.
//
// Markers are recognised by their text alone. If the source already contains
// the Open marker, Strip removes that copy too and the output no longer
// equals Result.Plain. Callers that accept markup as input should compare
// against Plain directly or pick markers that cannot occur in it.
func (h Highlighter) Strip(s string) string {
	if h.Open == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.Index(s, h.Open)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		s = s[i+len(h.Open):]

		j := strings.Index(s, h.Close)
		if j < 0 || h.Close == "" {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:j])
		s = s[j+len(h.Close):]
	}
}
