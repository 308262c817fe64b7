package dialect

import (
	"regexp"
	"sort"
	"strings"
)

// Rewrite replaces every span of text matching a key of m with its
// replacement and renders both the plain and the highlighted output from the
// same list of spans.
//
// Keys are tried longest first, so a phrase wins over a word nested inside it.
// Matching is case-insensitive; replacements are inserted exactly as stored.
// Text outside the spans is copied unchanged into both outputs, including any
// text that looks like h's markers; see Highlighter.Strip.
func Rewrite(text string, m MatchMap, h Highlighter) Result {
	if len(m) == 0 {
		return unchangedResult(text)
	}

	re := alternation(m)
	changes := findChanges(text, re, m)

	result := Result{
		Source:      text,
		Plain:       render(text, changes, nil),
		Highlighted: render(text, changes, &h),
		Changes:     changes,
		Outcome:     OutcomeUnchanged,
	}
	if result.Plain != text {
		result.Outcome = OutcomeTranslated
	}
	return result
}

// sortedKeys orders keys by descending length; equal lengths sort
// lexicographically so the pattern is reproducible.
func sortedKeys(m MatchMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// alternation compiles one case-insensitive pattern from all keys.
// Every key is quoted, so compilation cannot fail on dictionary content.
func alternation(m MatchMap) *regexp.Regexp {
	keys := sortedKeys(m)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = boundedPattern(k)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(parts, "|") + `)`)
}

func findChanges(text string, re *regexp.Regexp, m MatchMap) []Change {
	locs := re.FindAllStringIndex(text, -1)
	changes := make([]Change, 0, len(locs))
	for _, loc := range locs {
		original := text[loc[0]:loc[1]]
		replacement, ok := m[strings.ToLower(original)]
		if !ok {
			// Case folding matched a form whose lowercase spelling is not a key.
			continue
		}
		changes = append(changes, Change{
			Start:       loc[0],
			End:         loc[1],
			Original:    original,
			Replacement: replacement,
		})
	}
	return changes
}

// render rebuilds text with every change applied, wrapping replacements when
// a highlighter is given.
func render(text string, changes []Change, h *Highlighter) string {
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, c := range changes {
		b.WriteString(text[last:c.Start])
		if h != nil {
			b.WriteString(h.Wrap(c.Replacement))
		} else {
			b.WriteString(c.Replacement)
		}
		last = c.End
	}
	b.WriteString(text[last:])
	return b.String()
}
