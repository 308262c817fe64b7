package dialect

// Dictionary is an effective, direction-resolved lookup table.
type Dictionary map[string]string

// Invert swaps keys and values of m into a new map; m is left untouched.
// When several keys share a value the lexicographically greatest key wins,
// so the result does not depend on map iteration order.
func Invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if prev, ok := out[v]; ok && prev > k {
			continue
		}
		out[v] = k
	}
	return out
}

// merge copies tables into a fresh dictionary in order; later tables win.
func merge(tables ...map[string]string) Dictionary {
	size := 0
	for _, t := range tables {
		size += len(t)
	}
	out := make(Dictionary, size)
	for _, t := range tables {
		for k, v := range t {
			out[k] = v
		}
	}
	return out
}

// Compose builds the word/phrase dictionary and the title dictionary for dir.
// Both are freshly allocated on every call.
func Compose(t *Tables, dir Direction) (dict Dictionary, titles Dictionary) {
	if dir == BritishToAmerican {
		return merge(t.BritishOnly, Invert(t.Spelling)), merge(Invert(t.Titles))
	}
	return merge(t.AmericanOnly, t.Spelling), merge(t.Titles)
}
