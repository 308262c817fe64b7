package dialect

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchMap maps lowercased surface text found in the input to its replacement.
// Keys may overlap; the rewrite resolves that by trying longer keys first.
type MatchMap map[string]string

var (
	// wordPattern captures plain words as well as hyphenated and contracted
	// compounds ("mother-in-law", "o'clock") as single tokens.
	wordPattern = regexp.MustCompile(`(\w+([-'])(\w+)?['-]?(\w+))|\w+`)

	// 12-hour clock times with no leading zero on the hour.
	americanTimePattern = regexp.MustCompile(`\b(?:1[0-2]|[1-9]):[0-5][0-9]\b`)
	britishTimePattern  = regexp.MustCompile(`\b(?:1[0-2]|[1-9])[.:][0-5][0-9]\b`)
)

// CollectMatches scans text for every span eligible for replacement in dir.
// Categories run in a fixed order: titles, phrases, words, times. A later
// category overwrites an earlier one registering the same key.
// An empty map means the text holds nothing to translate.
func CollectMatches(text string, dict, titles Dictionary, dir Direction) MatchMap {
	lower := strings.ToLower(text)
	matches := make(MatchMap)

	collectTitles(lower, titles, matches)
	collectPhrases(lower, dict, matches)
	collectWords(lower, dict, matches)
	collectTimes(lower, dir, matches)

	return matches
}

// collectTitles registers both the dotted and undotted form of every title
// present in the text, each mapping to the capitalised target title.
func collectTitles(lower string, titles Dictionary, matches MatchMap) {
	for from, to := range titles {
		target := capitalize(to)
		base := strings.TrimSuffix(strings.ToLower(from), ".")
		for _, form := range []string{base, base + "."} {
			if containsToken(lower, form) {
				matches[form] = target
			}
		}
	}
}

func collectPhrases(lower string, dict Dictionary, matches MatchMap) {
	for from, to := range dict {
		if strings.Contains(from, " ") && strings.Contains(lower, from) {
			matches[from] = to
		}
	}
}

func collectWords(lower string, dict Dictionary, matches MatchMap) {
	for _, word := range wordPattern.FindAllString(lower, -1) {
		if to, ok := dict[word]; ok {
			matches[word] = to
		}
	}
}

func collectTimes(lower string, dir Direction, matches MatchMap) {
	if dir == BritishToAmerican {
		for _, t := range britishTimePattern.FindAllString(lower, -1) {
			matches[t] = strings.Replace(t, ".", ":", 1)
		}
		return
	}
	for _, t := range americanTimePattern.FindAllString(lower, -1) {
		matches[t] = strings.Replace(t, ":", ".", 1)
	}
}

// containsToken reports whether form occurs in s without being part of a
// longer word.
func containsToken(s, form string) bool {
	if form == "" || !strings.Contains(s, form) {
		return false
	}
	return regexp.MustCompile(boundedPattern(form)).MatchString(s)
}

// boundedPattern quotes key and anchors each edge that is a word character,
// so "dr" matches "Dr Who" but not "address".
func boundedPattern(key string) string {
	quoted := regexp.QuoteMeta(key)
	first, _ := utf8.DecodeRuneInString(key)
	last, _ := utf8.DecodeLastRuneInString(key)
	if isWordRune(first) {
		quoted = `\b` + quoted
	}
	if isWordRune(last) {
		quoted += `\b`
	}
	return quoted
}

// isWordRune mirrors the ASCII-only \w class used by the regexp package.
func isWordRune(r rune) bool {
	return r == '_' || (r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
