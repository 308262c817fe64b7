package dialect

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// InvalidLocaleMessage is the user-facing message for an unknown locale.
const InvalidLocaleMessage = "Invalid value for locale field"

// DirectionTags maps each direction to its (source, target) language tags.
var DirectionTags = map[Direction][2]language.Tag{
	AmericanToBritish: {language.AmericanEnglish, language.BritishEnglish},
	BritishToAmerican: {language.BritishEnglish, language.AmericanEnglish},
}

// dialectMatcher resolves English variants to the two supported dialects.
// Regional variants fall to the closer of the two (en-CA to en-US, en-AU to en-GB).
var dialectMatcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
})

// ParseDirection converts a locale token into a Direction.
// Tokens are matched exactly, as clients send them.
func ParseDirection(locale string) (Direction, error) {
	d := Direction(locale)
	if !d.Valid() {
		return "", &ValidationError{Field: "locale", Message: InvalidLocaleMessage}
	}
	return d, nil
}

// DirectionFromTags picks the direction that converts text written in the
// from dialect into the to dialect. Both arguments are BCP 47 tags of an
// English variant ("en-US", "en_GB", "en-AU").
func DirectionFromTags(from, to string) (Direction, error) {
	src, err := matchDialect("from", from)
	if err != nil {
		return "", err
	}
	dst, err := matchDialect("to", to)
	if err != nil {
		return "", err
	}

	switch {
	case src == language.AmericanEnglish && dst == language.BritishEnglish:
		return AmericanToBritish, nil
	case src == language.BritishEnglish && dst == language.AmericanEnglish:
		return BritishToAmerican, nil
	default:
		return "", &ValidationError{Message: "source and target resolve to the same dialect"}
	}
}

func matchDialect(field, raw string) (language.Tag, error) {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(raw), "_", "-"))
	if err != nil {
		return language.Und, &ValidationError{Field: field, Message: "unparseable language tag " + raw}
	}
	if base, _ := tag.Base(); base.String() != "en" {
		return language.Und, &ValidationError{Field: field, Message: "not an English variant: " + raw}
	}
	_, idx, conf := dialectMatcher.Match(tag)
	if conf == language.No {
		return language.Und, &ValidationError{Field: field, Message: "unsupported dialect: " + raw}
	}
	if idx == 1 {
		return language.BritishEnglish, nil
	}
	return language.AmericanEnglish, nil
}

// DisplayName returns a human-readable label such as
// "American English → British English".
func (d Direction) DisplayName() string {
	tags, ok := DirectionTags[d]
	if !ok {
		return string(d)
	}
	namer := display.English.Tags()
	return namer.Name(tags[0]) + " → " + namer.Name(tags[1])
}

// HTMLLang returns the lang attribute value for text produced in direction d.
func (d Direction) HTMLLang() string {
	if tags, ok := DirectionTags[d]; ok {
		return tags[1].String()
	}
	return "en"
}
