package dialect

// Direction selects which of the two conversion paths a translation performs.
// The string values double as the locale tokens accepted by the HTTP API.
type Direction string

const (
	// AmericanToBritish converts American English into British English.
	AmericanToBritish Direction = "american-to-british"
	// BritishToAmerican converts British English into American English.
	BritishToAmerican Direction = "british-to-american"
)

// Directions lists every supported direction in a stable order.
var Directions = []Direction{AmericanToBritish, BritishToAmerican}

// Valid reports whether d is one of the supported directions.
func (d Direction) Valid() bool {
	return d == AmericanToBritish || d == BritishToAmerican
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == AmericanToBritish {
		return BritishToAmerican
	}
	return AmericanToBritish
}

func (d Direction) String() string {
	return string(d)
}

// Outcome distinguishes the three ways a translation can end.
type Outcome string

const (
	// OutcomeNoMatch means nothing in the text was eligible for replacement.
	OutcomeNoMatch Outcome = "no_match"
	// OutcomeUnchanged means rules matched but the rewrite reproduced the input.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeTranslated means the plain result differs from the input.
	OutcomeTranslated Outcome = "translated"
)

// NoChangeMessage is the reply shown to users when a translation changed nothing.
const NoChangeMessage = "Everything looks good to me!"

// Change describes one replaced span of the source text.
type Change struct {
	Start       int    `json:"start"` // Byte offset into Result.Source
	End         int    `json:"end"`   // Byte offset just past the span
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
}

// Result is the outcome of translating a single text.
type Result struct {
	Source      string   `json:"source"`
	Plain       string   `json:"plain"`
	Highlighted string   `json:"highlighted"`
	Changes     []Change `json:"changes,omitempty"`
	Outcome     Outcome  `json:"outcome"`
}

// Changed reports whether the plain result differs from the source text.
func (r Result) Changed() bool {
	return r.Plain != r.Source
}

// unchangedResult is the identity result returned when no rule matched.
func unchangedResult(text string) Result {
	return Result{
		Source:      text,
		Plain:       text,
		Highlighted: text,
		Outcome:     OutcomeNoMatch,
	}
}

// TextNode represents a translatable unit extracted from structured content.
type TextNode struct {
	ID       string            // Position-derived identifier
	Text     string            // Original text content (trimmed)
	Hash     string            // SHA-256 hash of Text
	NodeType string            // Content type: "html_text", etc.
	Metadata map[string]string // Additional info (parent tag, etc.)
}

// ProcessedContent is the result of translating structured content.
type ProcessedContent struct {
	Content         string // Content with plain translations applied
	Highlighted     string // Content with highlighted translations applied
	TranslatedCount int    // Number of nodes whose text changed
	CachedCount     int    // Number of cache hits
	TotalNodes      int    // Total translatable nodes found
}

// IgnoredTags contains HTML tags whose content should not be translated.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}
