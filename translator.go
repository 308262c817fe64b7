package dialect

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// Translator converts text between American and British English.
// It is safe for concurrent use; every call reads one table snapshot.
type Translator struct {
	snapshot    atomic.Pointer[snapshot]
	cache       TranslationCache
	highlighter Highlighter
	processors  map[string]ContentProcessor
	concurrency int
	logger      zerolog.Logger
}

// snapshot pairs a table set with its fingerprint so cache keys are cheap.
type snapshot struct {
	tables      *Tables
	fingerprint string
}

// TranslationCache is the interface for result caching.
// Values are JSON-encoded Result documents.
type TranslationCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
}

// ContentProcessor extracts translatable text from structured content and
// writes translated text back.
type ContentProcessor interface {
	Extract(content string) (any, []TextNode, error)
	// Apply writes results (keyed by node hash) into parsed. With highlight
	// set, every replaced span is rendered as a highlight element.
	Apply(parsed any, nodes []TextNode, results map[string]Result, highlight bool) (string, error)
	ContentType() string
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the result cache.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithHighlighter overrides the marker wrapped around replaced spans.
func WithHighlighter(h Highlighter) TranslatorOption {
	return func(t *Translator) {
		t.highlighter = h
	}
}

// WithProcessor registers a content processor.
func WithProcessor(processor ContentProcessor) TranslatorOption {
	return func(t *Translator) {
		t.processors[processor.ContentType()] = processor
	}
}

// WithConcurrency bounds the number of texts TranslateBatch works on at once.
func WithConcurrency(n int) TranslatorOption {
	return func(t *Translator) {
		if n > 0 {
			t.concurrency = n
		}
	}
}

// WithLogger sets the logger used for cache and reload diagnostics.
func WithLogger(logger zerolog.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// NewTranslator creates a Translator over tbl. A nil tbl yields a translator
// that matches nothing until Reload succeeds.
func NewTranslator(tbl *Tables, opts ...TranslatorOption) *Translator {
	t := &Translator{
		highlighter: DefaultHighlighter,
		processors:  make(map[string]ContentProcessor),
		concurrency: 8,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if tbl == nil {
		tbl = &Tables{}
	}
	t.store(tbl)
	return t
}

func (t *Translator) store(tbl *Tables) {
	t.snapshot.Store(&snapshot{tables: tbl, fingerprint: tbl.Fingerprint()})
}

// ToBritish translates American English text into British English.
func (t *Translator) ToBritish(ctx context.Context, text string) Result {
	return t.Translate(ctx, text, AmericanToBritish)
}

// ToAmerican translates British English text into American English.
func (t *Translator) ToAmerican(ctx context.Context, text string) Result {
	return t.Translate(ctx, text, BritishToAmerican)
}

// Translate converts text in direction dir. It never fails: text with nothing
// to replace comes back unchanged with OutcomeNoMatch.
func (t *Translator) Translate(ctx context.Context, text string, dir Direction) Result {
	result, _ := t.translate(ctx, text, dir)
	return result
}

// translate reports whether the result was served from the cache.
func (t *Translator) translate(ctx context.Context, text string, dir Direction) (Result, bool) {
	snap := t.snapshot.Load()

	var key string
	if t.cache != nil {
		key = CacheKeyExtended(HashText(text), dir, snap.fingerprint)
		if cached, ok := t.lookup(ctx, key); ok {
			return cached, true
		}
	}

	dict, titles := Compose(snap.tables, dir)
	matches := CollectMatches(text, dict, titles, dir)

	var result Result
	if len(matches) == 0 {
		result = unchangedResult(text)
	} else {
		result = Rewrite(text, matches, t.highlighter)
	}

	if t.cache != nil {
		t.remember(ctx, key, result)
	}
	return result, false
}

func (t *Translator) lookup(ctx context.Context, key string) (Result, bool) {
	data, ok := t.cache.Get(ctx, key)
	if !ok {
		return Result{}, false
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		t.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		return Result{}, false
	}
	return result, true
}

func (t *Translator) remember(ctx context.Context, key string, result Result) {
	data, err := json.Marshal(result)
	if err != nil {
		t.logger.Warn().Err(err).Msg("encoding result for cache")
		return
	}
	if err := t.cache.Set(ctx, key, data); err != nil {
		t.logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Reload loads a fresh table snapshot from src and swaps it in.
// Calls already in flight finish on the previous snapshot.
func (t *Translator) Reload(ctx context.Context, src TableSource) error {
	tbl, err := LoadTables(ctx, src)
	if err != nil {
		return err
	}
	previous := t.Fingerprint()
	t.store(tbl)

	t.logger.Info().
		Str("source", src.Name()).
		Int("rules", tbl.Len()).
		Str("fingerprint", t.Fingerprint()).
		Bool("changed", previous != t.Fingerprint()).
		Msg("lookup tables loaded")
	return nil
}

// Tables returns the current table snapshot. Callers must not modify it.
func (t *Translator) Tables() *Tables {
	return t.snapshot.Load().tables
}

// Fingerprint returns the digest of the current table snapshot.
func (t *Translator) Fingerprint() string {
	return t.snapshot.Load().fingerprint
}

// Highlighter returns the marker used for highlighted output.
func (t *Translator) Highlighter() Highlighter {
	return t.highlighter
}

// Process translates every text node of structured content.
func (t *Translator) Process(ctx context.Context, content, contentType string, dir Direction) (*ProcessedContent, error) {
	processor, ok := t.processors[contentType]
	if !ok {
		return nil, &ProcessorError{
			Message:     "no processor registered for content type",
			ContentType: contentType,
		}
	}

	parsed, nodes, err := processor.Extract(content)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return &ProcessedContent{Content: content, Highlighted: content}, nil
	}

	results := make(map[string]Result, len(nodes))
	out := &ProcessedContent{TotalNodes: len(nodes)}
	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, seen := results[node.Hash]; seen {
			continue
		}
		result, cached := t.translate(ctx, node.Text, dir)
		results[node.Hash] = result
		if cached {
			out.CachedCount++
		}
		if result.Changed() {
			out.TranslatedCount++
		}
	}

	if out.Content, err = processor.Apply(parsed, nodes, results, false); err != nil {
		return nil, err
	}
	// Apply mutates the parsed document, so the highlighted pass starts over.
	if parsed, _, err = processor.Extract(content); err != nil {
		return nil, err
	}
	if out.Highlighted, err = processor.Apply(parsed, nodes, results, true); err != nil {
		return nil, err
	}

	if contentType == "html" {
		out.Content = setHTMLLang(out.Content, dir)
		out.Highlighted = setHTMLLang(out.Highlighted, dir)
	}
	return out, nil
}

// ProcessHTML is a convenience method for processing HTML content.
func (t *Translator) ProcessHTML(ctx context.Context, html string, dir Direction) (*ProcessedContent, error) {
	return t.Process(ctx, html, "html", dir)
}

// setHTMLLang sets the lang attribute on the <html> tag of full documents.
// Fragments are returned untouched.
func setHTMLLang(html string, dir Direction) string {
	if !strings.Contains(strings.ToLower(html), "<html") {
		return html
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("html").SetAttr("lang", dir.HTMLLang())

	result, err := doc.Html()
	if err != nil {
		return html
	}
	return result
}
