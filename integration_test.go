package dialect_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ZaguanLabs/dialect"
	"github.com/ZaguanLabs/dialect/cache"
	"github.com/ZaguanLabs/dialect/processor"
	"github.com/ZaguanLabs/dialect/tables"
)

// Integration tests using the bundled tables and real components

func newTranslator(t testing.TB, opts ...dialect.TranslatorOption) *dialect.Translator {
	t.Helper()
	tbl, err := dialect.LoadTables(context.Background(), tables.Embedded())
	if err != nil {
		t.Fatalf("LoadTables failed: %v", err)
	}
	return dialect.NewTranslator(tbl, opts...)
}

func TestIntegration_ToBritish(t *testing.T) {
	tr := newTranslator(t)

	tests := []struct {
		text string
		want string
	}{
		{"Mangoes are my favorite fruit.", "Mangoes are my favourite fruit."},
		{"I ate yogurt for breakfast.", "I ate yoghurt for breakfast."},
		{"Can you toss this in the trashcan for me?", "Can you toss this in the bin for me?"},
		{"The parking lot was full.", "The car park was full."},
		{"Like a high tech Rube Goldberg machine.", "Like a high tech Heath Robinson device."},
		{"To play hooky means to skip class or work.", "To bunk off means to skip class or work."},
		{"No Mr. Bond, I expect you to die.", "No Mr Bond, I expect you to die."},
		{"Dr. Grosh will see you now.", "Dr Grosh will see you now."},
		{"Lunch is at 12:15 today.", "Lunch is at 12.15 today."},
		{"Mr. Smith went home at 12:30.", "Mr Smith went home at 12.30."},
	}

	for _, tt := range tests {
		got := tr.ToBritish(context.Background(), tt.text)
		if got.Plain != tt.want {
			t.Errorf("ToBritish(%q) = %q, want %q", tt.text, got.Plain, tt.want)
		}
	}
}

func TestIntegration_ToAmerican(t *testing.T) {
	tr := newTranslator(t)

	tests := []struct {
		text string
		want string
	}{
		{"We watched the footie match for a while.", "We watched the soccer match for a while."},
		{"Paracetamol takes up to an hour to work.", "Tylenol takes up to an hour to work."},
		{"First, caramelise the onions.", "First, caramelize the onions."},
		{"I spent the bank holiday at the funfair.", "I spent the public holiday at the carnival."},
		{"I had a bicky then went to the chippy.", "I had a cookie then went to the fish-and-chip shop."},
		{"I've just got bits and bobs in my bum bag.", "I've just got odds and ends in my fanny pack."},
		{"The car boot sale at Boxted Airport was called off.", "The swap meet at Boxted Airport was called off."},
		{"Have you met Mrs Kalyani?", "Have you met Mrs. Kalyani?"},
		{"Prof Joyner of King's College, London.", "Prof. Joyner of King's College, London."},
		{"Tea time is usually around 4 or 4.30.", "Tea time is usually around 4 or 4:30."},
	}

	for _, tt := range tests {
		got := tr.ToAmerican(context.Background(), tt.text)
		if got.Plain != tt.want {
			t.Errorf("ToAmerican(%q) = %q, want %q", tt.text, got.Plain, tt.want)
		}
	}
}

func TestIntegration_Highlight(t *testing.T) {
	tr := newTranslator(t)

	got := tr.ToBritish(context.Background(), "Mangoes are my favorite fruit.")
	want := `Mangoes are my <span class="highlight">favourite</span> fruit.`
	if got.Highlighted != want {
		t.Errorf("Highlighted = %q, want %q", got.Highlighted, want)
	}

	got = tr.ToAmerican(context.Background(), "Tea time is usually around 4 or 4.30.")
	want = `Tea time is usually around 4 or <span class="highlight">4:30</span>.`
	if got.Highlighted != want {
		t.Errorf("Highlighted = %q, want %q", got.Highlighted, want)
	}
}

func TestIntegration_CachedBatch(t *testing.T) {
	c := cache.NewInMemoryCache(3600, 100)
	tr := newTranslator(t, dialect.WithCache(c))
	ctx := context.Background()

	texts := []string{"The parking lot was full.", "Nothing to see.", "The parking lot was full."}
	first, err := tr.TranslateBatch(ctx, texts, dialect.AmericanToBritish)
	if err != nil {
		t.Fatalf("TranslateBatch failed: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 cache entries, got %d", c.Len())
	}

	second, err := tr.TranslateBatch(ctx, texts, dialect.AmericanToBritish)
	if err != nil {
		t.Fatalf("TranslateBatch failed: %v", err)
	}
	for i := range first {
		if first[i].Plain != second[i].Plain || first[i].Highlighted != second[i].Highlighted {
			t.Errorf("cached result %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	if second[1].Outcome != dialect.OutcomeNoMatch {
		t.Errorf("Outcome = %q, want %q", second[1].Outcome, dialect.OutcomeNoMatch)
	}
}

func TestIntegration_ProcessHTML(t *testing.T) {
	c := cache.NewInMemoryCache(3600, 0)
	tr := newTranslator(t,
		dialect.WithCache(c),
		dialect.WithProcessor(processor.NewHTMLProcessor()),
	)
	ctx := context.Background()

	html := `<html><head><title>Parking</title></head><body>
<p>The parking lot was full.</p>
<code>color := gray</code>
<p data-no-translate>my favorite color</p>
<p>My favorite color is gray.</p>
</body></html>`

	result, err := tr.ProcessHTML(ctx, html, dialect.AmericanToBritish)
	if err != nil {
		t.Fatalf("ProcessHTML failed: %v", err)
	}

	for _, want := range []string{
		`<html lang="en-GB">`,
		`<p>The car park was full.</p>`,
		`<code>color := gray</code>`,
		`<p data-no-translate="">my favorite color</p>`,
		`<p>My favourite colour is grey.</p>`,
	} {
		if !strings.Contains(result.Content, want) {
			t.Errorf("Content missing %q:\n%s", want, result.Content)
		}
	}
	if !strings.Contains(result.Highlighted, `The <span class="highlight">car park</span> was full.`) {
		t.Errorf("Highlighted missing span:\n%s", result.Highlighted)
	}
	if result.TotalNodes != 3 || result.TranslatedCount != 2 {
		t.Errorf("counts = %+v", result)
	}

	again, err := tr.ProcessHTML(ctx, html, dialect.AmericanToBritish)
	if err != nil {
		t.Fatalf("ProcessHTML failed: %v", err)
	}
	if again.CachedCount != 3 {
		t.Errorf("CachedCount = %d, want 3", again.CachedCount)
	}
}

func TestIntegration_Reload(t *testing.T) {
	tr := newTranslator(t)
	ctx := context.Background()

	src := tables.NewStatic(&tables.Tables{Spelling: map[string]string{"favorite": "favourite"}})
	if err := tr.Reload(ctx, src); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if got := tr.ToBritish(ctx, "The parking lot was full.").Outcome; got != dialect.OutcomeNoMatch {
		t.Errorf("Outcome = %q after reload, want %q", got, dialect.OutcomeNoMatch)
	}
	if src.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", src.CallCount())
	}
}
