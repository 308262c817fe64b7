package dialect

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// TranslateBatch translates texts concurrently and returns results in input
// order. Identical texts are translated once. The only error is the
// cancellation of ctx.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string, dir Direction) ([]Result, error) {
	results := make([]Result, len(texts))
	if len(texts) == 0 {
		return results, nil
	}

	// first index of every distinct text
	first := make(map[string]int, len(texts))
	for i, text := range texts {
		if _, ok := first[text]; !ok {
			first[text] = i
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency)
	for text, i := range first {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = t.Translate(gctx, text, dir)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, text := range texts {
		if j := first[text]; j != i {
			results[i] = results[j]
		}
	}
	return results, nil
}
