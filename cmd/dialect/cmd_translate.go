package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/dialect"
	"github.com/ZaguanLabs/dialect/cache"
	"github.com/ZaguanLabs/dialect/processor"
)

type translateFlags struct {
	locale    string
	from      string
	to        string
	tables    string
	output    string
	highlight bool
	html      bool
	jsonOut   bool
	quiet     bool
}

func newTranslateCmd() *cobra.Command {
	flags := &translateFlags{}

	cmd := &cobra.Command{
		Use:   "translate [file...]",
		Short: "Translate files, or stdin when no file is given",
		Example: `  echo "My favorite color is gray." | dialect translate
  dialect translate --locale british-to-american notes.txt
  dialect translate --from en-GB --to en-US --html page.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, flags, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.locale, "locale", "l", string(dialect.AmericanToBritish), "Direction: american-to-british or british-to-american")
	f.StringVar(&flags.from, "from", "", "Source language tag (en-US or en-GB); requires --to")
	f.StringVar(&flags.to, "to", "", "Target language tag (en-US or en-GB); requires --from")
	f.StringVar(&flags.tables, "tables", "", "Table file or URL (default: bundled tables)")
	f.StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	f.BoolVar(&flags.highlight, "highlight", false, "Wrap replaced spans in highlight markup")
	f.BoolVar(&flags.html, "html", false, "Treat input as HTML and translate its text nodes")
	f.BoolVar(&flags.jsonOut, "json", false, "Output results as JSON")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress statistics on stderr")
	cmd.MarkFlagsRequiredTogether("from", "to")
	cmd.MarkFlagsMutuallyExclusive("locale", "from")

	return cmd
}

// fileResult is the JSON output for one input.
type fileResult struct {
	Input  string          `json:"input"`
	Result *dialect.Result `json:"result,omitempty"`
	HTML   *htmlResult     `json:"html,omitempty"`
}

type htmlResult struct {
	Content         string `json:"content"`
	Highlighted     string `json:"highlighted"`
	TotalNodes      int    `json:"total_nodes"`
	TranslatedCount int    `json:"translated_count"`
	CachedCount     int    `json:"cached_count"`
}

type input struct {
	name string
	text string
}

func (f *translateFlags) direction() (dialect.Direction, error) {
	if f.from != "" || f.to != "" {
		return dialect.DirectionFromTags(f.from, f.to)
	}
	return dialect.ParseDirection(f.locale)
}

func runTranslate(cmd *cobra.Command, flags *translateFlags, args []string) error {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	dir, err := flags.direction()
	if err != nil {
		return err
	}

	tbl, _, err := loadTables(ctx, flags.tables)
	if err != nil {
		return fmt.Errorf("loading tables: %w", err)
	}

	inputs, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	translator := dialect.NewTranslator(tbl,
		dialect.WithCache(cache.NewInMemoryCache(0, 0)),
		dialect.WithProcessor(processor.NewHTMLProcessor()),
	)

	if !flags.quiet {
		fmt.Fprintf(stderr, "Translating %d input(s): %s\n", len(inputs), dir.DisplayName())
	}
	start := time.Now()

	results := make([]fileResult, len(inputs))
	if flags.html {
		for i, in := range inputs {
			processed, err := translator.ProcessHTML(ctx, in.text, dir)
			if err != nil {
				return fmt.Errorf("%s: %w", in.name, err)
			}
			results[i] = fileResult{Input: in.name, HTML: &htmlResult{
				Content:         processed.Content,
				Highlighted:     processed.Highlighted,
				TotalNodes:      processed.TotalNodes,
				TranslatedCount: processed.TranslatedCount,
				CachedCount:     processed.CachedCount,
			}}
		}
	} else {
		texts := make([]string, len(inputs))
		for i, in := range inputs {
			texts[i] = in.text
		}
		translated, err := translator.TranslateBatch(ctx, texts, dir)
		if err != nil {
			return err
		}
		for i := range translated {
			results[i] = fileResult{Input: inputs[i].name, Result: &translated[i]}
		}
	}
	elapsed := time.Since(start)

	var out io.Writer = cmd.OutOrStdout()
	if flags.output != "" {
		f, err := os.Create(flags.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeResults(out, results, flags); err != nil {
		return err
	}

	if !flags.quiet {
		changed := 0
		for _, r := range results {
			if (r.Result != nil && r.Result.Changed()) || (r.HTML != nil && r.HTML.TranslatedCount > 0) {
				changed++
			}
		}
		fmt.Fprintf(stderr, "Done in %v, %d of %d changed\n", elapsed.Round(time.Millisecond), changed, len(results))
	}
	return nil
}

func readInputs(stdin io.Reader, args []string) ([]input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []input{{name: "stdin", text: string(data)}}, nil
	}

	inputs := make([]input, len(args))
	for i, path := range args {
		data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
		if err != nil {
			return nil, fmt.Errorf("reading file: %w", err)
		}
		inputs[i] = input{name: filepath.Base(path), text: string(data)}
	}
	return inputs, nil
}

func writeResults(out io.Writer, results []fileResult, flags *translateFlags) error {
	if flags.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if len(results) == 1 {
			return enc.Encode(results[0])
		}
		return enc.Encode(results)
	}

	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s <==\n", r.Input)
		}
		switch {
		case r.HTML != nil && flags.highlight:
			fmt.Fprint(out, r.HTML.Highlighted)
		case r.HTML != nil:
			fmt.Fprint(out, r.HTML.Content)
		case flags.highlight:
			fmt.Fprint(out, r.Result.Highlighted)
		default:
			fmt.Fprint(out, r.Result.Plain)
		}
	}
	return nil
}
