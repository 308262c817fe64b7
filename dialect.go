// Package dialect provides a rule-based American/British English translation engine.
//
// Dialect rewrites spelling, vocabulary, honorific titles and clock notation
// between the two conventions. Every translation yields a plain result and a
// highlighted result in which each changed span is wrapped in a marker, both
// rendered from the same set of matches.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/dialect"
//	    "github.com/ZaguanLabs/dialect/cache"
//	    "github.com/ZaguanLabs/dialect/tables"
//	)
//
//	func main() {
//	    ctx := context.Background()
//
//	    // Load the bundled lookup tables
//	    tbl, err := dialect.LoadTables(ctx, tables.Embedded())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Create translator
//	    t := dialect.NewTranslator(tbl,
//	        dialect.WithCache(cache.NewInMemoryCache(3600, 10000)),
//	    )
//
//	    result := t.ToBritish(ctx, "Mr. Smith parked in the parking lot at 12:30.")
//	    fmt.Println(result.Plain)       // Mr Smith parked in the car park at 12.30.
//	    fmt.Println(result.Highlighted) // <span class="highlight">Mr</span> Smith ...
//	}
package dialect
