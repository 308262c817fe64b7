// Package processor provides content processing implementations.
package processor

import "github.com/ZaguanLabs/dialect"

// ContentProcessor is an alias to the main package interface.
type ContentProcessor = dialect.ContentProcessor

// TextNode is an alias to the main package type.
type TextNode = dialect.TextNode

// Result is an alias to the main package type.
type Result = dialect.Result
