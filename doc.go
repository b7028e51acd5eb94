// Package htmlcleaner strips presentational clutter from HTML while
// preserving document structure.
//
// # Overview
//
// htmlcleaner parses an HTML string (or io.Reader) with the standard
// golang.org/x/net/html parser, removes style and script elements,
// stylesheet links, legacy presentational attributes (bgcolor, align,
// border, ...), inline style attributes, and event-handler attributes
// (onclick, onmouseover, ...), then re-serializes the tree. Three
// optional passes are selected per call through [Options]:
//   - [Options.RemoveComments]: delete every comment node
//   - [Options.RemoveDataAttrs]: delete data-* attributes
//   - [Options.RemoveClasses]: delete class attributes (empty or
//     whitespace-only class values are removed regardless)
//
// Input is classified by [IsFragment]: anything not starting with
// <!doctype or <html is treated as a fragment and returned without a
// document wrapper; full documents keep their root element and, if one
// was present, the doctype line.
//
// # Progress reporting
//
// [CleanWithProgress] performs the same pass in fixed-size chunks,
// invoking an optional [ProgressFunc] and yielding to the scheduler
// between chunks so that long passes over large documents do not starve
// the caller. Its output is byte-identical to [Clean] for the same
// input and options.
//
// # Errors
//
// Malformed markup is never an error: the parser recovers leniently and
// cleaning proceeds on the recovered tree. Empty or whitespace-only
// input yields an empty string. Cleaning is idempotent, so running the
// output through the engine again with the same options returns it
// unchanged.
//
// # Thread safety
//
// A [Cleaner] holds no per-call state; its methods are safe for
// concurrent use as long as Log and ChunkSize are not mutated after
// first use. Each call parses, cleans, and serializes an independent
// tree.
//
// # Example
//
//	out, err := htmlcleaner.Clean(input, htmlcleaner.Options{RemoveComments: true})
package htmlcleaner
