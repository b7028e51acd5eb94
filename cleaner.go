package htmlcleaner

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultChunkSize is the number of elements cleaned between progress
// reports and cooperative yields in [CleanWithProgress].
const DefaultChunkSize = 100

// Options selects the optional removal passes. The zero value applies
// only the fixed rules: style/script elements, stylesheet links, and
// presentational and event-handler attributes.
type Options struct {
	// RemoveComments deletes every comment node in the tree.
	RemoveComments bool `json:"removeComments"`

	// RemoveDataAttrs deletes attributes whose name starts with "data-".
	RemoveDataAttrs bool `json:"removeDataAttrs"`

	// RemoveClasses deletes class attributes. Class attributes whose
	// value is empty or whitespace-only are removed even when this is
	// false.
	RemoveClasses bool `json:"removeClasses"`
}

// ProgressFunc receives cleaning progress at chunk boundaries.
// percent is round(processed/total*100); the final call is always
// (100, total, total). The hook runs synchronously on the cleaning
// goroutine.
type ProgressFunc func(percent, processed, total int)

// Cleaner is a stateless cleaning engine. The zero value is ready to
// use; all per-call configuration travels in [Options].
type Cleaner struct {
	// Log receives parse and removal telemetry at debug level. The
	// zero value discards everything.
	Log zerolog.Logger

	// ChunkSize is the number of elements processed between progress
	// reports in CleanWithProgress. Zero means DefaultChunkSize.
	ChunkSize int
}

// New returns a Cleaner with default settings.
func New() *Cleaner {
	return &Cleaner{}
}

var defaultCleaner Cleaner

// Clean parses markup, applies the fixed removal rules plus opts, and
// returns the re-serialized result. Empty or whitespace-only input
// returns "" without entering the pipeline.
func Clean(markup string, opts Options) (string, error) {
	return defaultCleaner.Clean(markup, opts)
}

// CleanReader reads all of r and cleans it like [Clean].
func CleanReader(r io.Reader, opts Options) (string, error) {
	return defaultCleaner.CleanReader(r, opts)
}

// CleanWithProgress cleans markup like [Clean] but in chunks, invoking
// onProgress at each chunk boundary and yielding to the scheduler
// between chunks. See [Cleaner.CleanWithProgress].
func CleanWithProgress(ctx context.Context, markup string, opts Options, onProgress ProgressFunc) (string, error) {
	return defaultCleaner.CleanWithProgress(ctx, markup, opts, onProgress)
}

// Clean is the blocking form: every element is visited synchronously
// with no progress reporting.
func (c *Cleaner) Clean(markup string, opts Options) (string, error) {
	return c.run(context.Background(), markup, opts, nil, false)
}

// CleanReader reads all of r and cleans it like [Cleaner.Clean].
func (c *Cleaner) CleanReader(r io.Reader, opts Options) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("htmlcleaner: read input: %w", err)
	}
	return c.Clean(string(b), opts)
}

// CleanWithProgress visits the same elements in the same order as
// [Cleaner.Clean] and produces byte-identical output, but after every
// ChunkSize-th element it invokes onProgress (if non-nil) and yields to
// the scheduler before resuming. After the full pass onProgress is
// invoked once more with (100, total, total); it is never invoked when
// the tree has no elements. Cancellation of ctx is observed at chunk
// boundaries only and returns ("", ctx.Err()) with no partial result.
func (c *Cleaner) CleanWithProgress(ctx context.Context, markup string, opts Options, onProgress ProgressFunc) (string, error) {
	return c.run(ctx, markup, opts, onProgress, true)
}

func (c *Cleaner) run(ctx context.Context, markup string, opts Options, onProgress ProgressFunc, chunked bool) (string, error) {
	if strings.TrimSpace(markup) == "" {
		return "", nil
	}

	fragment := IsFragment(markup)
	root, err := parse(markup, fragment)
	if err != nil {
		return "", fmt.Errorf("htmlcleaner: parse: %w", err)
	}

	removed := stripElements(root, opts.RemoveComments)

	// The element snapshot fixes both the traversal order and the
	// progress total; attribute removal never changes the element
	// count.
	elems := collectElements(root)
	total := len(elems)
	c.Log.Debug().
		Bool("fragment", fragment).
		Int("elements", total).
		Int("removed_nodes", removed).
		Msg("cleaning parsed tree")

	chunk := c.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	for i, el := range elems {
		cleanAttrs(el, opts)
		if !chunked || (i+1)%chunk != 0 {
			continue
		}
		if onProgress != nil {
			onProgress(percentOf(i+1, total), i+1, total)
		}
		// Hand control back to the scheduler between chunks so a long
		// pass does not starve the caller.
		runtime.Gosched()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
	}
	if chunked && total > 0 && onProgress != nil {
		onProgress(100, total, total)
	}

	out, err := serialize(root, fragment)
	if err != nil {
		return "", fmt.Errorf("htmlcleaner: serialize: %w", err)
	}
	return out, nil
}

func percentOf(processed, total int) int {
	return int(math.Round(float64(processed) / float64(total) * 100))
}
