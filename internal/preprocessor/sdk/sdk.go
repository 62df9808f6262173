// Package sdk reads and writes preprocessor contexts on a byte stream.
//
// Example usage:
//
//	func main() {
//		ctx, err := sdk.ReadContext(os.Stdin)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Modify ctx.Book here
//
//		if err := sdk.WriteContext(os.Stdout, ctx); err != nil {
//			log.Fatal(err)
//		}
//	}
package sdk

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/geocine/gensummary/internal/preprocessor/runner"
)

// ReadContext reads a preprocessor context from r
func ReadContext(r io.Reader) (*runner.PreprocessorContext, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}

	ctx, err := runner.UnmarshalContext(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal context: %w", err)
	}

	return ctx, nil
}

// WriteContext writes a preprocessor context to w
// This is what will be read by the book builder to apply mutations
func WriteContext(w io.Writer, ctx *runner.PreprocessorContext) error {
	data, err := json.Marshal(ctx)
	if err != nil {
		return fmt.Errorf("failed to marshal context: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write stdout: %w", err)
	}

	return nil
}
