package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/refx-sh/refx/cmd/refx/opts"
	"github.com/refx-sh/refx/pkg/config"
	"github.com/refx-sh/refx/pkg/editor"
	"github.com/refx-sh/refx/pkg/engine"
	"github.com/refx-sh/refx/pkg/store"
)

// stdinBuffer reports whether the active buffer flows through stdin/stdout.
func stdinBuffer(o *opts.RootOpts) bool {
	return o.BufferPath == "" || o.BufferPath == "-"
}

// openBuffer reads the active buffer from the configured file, or stdin when
// the path is "-".
func openBuffer(o *opts.RootOpts) (*editor.MemoryBuffer, error) {
	if stdinBuffer(o) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Errorf("reading stdin: %w", err)
		}
		return editor.NewMemoryBuffer("stdin", string(data)), nil
	}

	data, err := os.ReadFile(o.BufferPath)
	if err != nil {
		return nil, errors.Errorf("reading buffer file: %w", err)
	}
	return editor.NewMemoryBuffer(o.BufferPath, string(data)), nil
}

// flushBuffer writes the buffer back to its file, or stdout for stdin
// buffers.
func flushBuffer(o *opts.RootOpts, buf *editor.MemoryBuffer) error {
	if stdinBuffer(o) {
		fmt.Print(buf.Text())
		return nil
	}

	if err := os.WriteFile(o.BufferPath, []byte(buf.Text()), 0o644); err != nil {
		return errors.Errorf("writing buffer file: %w", err)
	}
	return nil
}

// applySelection parses a "start:end" byte-offset pair and selects it.
func applySelection(buf *editor.MemoryBuffer, sel string) error {
	if sel == "" {
		return nil
	}

	parts := strings.SplitN(sel, ":", 2)
	if len(parts) != 2 {
		return errors.Errorf("invalid selection %q, want start:end", sel)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return errors.Errorf("invalid selection start %q: %w", parts[0], err)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return errors.Errorf("invalid selection end %q: %w", parts[1], err)
	}

	return buf.Select(start, end)
}

// scopeName names the scope for user-facing outcome lines.
func scopeName(set engine.Settings) string {
	if set.SelectionOnly {
		return "selection"
	}
	return "document"
}

// reportOutcome converts an engine result or a known error kind into a short
// user-facing status line. Known kinds never propagate; unexpected errors do.
func reportOutcome(o *opts.RootOpts, res engine.Result, err error, scope string) error {
	switch {
	case err == nil && res.Count == 0:
		o.Logger.Warningf("no match in %s", scope)
	case err == nil:
		o.Logger.Successf("replaced %d occurrence(s) in %s", res.Count, scope)
	case errors.Is(err, engine.ErrEmptyPattern):
		o.Logger.Warning("find pattern is empty")
	case errors.Is(err, engine.ErrInvalidPattern):
		o.Logger.Errorf("invalid pattern: %v", err)
	case errors.Is(err, engine.ErrEmptyGroup):
		o.Logger.Warning("group has no stored expressions")
	case errors.Is(err, store.ErrMissingName):
		o.Logger.Warning("a name is required")
	default:
		return err
	}
	return nil
}

// persistConfig writes the store and settings back to the config file.
// Best-effort: failures are logged and swallowed, never retried.
func persistConfig(ctx context.Context, o *opts.RootOpts) {
	o.Config.Expressions = o.Store.Expressions()
	o.Config.Groups = o.Store.Groups()

	if err := config.Save(ctx, o.ConfigPath, o.Config); err != nil {
		o.Logger.Warningf("could not persist config: %v", err)
	}
}
