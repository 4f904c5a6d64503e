// Package clitest builds command contexts backed by throwaway JSON stores.
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/config"
	"github.com/julianstephens/quitwise/internal/storage"
)

// Toast is one notification captured by Recorder.
type Toast struct {
	Title string
	Text  string
}

// Recorder is a notifier.Sender that keeps every toast it is asked to send.
type Recorder struct {
	mu     sync.Mutex
	Toasts []Toast
	Err    error
}

func (r *Recorder) Notify(_ context.Context, title, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Toasts = append(r.Toasts, Toast{Title: title, Text: text})
	return nil
}

// NewContext returns an initialized context whose store is a JSON file in a temp dir.
// Output is captured in the returned buffer with colors disabled.
func NewContext(t *testing.T) (*cli.Context, *bytes.Buffer, *Recorder) {
	t.Helper()
	color.NoColor = true

	path := filepath.Join(t.TempDir(), "quitwise.json")
	cfg := &config.Config{Data: path, Timezone: "UTC"}
	ctx := cli.NewContext(cfg, storage.NewJSONStore(path))

	out := &bytes.Buffer{}
	rec := &Recorder{}
	ctx.Out = out
	ctx.Notifier = rec
	require.NoError(t, ctx.InitLedger())
	return ctx, out, rec
}
