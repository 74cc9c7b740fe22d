package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCensor stars out the word "darn" and fails for any text containing
// a key of fail.
type fakeCensor struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (f *fakeCensor) Censor(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()

	for needle, err := range f.fail {
		if strings.Contains(text, needle) {
			return "", err
		}
	}
	return strings.ReplaceAll(text, "darn", "****"), nil
}

func (f *fakeCensor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
