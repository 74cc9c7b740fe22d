package service

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Censor replaces profanity in text.
type Censor interface {
	Censor(ctx context.Context, text string) (string, error)
}

// censorPair censors title and content concurrently. Both must succeed; the
// first failure cancels the other call and is returned.
func censorPair(ctx context.Context, c Censor, title, content string) (string, string, error) {
	g, gctx := errgroup.WithContext(ctx)

	var censoredTitle, censoredContent string
	g.Go(func() error {
		var err error
		censoredTitle, err = c.Censor(gctx, title)
		return err
	})
	g.Go(func() error {
		var err error
		censoredContent, err = c.Censor(gctx, content)
		return err
	})

	if err := g.Wait(); err != nil {
		return "", "", err
	}

	return censoredTitle, censoredContent, nil
}
