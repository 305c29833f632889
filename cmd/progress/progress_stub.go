//go:build no_bubbletea

package progress

import "context"

// Bar is a no-op when built without bubbletea.
type Bar struct{}

func New(ctx context.Context) *Bar {
	return &Bar{}
}

func (b *Bar) Start() {}

func (b *Bar) Stop() {}

func (b *Bar) OnStart(context.Context, string, int64) {}

func (b *Bar) OnProgress(context.Context, string, int64, int64) {}

func (b *Bar) OnDone(context.Context, string, error) {}
