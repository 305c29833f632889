package materialize

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/postsaver/postsaver/common/utils/dlutil"
	"golang.org/x/time/rate"
)

// ProgressTracker receives download progress. A total of zero or less means
// the size is unknown.
type ProgressTracker interface {
	OnStart(ctx context.Context, name string, total int64)
	OnProgress(ctx context.Context, name string, downloaded, total int64)
	OnDone(ctx context.Context, name string, err error)
}

type nopProgress struct{}

func (nopProgress) OnStart(context.Context, string, int64)           {}
func (nopProgress) OnProgress(context.Context, string, int64, int64) {}
func (nopProgress) OnDone(context.Context, string, error)            {}

// NopProgress discards all progress events.
var NopProgress ProgressTracker = nopProgress{}

type logProgressState struct {
	start time.Time
	every *rate.Sometimes
}

// LogProgress writes throttled progress lines to the context logger. It is
// safe for concurrent downloads as long as their names differ.
type LogProgress struct {
	interval time.Duration
	mu       sync.Mutex
	active   map[string]*logProgressState
}

func NewLogProgress(interval time.Duration) *LogProgress {
	return &LogProgress{
		interval: interval,
		active:   make(map[string]*logProgressState),
	}
}

func (p *LogProgress) OnStart(ctx context.Context, name string, total int64) {
	p.mu.Lock()
	p.active[name] = &logProgressState{
		start: time.Now(),
		every: &rate.Sometimes{First: 1, Interval: p.interval},
	}
	p.mu.Unlock()
	if total > 0 {
		log.FromContext(ctx).Info("Downloading", "file", name, "size", humanize.Bytes(uint64(total)))
	} else {
		log.FromContext(ctx).Info("Downloading", "file", name, "size", "unknown")
	}
}

func (p *LogProgress) OnProgress(ctx context.Context, name string, downloaded, total int64) {
	p.mu.Lock()
	state, ok := p.active[name]
	p.mu.Unlock()
	if !ok {
		return
	}
	state.every.Do(func() {
		speed := humanize.Bytes(uint64(dlutil.GetSpeed(downloaded, state.start))) + "/s"
		if total > 0 {
			log.FromContext(ctx).Debugf("%s: %s / %s (%.1f%%, %s)", name,
				humanize.Bytes(uint64(downloaded)), humanize.Bytes(uint64(total)),
				dlutil.Percent(downloaded, total)*100, speed)
			return
		}
		log.FromContext(ctx).Debugf("%s: %s (%s)", name, humanize.Bytes(uint64(downloaded)), speed)
	})
}

func (p *LogProgress) OnDone(ctx context.Context, name string, err error) {
	p.mu.Lock()
	delete(p.active, name)
	p.mu.Unlock()
	if err != nil {
		log.FromContext(ctx).Debug("Download interrupted", "file", name, "error", err)
	}
}

var (
	_ ProgressTracker = NopProgress
	_ ProgressTracker = (*LogProgress)(nil)
)
