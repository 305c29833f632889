//go:build !no_bubbletea

package progress

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/postsaver/postsaver/common/i18n"
	"github.com/postsaver/postsaver/common/i18n/i18nk"
	"golang.org/x/time/rate"
)

var (
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f87"))
)

const updateInterval = 100 * time.Millisecond

// startMsg is sent when a new file starts downloading
type startMsg struct {
	name  string
	total int64
}

// progressMsg is sent to update the current download
type progressMsg struct {
	downloaded int64
	total      int64
}

// doneMsg is sent when the current download ends
type doneMsg struct{ err error }

// quitMsg stops the program
type quitMsg struct{}

// downloadModel is the bubbletea model for the download progress UI
type downloadModel struct {
	progress   progress.Model
	spinner    spinner.Model
	name       string
	total      int64
	downloaded int64
	active     bool
	finished   int
	lastErr    error
	quitting   bool
}

func newDownloadModel() downloadModel {
	return downloadModel{
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(50),
		),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m downloadModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = max(min(msg.Width-10, 80), 10)
		return m, nil

	case startMsg:
		m.name = msg.name
		m.total = msg.total
		m.downloaded = 0
		m.active = true
		return m, m.progress.SetPercent(0)

	case progressMsg:
		m.downloaded = msg.downloaded
		m.total = msg.total
		if m.total > 0 {
			return m, m.progress.SetPercent(float64(m.downloaded) / float64(m.total))
		}
		return m, nil

	case doneMsg:
		m.active = false
		m.finished++
		m.lastErr = msg.err
		return m, nil

	case quitMsg:
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		if m.quitting {
			return m, nil
		}
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m downloadModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n")
	if !m.active {
		sb.WriteString(fmt.Sprintf("  %s %s\n", m.spinner.View(), i18n.T(i18nk.ProgressFilesSaved, map[string]any{"Count": m.finished})))
		if m.lastErr != nil {
			sb.WriteString(errorStyle.Render("  " + i18n.T(i18nk.ProgressLastFailed, map[string]any{"Error": m.lastErr})))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("  📁 %s\n", m.name))
	if m.total > 0 {
		sb.WriteString(fmt.Sprintf("  📊 %s / %s\n\n",
			humanize.Bytes(uint64(m.downloaded)),
			humanize.Bytes(uint64(m.total)),
		))
		sb.WriteString("  ")
		sb.WriteString(m.progress.View())
	} else {
		sb.WriteString(fmt.Sprintf("  %s %s\n", m.spinner.View(), humanize.Bytes(uint64(m.downloaded))))
	}
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render("  " + i18n.T(i18nk.ProgressCancelHint)))
	sb.WriteString("\n\n")
	return sb.String()
}

// Bar shows the running download in the terminal. It implements
// materialize.ProgressTracker for one download at a time.
type Bar struct {
	program *tea.Program
	cancel  context.CancelFunc
	done    chan struct{}

	mu    sync.Mutex
	every *rate.Sometimes
}

func New(ctx context.Context) *Bar {
	ctx, cancel := context.WithCancel(ctx)
	p := tea.NewProgram(
		newDownloadModel(),
		tea.WithoutSignalHandler(),
		tea.WithContext(ctx),
		tea.WithInput(nil), // Disable keyboard input, rely on context cancellation
	)
	return &Bar{
		program: p,
		cancel:  cancel,
		done:    make(chan struct{}),
		every:   &rate.Sometimes{Interval: updateInterval},
	}
}

// Start runs the UI in a goroutine and returns immediately.
func (b *Bar) Start() {
	go func() {
		defer close(b.done)
		b.program.Run()
	}()
}

// Stop quits the UI and waits for it to restore the terminal.
func (b *Bar) Stop() {
	b.program.Send(quitMsg{})
	<-b.done
	b.cancel()
}

func (b *Bar) OnStart(_ context.Context, name string, total int64) {
	b.mu.Lock()
	b.every = &rate.Sometimes{Interval: updateInterval}
	b.mu.Unlock()
	b.program.Send(startMsg{name: filepath.Base(name), total: total})
}

func (b *Bar) OnProgress(_ context.Context, _ string, downloaded, total int64) {
	b.mu.Lock()
	every := b.every
	b.mu.Unlock()
	every.Do(func() {
		b.program.Send(progressMsg{downloaded: downloaded, total: total})
	})
}

func (b *Bar) OnDone(_ context.Context, _ string, err error) {
	b.program.Send(doneMsg{err: err})
}
