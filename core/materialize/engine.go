package materialize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/fileutil"
	"github.com/postsaver/postsaver/common/utils/fsutil"
	"github.com/postsaver/postsaver/common/utils/ioutil"
)

const (
	// MaxAttempts is the number of download attempts per asset.
	MaxAttempts = 5
	// InitialRetryDelay doubles before every following attempt: 2s, 4s, 8s, 16s.
	InitialRetryDelay = 2 * time.Second

	chunkSize       = 32 << 10
	maxErrorBodyLen = 64 << 10
)

// AssetRequest describes one remote binary to save into a folder.
type AssetRequest struct {
	URL   string
	Title string
	// SignedQuery is appended verbatim to URL. nil means the asset needs no
	// authorization; a non-nil empty value means authorization is required
	// but was not provided.
	SignedQuery *string
}

// FileError is a local filesystem failure. It is never retried.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// logicalError carries an Error result through the retry loop.
type logicalError struct {
	result Result
}

func (e *logicalError) Error() string {
	return e.result.Message
}

type Engine struct {
	client   *http.Client
	progress ProgressTracker
	timer    backoff.Timer
	attempts int
}

type Option func(*Engine)

func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) {
		e.client = c
	}
}

func WithProgress(p ProgressTracker) Option {
	return func(e *Engine) {
		if p != nil {
			e.progress = p
		}
	}
}

// WithTimer replaces the timer used to wait between attempts.
func WithTimer(t backoff.Timer) Option {
	return func(e *Engine) {
		e.timer = t
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		client:   http.DefaultClient,
		progress: NopProgress,
		attempts: MaxAttempts,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func newRetryBackOff() *backoff.ExponentialBackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     InitialRetryDelay,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         time.Hour,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return b
}

// Fetch saves the asset into folder under its sanitized title. An existing
// file is never downloaded again. Remote and network failures are retried and
// end up as an Error result; only filesystem failures and cancellation are
// returned as errors.
func (e *Engine) Fetch(ctx context.Context, folder string, req AssetRequest) (Result, error) {
	logger := log.FromContext(ctx)
	target := filepath.Join(folder, fsutil.NormalizePathname(req.Title))

	if fileutil.IsExist(target) {
		return Skipped(), nil
	}
	url := req.URL
	if req.SignedQuery != nil {
		if *req.SignedQuery == "" {
			return Errorf("authorization required: an access token must be provided to download %q", req.Title), nil
		}
		url += *req.SignedQuery
	}

	logger.Info("Downloading file", "file", req.Title)
	var (
		last    Result
		attempt int
	)
	operation := func() error {
		attempt++
		res, err := e.fetchOnce(ctx, target, url)
		if err != nil {
			return err
		}
		last = res
		if res.IsError() {
			return &logicalError{result: res}
		}
		return nil
	}
	notify := func(err error, next time.Duration) {
		logger.Warn("Download attempt failed, retrying", "file", req.Title, "attempt", attempt, "retry_in", next, "error", err)
		removePartial(ctx, target)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(newRetryBackOff(), uint64(e.attempts-1)), ctx)
	err := backoff.RetryNotifyWithTimer(operation, b, notify, e.timer)
	if err == nil {
		return last, nil
	}

	removePartial(ctx, target)
	var fileErr *FileError
	var logical *logicalError
	switch {
	case errors.As(err, &fileErr):
		return Result{}, err
	case ctx.Err() != nil:
		return Result{}, ctx.Err()
	case errors.As(err, &logical):
		return logical.result, nil
	default:
		return Errorf("%v", err), nil
	}
}

func (e *Engine) fetchOnce(ctx context.Context, target, url string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create GET request for %q: %w", url, err)
	}
	setDownloadHeaders(req.Header)

	resp, err := e.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("HTTP GET failed for %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Errorf("HTTP %d: %s", resp.StatusCode, readErrorBody(resp)), nil
	}

	body, err := decodeBody(resp)
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode response from %q: %w", url, err)
	}
	defer body.Close()

	total := contentLength(resp)
	file, err := fsutil.CreateFile(target)
	if err != nil {
		return Result{}, backoff.Permanent(&FileError{Op: "create file", Path: target, Err: err})
	}

	e.progress.OnStart(ctx, target, total)
	wr := ioutil.NewProgressWriter(file, func(written int64) {
		e.progress.OnProgress(ctx, target, written, total)
	})
	err = copyChunks(wr, body, target, url)
	e.progress.OnDone(ctx, target, err)
	if err != nil {
		if rmErr := file.CloseAndRemove(); rmErr != nil {
			log.FromContext(ctx).Error("Failed to remove partial file", "file", target, "error", rmErr)
		}
		return Result{}, err
	}
	if err := file.Close(); err != nil {
		return Result{}, backoff.Permanent(&FileError{Op: "close file", Path: target, Err: err})
	}
	log.FromContext(ctx).Debug("Saved file", "file", target, "bytes", wr.Written(), "mime", fsutil.DetectMIME(target))
	return Success(), nil
}

// copyChunks streams body into wr. Read failures are transient, write
// failures are permanent.
func copyChunks(wr io.Writer, body io.Reader, target, url string) error {
	buf := make([]byte, chunkSize)
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, werr := wr.Write(buf[:n]); werr != nil {
				return backoff.Permanent(&FileError{Op: "write file", Path: target, Err: werr})
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return fmt.Errorf("error while reading chunk from %q: %w", url, rerr)
		}
	}
}

func removePartial(ctx context.Context, target string) {
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.FromContext(ctx).Error("Failed to remove partial file", "file", target, "error", err)
	}
}
