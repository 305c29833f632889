// Package walker turns a nested content item tree into document text and
// downloaded assets, one item at a time in document order.
package walker

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/slice"
	"github.com/postsaver/postsaver/common/i18n"
	"github.com/postsaver/postsaver/common/i18n/i18nk"
	"github.com/postsaver/postsaver/common/utils/fsutil"
	"github.com/postsaver/postsaver/common/utils/strutil"
	"github.com/postsaver/postsaver/core/materialize"
	"github.com/postsaver/postsaver/pkg/content"
)

// Fetcher saves one remote asset into a folder.
type Fetcher interface {
	Fetch(ctx context.Context, folder string, req materialize.AssetRequest) (materialize.Result, error)
}

// TextAppender appends one text fragment to the document of title.
type TextAppender func(ctx context.Context, folder, title, text, modificator string) (materialize.Result, error)

type Summary struct {
	Success int
	Skipped int
	Failed  int
	Unknown int
}

func (s *Summary) Add(other Summary) {
	s.Success += other.Success
	s.Skipped += other.Skipped
	s.Failed += other.Failed
	s.Unknown += other.Unknown
}

func (s *Summary) record(res materialize.Result) {
	switch res.Status {
	case materialize.StatusSuccess:
		s.Success++
	case materialize.StatusSkipped:
		s.Skipped++
	case materialize.StatusError:
		s.Failed++
	}
}

type Walker struct {
	fetcher    Fetcher
	appendText TextAppender
}

type Option func(*Walker)

// WithTextAppender replaces the document writer.
func WithTextAppender(fn TextAppender) Option {
	return func(w *Walker) {
		w.appendText = fn
	}
}

func New(fetcher Fetcher, opts ...Option) *Walker {
	w := &Walker{
		fetcher:    fetcher,
		appendText: materialize.AppendText,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Process materializes items into folder, depth first in source order. The
// document of title receives the text and the embed fragments; signedQuery
// is passed on to assets that need authorization.
//
// An item that fails to download is reported and counted, the walk goes on.
// A filesystem error stops the walk and is returned.
func (w *Walker) Process(ctx context.Context, items []content.Item, title, folder string, signedQuery *string) (Summary, error) {
	var summary Summary

	stack := slices.Clone(items)
	slice.Reverse(stack)

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch it := item.(type) {
		case content.List:
			// pushed in reverse so the first item of the first group pops next
			var nested []content.Item
			for _, group := range it.Items {
				nested = append(nested, group...)
			}
			slice.Reverse(nested)
			stack = append(stack, nested...)
		case content.Asset:
			res, err := w.processAsset(ctx, it, title, folder, signedQuery)
			if err != nil {
				return summary, err
			}
			summary.record(res)
		case content.Video:
			res, err := w.appendText(ctx, folder, title, videoFragment(it), "")
			if err != nil {
				return summary, fmt.Errorf("failed to embed video url %q for post %q: %w", it.URL, title, err)
			}
			w.reportText(ctx, title, res)
			summary.record(res)
		case content.Text:
			text := ""
			if !it.IsBlockEnd() {
				parsed, ok := strutil.FirstJSONString(it.Content)
				if !ok {
					continue
				}
				text = parsed
			}
			res, err := w.appendText(ctx, folder, title, text, it.Modificator)
			if err != nil {
				return summary, fmt.Errorf("failed to write text %q for post %q: %w", it.Content, title, err)
			}
			w.reportText(ctx, title, res)
			summary.record(res)
		case content.Link:
			text, ok := linkText(it)
			if !ok {
				continue
			}
			res, err := w.appendText(ctx, folder, title, text, "")
			if err != nil {
				return summary, fmt.Errorf("failed to write link %q for post %q: %w", it.URL, title, err)
			}
			w.reportText(ctx, title, res)
			summary.record(res)
		case content.Unknown:
			log.FromContext(ctx).Warn(i18n.T(i18nk.UnknownContentItem), "type", it.Type, "post", title)
			summary.Unknown++
		default:
			log.FromContext(ctx).Warn(i18n.T(i18nk.UnknownContentItem), "type", fmt.Sprintf("%T", it), "post", title)
			summary.Unknown++
		}
	}
	return summary, nil
}

func (w *Walker) processAsset(ctx context.Context, asset content.Asset, title, folder string, signedQuery *string) (materialize.Result, error) {
	logger := log.FromContext(ctx)
	name := asset.FileName()
	req := materialize.AssetRequest{
		URL:   asset.AssetURL(),
		Title: name,
	}
	if asset.Signed() {
		req.SignedQuery = signedQuery
	}

	res, err := w.fetcher.Fetch(ctx, folder, req)
	if err != nil {
		return res, fmt.Errorf("failed to download file %q for post %q: %w", name, title, err)
	}
	switch res.Status {
	case materialize.StatusError:
		logger.Error(i18n.T(i18nk.ItemFailed, map[string]any{
			"Name":  name,
			"Post":  title,
			"Error": res.Message,
		}))
		return res, nil
	case materialize.StatusSkipped:
		logger.Info(i18n.T(i18nk.ItemSkipped, map[string]any{"Name": name}))
	default:
		logger.Info(i18n.T(i18nk.ItemDownloaded, map[string]any{"Name": name, "Post": title}))
	}

	rel := filepath.ToSlash(fsutil.NormalizePathname(name))
	if _, err := w.appendText(ctx, folder, title, withRel(assetFragment(asset), rel), ""); err != nil {
		return res, fmt.Errorf("failed to add embed for %q in post %q: %w", name, title, err)
	}
	return res, nil
}

func (w *Walker) reportText(ctx context.Context, title string, res materialize.Result) {
	log.FromContext(ctx).Debug("Text fragment", "post", title, "result", res)
}
