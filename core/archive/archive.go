// Package archive saves whole posts: the post body into its dated folder and
// the flattened comment thread into the comments subfolder.
package archive

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/postsaver/postsaver/common/i18n"
	"github.com/postsaver/postsaver/common/i18n/i18nk"
	"github.com/postsaver/postsaver/common/utils/fsutil"
	"github.com/postsaver/postsaver/core/comments"
	"github.com/postsaver/postsaver/core/materialize"
	"github.com/postsaver/postsaver/core/render"
	"github.com/postsaver/postsaver/core/walker"
	"github.com/postsaver/postsaver/pkg/content"
	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"
)

// Report describes what happened to one post.
type Report struct {
	PostID      string
	Title       string
	Folder      string
	Unavailable bool
	Post        walker.Summary
	Comments    walker.Summary
	Err         error
}

// Total sums the post and comment counters.
func (r Report) Total() walker.Summary {
	total := r.Post
	total.Add(r.Comments)
	return total
}

type Archiver struct {
	Walker *walker.Walker
	// Root is the folder that holds one subfolder per blog.
	Root string
	// Render writes an HTML page next to every finished document.
	Render bool
	// Comments enables saving the comment thread.
	Comments bool
}

// ArchivePost saves post under Root. Unavailable posts are reported and
// left alone. The returned error is a filesystem failure or cancellation;
// the report is filled as far as the post got.
func (a *Archiver) ArchivePost(ctx context.Context, post *content.Post) (Report, error) {
	title := post.SafeTitle()
	report := Report{PostID: post.ID, Title: title}
	logger := log.FromContext(ctx).With("post", post.ID)
	ctx = log.WithContext(ctx, logger)

	if !post.Available() {
		logger.Warn(i18n.T(i18nk.PostUnavailable, map[string]any{"Title": title}))
		report.Unavailable = true
		return report, nil
	}

	folder, err := fsutil.PostFolder(a.Root, post.Blog, title, post.CreatedAt)
	if err != nil {
		return report, err
	}
	report.Folder = folder

	report.Post, err = a.saveDocument(ctx, post.Content(), title, folder, &post.SignedQuery)
	if err != nil {
		return report, fmt.Errorf("error processing post %q: %w", title, err)
	}
	logger.Info(i18n.T(i18nk.PostArchived, map[string]any{"Title": title, "Folder": folder}))

	if !a.Comments {
		return report, nil
	}
	if !comments.Available(post.Comments) {
		logger.Info(i18n.T(i18nk.CommentsUnavailable, map[string]any{"Title": title}))
		return report, nil
	}
	commentsFolder, err := fsutil.CommentsFolder(folder)
	if err != nil {
		return report, err
	}
	report.Comments, err = a.saveDocument(ctx, comments.Flatten(post.Comments), title, commentsFolder, &post.SignedQuery)
	if err != nil {
		return report, fmt.Errorf("error processing comments for post %q: %w", title, err)
	}
	logger.Info(i18n.T(i18nk.CommentsArchived, map[string]any{"Title": title}))
	return report, nil
}

// saveDocument walks items into folder, then normalizes and optionally
// renders the resulting document.
func (a *Archiver) saveDocument(ctx context.Context, items []content.Item, title, folder string, signedQuery *string) (walker.Summary, error) {
	summary, err := a.Walker.Process(ctx, items, title, folder, signedQuery)
	if err != nil {
		return summary, err
	}
	if err := materialize.Normalize(folder, title); err != nil {
		return summary, fmt.Errorf("failed to normalize %q: %w", title+".md", err)
	}
	if a.Render {
		if err := render.RenderFile(folder, title); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// ArchiveAll saves posts with up to workers posts in flight. Posts that map
// to the same folder are saved one after another by a single worker. A failed
// post is logged and recorded in its report; the others carry on. Only
// cancellation is returned as an error.
func (a *Archiver) ArchiveAll(ctx context.Context, posts []content.Post, workers int) ([]Report, error) {
	logger := log.FromContext(ctx).With("run", xid.New().String())
	ctx = log.WithContext(ctx, logger)

	reports := make([]Report, len(posts))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))
	for _, group := range groupByFolder(posts) {
		eg.Go(func() error {
			for _, i := range group {
				report, err := a.ArchivePost(gctx, &posts[i])
				if err != nil {
					report.Err = err
				}
				reports[i] = report
				if errors.Is(err, context.Canceled) {
					return err
				}
				if err != nil {
					logger.Error(i18n.T(i18nk.PostFailed, map[string]any{
						"Title": report.Title,
						"Error": err,
					}))
				}
			}
			return nil
		})
	}
	return reports, eg.Wait()
}

// groupByFolder returns post indexes grouped by destination folder, groups in
// order of first appearance.
func groupByFolder(posts []content.Post) [][]int {
	var groups [][]int
	byKey := make(map[string]int, len(posts))
	for i := range posts {
		key := filepath.Join(fsutil.NormalizePathname(posts[i].Blog), fsutil.PostFolderName(posts[i].SafeTitle(), posts[i].CreatedAt))
		g, ok := byKey[key]
		if !ok {
			g = len(groups)
			byKey[key] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}
