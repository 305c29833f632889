package archive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/postsaver/postsaver/common/i18n"
	"github.com/postsaver/postsaver/core/materialize"
	"github.com/postsaver/postsaver/core/walker"
	"github.com/postsaver/postsaver/pkg/content"
	"github.com/postsaver/postsaver/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC).Unix()

func testContext() context.Context {
	i18n.Init("en")
	return log.WithContext(context.Background(), log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Level:           log.ErrorLevel,
	}))
}

func text(s string) content.Text {
	return content.Text{Content: `["` + s + `","unstyled",[]]`}
}

// instantTimer fires immediately so retries do not wait.
type instantTimer struct{}

var fired = func() chan time.Time {
	c := make(chan time.Time)
	close(c)
	return c
}()

func (instantTimer) Start(time.Duration) {}
func (instantTimer) Stop()               {}
func (instantTimer) C() <-chan time.Time { return fired }

type fixture struct {
	srv      *httptest.Server
	requests atomic.Int32
	archiver *Archiver
	root     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{root: t.TempDir()}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("bytes of " + r.URL.Path))
	}))
	t.Cleanup(f.srv.Close)

	engine := materialize.NewEngine(
		materialize.WithHTTPClient(f.srv.Client()),
		materialize.WithTimer(instantTimer{}),
	)
	f.archiver = &Archiver{
		Walker:   walker.New(engine),
		Root:     f.root,
		Render:   true,
		Comments: true,
	}
	return f
}

func (f *fixture) post() content.Post {
	return content.Post{
		ID:          "p1",
		Title:       "Weekly: update",
		Blog:        "someblog",
		CreatedAt:   created,
		HasAccess:   true,
		SignedQuery: "?sig=1",
		Data: []content.Item{
			text("Hello"),
			content.Text{Modificator: content.BlockEnd},
			content.Image{URL: f.srv.URL + "/img", ID: "cover"},
			content.List{Items: [][]content.Item{{text("first")}, {text("second")}}},
		},
		Comments: []content.Comment{{
			Author:    "alice",
			CreatedAt: created,
			Data:      []content.Item{text("nice")},
			Replies: []content.Comment{{
				Author:    "bob",
				CreatedAt: created,
				Data:      []content.Item{text("thanks")},
			}},
		}},
	}
}

func TestArchivePost(t *testing.T) {
	f := newFixture(t)
	post := f.post()

	report, err := f.archiver.ArchivePost(testContext(), &post)
	require.NoError(t, err)

	folder := filepath.Join(f.root, "someblog", "2024.03.09 Weekly_ update")
	assert.Equal(t, folder, report.Folder)
	assert.Equal(t, walker.Summary{Success: 5}, report.Post)
	assert.Equal(t, walker.Summary{Success: 2}, report.Comments)

	doc, err := os.ReadFile(filepath.Join(folder, "Weekly_ update.md"))
	require.NoError(t, err)
	assert.Equal(t, "Hello\n\n<img src=\"cover.jpg\" alt=\"cover\" class=\"thumbnail\">\nfirst\nsecond\n", string(doc))

	img, err := os.ReadFile(filepath.Join(folder, "cover.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "bytes of /img", string(img))

	assert.FileExists(t, ledger.Path(folder))
	assert.FileExists(t, filepath.Join(folder, "Weekly_ update.html"))

	commentsDoc, err := os.ReadFile(filepath.Join(folder, "comments", "Weekly_ update.md"))
	require.NoError(t, err)
	assert.Equal(t, "[2024-03-09 10:00][alice] nice\n└ [2024-03-09 10:00][bob] thanks\n", string(commentsDoc))
	assert.FileExists(t, ledger.Path(filepath.Join(folder, "comments")))
}

func TestArchivePostTwice(t *testing.T) {
	f := newFixture(t)
	post := f.post()
	ctx := testContext()

	_, err := f.archiver.ArchivePost(ctx, &post)
	require.NoError(t, err)
	requests := f.requests.Load()

	report, err := f.archiver.ArchivePost(ctx, &post)
	require.NoError(t, err)
	assert.Equal(t, requests, f.requests.Load())
	assert.Equal(t, 4, report.Post.Skipped)

	doc, err := os.ReadFile(filepath.Join(report.Folder, "Weekly_ update.md"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(doc), "Hello"))
	assert.Equal(t, 1, strings.Count(string(doc), "cover.jpg"))
}

func TestArchivePostUnavailable(t *testing.T) {
	f := newFixture(t)
	post := f.post()
	post.HasAccess = false

	report, err := f.archiver.ArchivePost(testContext(), &post)
	require.NoError(t, err)
	assert.True(t, report.Unavailable)
	assert.NoDirExists(t, filepath.Join(f.root, "someblog"))
}

func TestArchivePostWithoutComments(t *testing.T) {
	f := newFixture(t)
	post := f.post()
	post.Comments = []content.Comment{{Unavailable: true, Data: []content.Item{text("gone")}}}

	report, err := f.archiver.ArchivePost(testContext(), &post)
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(report.Folder, "comments"))
}

func TestArchiveAll(t *testing.T) {
	f := newFixture(t)
	f.archiver.Render = false

	first := f.post()
	second := f.post()
	second.ID = "p2"
	second.Title = "Other"
	second.Data = []content.Item{
		content.Image{URL: f.srv.URL + "/missing", ID: "broken"},
		text("still here"),
	}
	third := f.post()
	third.ID = "p3"
	third.HasAccess = false

	reports, err := f.archiver.ArchiveAll(testContext(), []content.Post{first, second, third}, 2)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, "p1", reports[0].PostID)
	assert.NoError(t, reports[0].Err)

	assert.Equal(t, "p2", reports[1].PostID)
	assert.Equal(t, 1, reports[1].Post.Failed)
	assert.Equal(t, 1, reports[1].Post.Success)
	assert.NoFileExists(t, filepath.Join(reports[1].Folder, "broken.jpg"))

	assert.True(t, reports[2].Unavailable)
	assert.Equal(t, 7, reports[0].Total().Success)
}

func TestArchiveAllRecordsFilesystemErrors(t *testing.T) {
	f := newFixture(t)
	blocked := filepath.Join(f.root, "blocked")
	require.NoError(t, os.WriteFile(blocked, nil, 0o644))

	post := f.post()
	post.Blog = "blocked"
	reports, err := f.archiver.ArchiveAll(testContext(), []content.Post{post}, 1)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Error(t, reports[0].Err)
}

func TestGroupByFolder(t *testing.T) {
	posts := []content.Post{
		{ID: "1", Blog: "b", Title: "same", CreatedAt: created},
		{ID: "2", Blog: "b", Title: "other", CreatedAt: created},
		{ID: "3", Blog: "b", Title: "same", CreatedAt: created},
		{ID: "4", Blog: "c", Title: "same", CreatedAt: created},
	}
	assert.Equal(t, [][]int{{0, 2}, {1}, {3}}, groupByFolder(posts))
}
