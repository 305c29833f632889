package comments

import (
	"strings"
	"testing"
	"time"

	"github.com/postsaver/postsaver/common/utils/strutil"
	"github.com/postsaver/postsaver/pkg/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 3, 9, 17, 5, 0, 0, time.UTC).Unix()

func textItem(s string) content.Text {
	return content.Text{Content: `["` + s + `","unstyled",[]]`}
}

func firstString(t *testing.T, item content.Item) string {
	t.Helper()
	var raw string
	switch it := item.(type) {
	case content.Text:
		raw = it.Content
	case content.Link:
		raw = it.Content
	default:
		t.Fatalf("unexpected item %T", item)
	}
	s, ok := strutil.FirstJSONString(raw)
	require.True(t, ok, "fragment %q must stay parseable", raw)
	return s
}

func TestFlattenNesting(t *testing.T) {
	roots := []content.Comment{{
		Author:    "alice",
		CreatedAt: created,
		Data:      []content.Item{textItem("root")},
		Replies: []content.Comment{{
			Author:    "bob",
			CreatedAt: created,
			Data:      []content.Item{textItem("reply")},
			Replies: []content.Comment{{
				Author:    "carol",
				CreatedAt: created,
				Data:      []content.Item{textItem("deep")},
			}},
		}},
	}}

	items := Flatten(roots)
	require.Len(t, items, 3)
	assert.Equal(t, "[2024-03-09 17:05][alice] root", firstString(t, items[0]))
	assert.Equal(t, "└ [2024-03-09 17:05][bob] reply", firstString(t, items[1]))

	deep := firstString(t, items[2])
	assert.Equal(t, "└└ [2024-03-09 17:05][carol] deep", deep)
	assert.Equal(t, 2, strings.Count(deep, depthMarker))
	assert.Less(t, strings.Index(deep, depthMarker), strings.Index(deep, "[2024"))
	assert.Less(t, strings.Index(deep, "[carol]"), strings.Index(deep, "deep"))
}

func TestFlattenOrder(t *testing.T) {
	roots := []content.Comment{
		{Author: "a", CreatedAt: created, Data: []content.Item{textItem("1")}, Replies: []content.Comment{
			{Author: "b", CreatedAt: created, Data: []content.Item{textItem("1.1")}},
			{Author: "c", CreatedAt: created, Data: []content.Item{textItem("1.2")}},
		}},
		{Author: "d", CreatedAt: created, Data: []content.Item{textItem("2")}},
	}
	var got []string
	for _, item := range Flatten(roots) {
		s := firstString(t, item)
		got = append(got, s[strings.LastIndex(s, "] ")+2:])
	}
	assert.Equal(t, []string{"1", "1.1", "1.2", "2"}, got)
}

func TestFlattenKeepsNonTextItems(t *testing.T) {
	img := content.Image{URL: "https://img/1", ID: "1"}
	brk := content.Text{Modificator: content.BlockEnd}
	link := content.Link{Content: `["see",""]`, URL: "https://example.com"}
	roots := []content.Comment{{
		Author:    `quote"r`,
		CreatedAt: created,
		Data:      []content.Item{img, brk, link},
	}}

	items := Flatten(roots)
	require.Len(t, items, 3)
	assert.Equal(t, img, items[0])
	assert.Equal(t, brk, items[1])
	assert.Equal(t, `[2024-03-09 17:05][quote"r] see`, firstString(t, items[2]))
}

func TestFlattenDoesNotMutateSource(t *testing.T) {
	original := textItem("hi")
	roots := []content.Comment{{Author: "a", CreatedAt: created, Data: []content.Item{original}}}
	Flatten(roots)
	assert.Equal(t, original, roots[0].Data[0])
}

func TestFlattenSkipsUnavailable(t *testing.T) {
	roots := []content.Comment{
		{Author: "hidden", Unavailable: true, Data: []content.Item{textItem("x")}, Replies: []content.Comment{
			{Author: "child", Data: []content.Item{textItem("y")}},
		}},
		{Author: "shown", CreatedAt: created, Data: []content.Item{textItem("z")}},
	}
	items := Flatten(roots)
	require.Len(t, items, 1)
	assert.Contains(t, firstString(t, items[0]), "[shown] z")
}

func TestAvailable(t *testing.T) {
	assert.False(t, Available(nil))
	assert.False(t, Available([]content.Comment{{Unavailable: true}}))
	assert.True(t, Available([]content.Comment{{Unavailable: true}, {}}))
}

func TestInsertPrefixLeavesOtherShapes(t *testing.T) {
	assert.Equal(t, "plain", insertPrefix("plain", "p "))
	assert.Equal(t, `[1]`, insertPrefix(`[1]`, "p "))
}
