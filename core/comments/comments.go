// Package comments flattens a threaded comment tree into one item sequence
// that reads top to bottom, every text line tagged with its date, author and
// reply depth.
package comments

import (
	"fmt"
	"strings"

	"github.com/postsaver/postsaver/common/utils/strutil"
	"github.com/postsaver/postsaver/pkg/content"
)

const (
	depthMarker = "└"
	dateLayout  = "2006-01-02 15:04"
	// text fragments are JSON arrays whose first element is the text
	fragmentOpen = `["`
)

// Available reports whether at least one top level comment can be read.
func Available(roots []content.Comment) bool {
	for i := range roots {
		if !roots[i].Unavailable {
			return true
		}
	}
	return false
}

// Flatten visits roots depth first, parent before replies, and returns copies
// of their items. Unavailable comments are skipped along with their replies.
func Flatten(roots []content.Comment) []content.Item {
	var items []content.Item
	for i := range roots {
		items = appendComment(items, &roots[i], 0)
	}
	return items
}

func appendComment(items []content.Item, c *content.Comment, depth int) []content.Item {
	if c.Unavailable {
		return items
	}
	prefix := Header(c, depth)
	for _, item := range c.Data {
		items = append(items, annotate(item, prefix))
	}
	for i := range c.Replies {
		items = appendComment(items, &c.Replies[i], depth+1)
	}
	return items
}

// Header is the tag written in front of every text line of c: one marker per
// reply level, then the creation time and the author.
func Header(c *content.Comment, depth int) string {
	var sb strings.Builder
	if depth > 0 {
		sb.WriteString(strings.Repeat(depthMarker, depth))
		sb.WriteByte(' ')
	}
	fmt.Fprintf(&sb, "[%s][%s] ", c.Created().Format(dateLayout), c.Author)
	return sb.String()
}

func annotate(item content.Item, prefix string) content.Item {
	switch it := item.(type) {
	case content.Text:
		if it.IsBlockEnd() {
			return it
		}
		it.Content = insertPrefix(it.Content, prefix)
		return it
	case content.Link:
		it.Content = insertPrefix(it.Content, prefix)
		return it
	}
	return item
}

func insertPrefix(fragment, prefix string) string {
	if !strings.HasPrefix(fragment, fragmentOpen) {
		return fragment
	}
	return fragmentOpen + strutil.EscapeJSONString(prefix) + fragment[len(fragmentOpen):]
}
