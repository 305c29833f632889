package content

import "time"

type Post struct {
	ID          string
	Title       string
	Blog        string
	CreatedAt   int64
	HasAccess   bool
	SignedQuery string
	Data        []Item
	Comments    []Comment
}

// Content returns the root item sequence of the post.
func (p *Post) Content() []Item {
	return p.Data
}

// Available reports whether the post can be archived: it is accessible and
// has content.
func (p *Post) Available() bool {
	return p.HasAccess && len(p.Data) > 0
}

// SafeTitle is the post title, or its ID when the title is blank.
func (p *Post) SafeTitle() string {
	if p.Title == "" {
		return p.ID
	}
	return p.Title
}

// Comment is one node of a threaded comment tree.
type Comment struct {
	ID          string
	Author      string
	CreatedAt   int64
	Unavailable bool
	Data        []Item
	Replies     []Comment
}

func (c *Comment) Created() time.Time {
	return time.Unix(c.CreatedAt, 0).UTC()
}
