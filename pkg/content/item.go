// Package content models the items a post or comment is made of.
package content

import "fmt"

// BlockEnd is the text modificator that marks a paragraph break.
const BlockEnd = "BLOCK_END"

// Item is one discrete unit of post or comment content. The set of
// implementations is closed; consumers dispatch with a type switch.
type Item interface {
	item()
}

// Asset is an item backed by a remote binary that is saved next to the
// document.
type Asset interface {
	Item
	// AssetURL is the remote location of the binary.
	AssetURL() string
	// FileName is the logical local name, before sanitizing.
	FileName() string
	// Signed reports whether the post's signed query must be appended to the
	// URL to download the binary.
	Signed() bool
}

type Image struct {
	URL string `mapstructure:"url"`
	ID  string `mapstructure:"id"`
}

type File struct {
	URL   string `mapstructure:"url"`
	Title string `mapstructure:"title"`
	Size  int64  `mapstructure:"size"`
}

type Audio struct {
	URL   string `mapstructure:"url"`
	Title string `mapstructure:"title"`
	Size  int64  `mapstructure:"size"`
}

type OkVideo struct {
	URL   string `mapstructure:"url"`
	Title string `mapstructure:"title"`
	VID   string `mapstructure:"vid"`
}

type Smile struct {
	SmallURL string `mapstructure:"smallUrl"`
	Name     string `mapstructure:"name"`
}

// Video is a remotely hosted video that is embedded, never downloaded.
type Video struct {
	URL string `mapstructure:"url"`
}

// Text holds a JSON array encoded fragment; its first element is the text.
type Text struct {
	Content     string `mapstructure:"content"`
	Modificator string `mapstructure:"modificator"`
}

// Link is a text fragment paired with a target URL.
type Link struct {
	Content string `mapstructure:"content"`
	URL     string `mapstructure:"url"`
}

// List groups nested items. Groups and their items keep source order.
type List struct {
	Items [][]Item
}

// Unknown is any item whose type is not recognized.
type Unknown struct {
	Type string
}

func (Image) item()   {}
func (File) item()    {}
func (Audio) item()   {}
func (OkVideo) item() {}
func (Smile) item()   {}
func (Video) item()   {}
func (Text) item()    {}
func (Link) item()    {}
func (List) item()    {}
func (Unknown) item() {}

func (i Image) AssetURL() string { return i.URL }
func (i Image) FileName() string { return i.ID + ".jpg" }
func (Image) Signed() bool       { return false }

func (f File) AssetURL() string { return f.URL }
func (f File) FileName() string { return f.Title }
func (File) Signed() bool       { return true }

func (a Audio) AssetURL() string { return a.URL }
func (a Audio) FileName() string { return a.Title }
func (Audio) Signed() bool       { return true }

func (v OkVideo) AssetURL() string { return v.URL }
func (v OkVideo) FileName() string { return fmt.Sprintf("%s(%s).mp4", v.Title, v.VID) }
func (OkVideo) Signed() bool       { return false }

func (s Smile) AssetURL() string { return s.SmallURL }
func (s Smile) FileName() string { return s.Name + ".png" }
func (Smile) Signed() bool       { return false }

// IsBlockEnd reports whether t is a paragraph break marker.
func (t Text) IsBlockEnd() bool {
	return t.Modificator == BlockEnd
}

var (
	_ Asset = Image{}
	_ Asset = File{}
	_ Asset = Audio{}
	_ Asset = OkVideo{}
	_ Asset = Smile{}
)
