package content

import "testing"

func TestAssetFileNames(t *testing.T) {
	tests := []struct {
		name   string
		asset  Asset
		file   string
		url    string
		signed bool
	}{
		{"image", Image{URL: "https://img/1", ID: "abc"}, "abc.jpg", "https://img/1", false},
		{"file", File{URL: "https://f/1", Title: "doc.pdf"}, "doc.pdf", "https://f/1", true},
		{"audio", Audio{URL: "https://a/1", Title: "song.mp3"}, "song.mp3", "https://a/1", true},
		{"ok video", OkVideo{URL: "https://v/1", Title: "clip", VID: "42"}, "clip(42).mp4", "https://v/1", false},
		{"smile", Smile{SmallURL: "https://s/1", Name: "grin"}, "grin.png", "https://s/1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.asset.FileName(); got != tt.file {
				t.Errorf("FileName() = %q, want %q", got, tt.file)
			}
			if got := tt.asset.AssetURL(); got != tt.url {
				t.Errorf("AssetURL() = %q, want %q", got, tt.url)
			}
			if got := tt.asset.Signed(); got != tt.signed {
				t.Errorf("Signed() = %v, want %v", got, tt.signed)
			}
		})
	}
}

func TestPostAvailability(t *testing.T) {
	p := &Post{ID: "p1", HasAccess: true}
	if p.Available() {
		t.Fatal("post without data must not be available")
	}
	p.Data = []Item{Text{Content: `["x"]`}}
	if !p.Available() {
		t.Fatal("accessible post with data must be available")
	}
	p.HasAccess = false
	if p.Available() {
		t.Fatal("post without access must not be available")
	}
	if p.SafeTitle() != "p1" {
		t.Fatalf("SafeTitle() = %q, want post id fallback", p.SafeTitle())
	}
}
