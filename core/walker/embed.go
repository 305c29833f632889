package walker

import (
	"fmt"
	"strings"

	"github.com/postsaver/postsaver/common/i18n"
	"github.com/postsaver/postsaver/common/i18n/i18nk"
	"github.com/postsaver/postsaver/common/utils/strutil"
	"github.com/postsaver/postsaver/pkg/content"
)

// relPlaceholder is replaced with the saved file's path relative to the
// document once the asset is on disk.
const relPlaceholder = "{rel}"

// assetFragment returns the document fragment that embeds asset.
func assetFragment(asset content.Asset) string {
	switch it := asset.(type) {
	case content.Image:
		return fmt.Sprintf("<img src=\"%s\" alt=\"%s\" class=\"thumbnail\">\n", relPlaceholder, it.ID)
	case content.OkVideo:
		return fmt.Sprintf("<video controls>\n  <source src=\"%s\" type=\"video/mp4\">\n  %s\n</video>\n",
			relPlaceholder, i18n.T(i18nk.EmbedVideoFallback))
	case content.Audio:
		return fmt.Sprintf("<audio controls>\n  <source src=\"%s\" type=\"audio/mpeg\">\n  %s\n</audio>\n",
			relPlaceholder, i18n.T(i18nk.EmbedAudioFallback))
	case content.File:
		return fmt.Sprintf("<a href=\"%s\" download>%s</a>\n", relPlaceholder, it.Title)
	case content.Smile:
		return fmt.Sprintf("![%s](%s)\n", it.Name, relPlaceholder)
	}
	return ""
}

func withRel(fragment, rel string) string {
	return strings.ReplaceAll(fragment, relPlaceholder, rel)
}

func videoFragment(v content.Video) string {
	return fmt.Sprintf("<iframe src=\"%s\" frameborder=\"0\" allowfullscreen></iframe>\n", strutil.EmbedURL(v.URL))
}

// linkText renders a link fragment as "text (url)".
func linkText(l content.Link) (string, bool) {
	text, ok := strutil.FirstJSONString(l.Content)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s (%s)", text, l.URL), true
}
