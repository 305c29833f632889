// Package render turns a finished markdown document into a standalone HTML
// page next to it.
package render

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/postsaver/postsaver/common/utils/fsutil"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

const contentPlaceholder = "{content}"

//go:embed template.html
var pageTemplate string

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Footnote,
		extension.DefinitionList,
		extension.Typographer,
	),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// HTMLPath is the page written for the document of title inside folder.
func HTMLPath(folder, title string) string {
	return filepath.Join(folder, fsutil.NormalizePathname(title)+".html")
}

// RenderFile converts the markdown document of title into HTML. A missing
// document is not an error.
func RenderFile(folder, title string) error {
	mdPath := filepath.Join(folder, fsutil.NormalizePathname(title)+".md")
	source, err := os.ReadFile(mdPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %q: %w", mdPath, err)
	}

	page, err := Page(title, source)
	if err != nil {
		return fmt.Errorf("failed to render %q: %w", mdPath, err)
	}

	htmlPath := HTMLPath(folder, title)
	if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
		return fmt.Errorf("failed to write HTML file %q: %w", htmlPath, err)
	}
	return nil
}

// Page renders source into the page template.
func Page(title string, source []byte) (string, error) {
	var body bytes.Buffer
	if err := markdown.Convert(source, &body); err != nil {
		return "", err
	}
	page := strings.Replace(pageTemplate, contentPlaceholder, body.String(), 1)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", err
	}
	doc.Find("title").SetText(title)
	doc.Find("img").SetAttr("loading", "lazy")
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			a.SetAttr("target", "_blank")
			a.SetAttr("rel", "noopener noreferrer")
		}
	})
	return goquery.OuterHtml(doc.Selection)
}
