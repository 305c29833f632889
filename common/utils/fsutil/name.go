package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/duke-git/lancet/v2/fileutil"
)

const CommentsDir = "comments"

// NormalizePathname maps an arbitrary title to a name that is safe as a single
// path component on every platform.
func NormalizePathname(name string) string {
	s := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0, ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if unicode.IsControl(r) {
			return '_'
		}
		return r
	}, name)
	s = strings.TrimRight(s, ". ")
	if s == "" {
		return "_"
	}
	return s
}

// PostFolderName is "<YYYY.MM.DD> <title>" with the date taken in UTC.
func PostFolderName(title string, createdAt int64) string {
	date := time.Unix(createdAt, 0).UTC().Format("2006.01.02")
	return fmt.Sprintf("%s %s", date, NormalizePathname(title))
}

// PostFolder creates and returns root/<blog>/<date> <title>.
func PostFolder(root, blog, title string, createdAt int64) (string, error) {
	dir := filepath.Join(root, NormalizePathname(blog), PostFolderName(title, createdAt))
	if !fileutil.IsExist(dir) {
		if err := fileutil.CreateDir(dir); err != nil {
			return "", fmt.Errorf("failed to create folder for post %q in blog %q: %w", title, blog, err)
		}
	}
	return dir, nil
}

// CommentsFolder creates and returns the comments subfolder of a post folder.
func CommentsFolder(postFolder string) (string, error) {
	dir := filepath.Join(postFolder, CommentsDir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create comments folder %q: %w", dir, err)
	}
	return dir, nil
}
