package materialize

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

const maxBlankLines = 2

// Normalize rewrites the document of title in place: trailing whitespace is
// trimmed from every line, runs of blank lines are capped at two and the file
// ends with a newline. A missing document is left alone.
func Normalize(folder, title string) error {
	docPath := DocumentPath(folder, title)
	raw, err := os.ReadFile(docPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &FileError{Op: "read document", Path: docPath, Err: err}
	}

	normalized := NormalizeText(string(raw))
	if normalized == string(raw) {
		return nil
	}
	if err := os.WriteFile(docPath, []byte(normalized), 0o644); err != nil {
		return &FileError{Op: "write document", Path: docPath, Err: err}
	}
	return nil
}

// NormalizeText is the pure form of Normalize.
func NormalizeText(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	blank := 0
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		line = strings.TrimRight(line, " \t\r\f\v")
		if line == "" {
			blank++
			if blank <= maxBlankLines {
				sb.WriteByte('\n')
			}
			continue
		}
		blank = 0
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	out := sb.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}
