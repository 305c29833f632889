// Package ledger keeps the per-folder record of text blocks that were already
// written to a document. The record is a plain file with one hex encoded
// SHA-256 hash per line; it is only ever appended to.
package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/postsaver/postsaver/common/utils/strutil"
)

// FileName is the name of the sidecar file inside a document folder.
const FileName = ".hashes"

// Path returns the ledger path for folder.
func Path(folder string) string {
	return filepath.Join(folder, FileName)
}

// HashOf returns the ledger key of text: the SHA-256 of its trimmed form.
func HashOf(text string) string {
	return strutil.HashString(strings.TrimSpace(text))
}

// Load reads every hash recorded for folder. A missing ledger is an empty set.
func Load(folder string) (map[string]struct{}, error) {
	hashes := make(map[string]struct{})
	f, err := os.Open(Path(folder))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return hashes, nil
		}
		return nil, fmt.Errorf("failed to open ledger %q: %w", Path(folder), err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		hashes[scanner.Text()] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger %q: %w", Path(folder), err)
	}
	return hashes, nil
}

// Contains reports whether hash is recorded for folder.
func Contains(folder, hash string) (bool, error) {
	hashes, err := Load(folder)
	if err != nil {
		return false, err
	}
	_, ok := hashes[hash]
	return ok, nil
}

// Append records hash for folder.
func Append(folder, hash string) error {
	f, err := os.OpenFile(Path(folder), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open ledger %q: %w", Path(folder), err)
	}
	if _, err := f.WriteString(hash + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to ledger %q: %w", Path(folder), err)
	}
	return f.Close()
}
