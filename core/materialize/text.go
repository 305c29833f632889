package materialize

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/postsaver/postsaver/common/utils/fsutil"
	"github.com/postsaver/postsaver/pkg/content"
	"github.com/postsaver/postsaver/pkg/ledger"
)

// DocumentPath returns the markdown document of title inside folder.
func DocumentPath(folder, title string) string {
	return filepath.Join(folder, fsutil.NormalizePathname(title)+".md")
}

// AppendText appends text to the document of title unless the same trimmed
// text was appended to this folder before. The ledger entry is written after
// the text, so a crash in between can duplicate a block but never lose one.
func AppendText(ctx context.Context, folder, title, text, modificator string) (Result, error) {
	docPath := DocumentPath(folder, title)
	file, err := fsutil.OpenAppend(docPath)
	if err != nil {
		return Result{}, &FileError{Op: "open document", Path: docPath, Err: err}
	}
	defer file.Close()

	if modificator == content.BlockEnd {
		if _, err := file.WriteString("\n"); err != nil {
			return Result{}, &FileError{Op: "write document", Path: docPath, Err: err}
		}
		return Success(), nil
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Skipped(), nil
	}

	hash := ledger.HashOf(trimmed)
	seen, err := ledger.Contains(folder, hash)
	if err != nil {
		return Result{}, err
	}
	if seen {
		log.FromContext(ctx).Debug("Text block already written", "document", docPath, "hash", hash[:12])
		return Skipped(), nil
	}

	if _, err := file.WriteString(trimmed + "\n"); err != nil {
		return Result{}, &FileError{Op: "write document", Path: docPath, Err: err}
	}
	if err := ledger.Append(folder, hash); err != nil {
		return Result{}, fmt.Errorf("text written to %q but not recorded: %w", docPath, err)
	}
	return Success(), nil
}
