package source

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/duke-git/lancet/v2/fileutil"
)

// ReadLinks returns the non-empty trimmed lines of the file at path.
func ReadLinks(path string) ([]string, error) {
	if !fileutil.IsExist(path) {
		return nil, fmt.Errorf("file with links does not exist: %q", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	defer f.Close()

	var links []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			links = append(links, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return links, nil
}
