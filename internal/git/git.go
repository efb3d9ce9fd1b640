package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"mdtoc/internal/toc"
)

// ChangedMarkdownFiles runs git diff against baseRef and returns the markdown
// files that were added, copied, modified or renamed, relative to the working directory.
func ChangedMarkdownFiles(baseRef string) ([]string, error) {
	cmd := exec.Command("git", "diff", "--relative", "--name-status", "--diff-filter=ACMR", baseRef)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	return parseNameStatus(output)
}

// parseNameStatus reads `git diff --name-status` output. Renames and copies
// carry two paths; the new one is kept.
func parseNameStatus(output []byte) ([]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	var files []string

	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), "\t")
		if len(parts) < 2 {
			continue
		}
		status := parts[0]
		path := parts[len(parts)-1]
		if status == "" || strings.HasPrefix(status, "D") {
			continue
		}
		if toc.IsMarkdown(path) {
			files = append(files, path)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return files, nil
}
