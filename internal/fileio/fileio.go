package fileio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const maxLineSize = 16 * 1024 * 1024

// ReadLines reads a UTF-8 text file and returns its lines without line endings.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("%s:%d: invalid UTF-8", path, len(lines)+1)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// BackupPath is the path of the copy Replace keeps: the extension is swapped for ".bak".
func BackupPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".bak"
}

// Replace swaps the content of path for lines. When backup is set the original
// is copied to BackupPath first. The new content is staged in a temporary file
// in the same directory and renamed over the original, so the original is
// never partially written.
func Replace(path string, lines []string, backup bool) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	backupPath := ""
	if backup {
		backupPath = BackupPath(path)
		if err := copyFile(path, backupPath, info.Mode().Perm()); err != nil {
			return "", fmt.Errorf("backup %s: %w", path, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return backupPath, err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := WriteLines(tmp, lines); err != nil {
		tmp.Close()
		return backupPath, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return backupPath, err
	}
	if err := tmp.Close(); err != nil {
		return backupPath, err
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return backupPath, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return backupPath, err
	}
	committed = true
	return backupPath, nil
}

// WriteLines writes each line followed by a newline.
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
