package crawler

import (
	"io/fs"
	"os"
	"path/filepath"

	"mdtoc/internal/toc"
)

// Crawler expands directories into the markdown files they contain.
type Crawler struct {
	ignored []string
}

// NewCrawler creates a crawler skipping directories named in ignored.
func NewCrawler(ignored []string) *Crawler {
	return &Crawler{ignored: ignored}
}

// Collect returns the files to process for the given paths, in walk order and
// without duplicates. Regular files are kept as given so that a wrong
// extension is reported by the generator; directories are walked for markdown.
func (c *Crawler) Collect(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = c.ScanDir(root, add)
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// ScanDir walks root and calls onFile for every markdown file found.
func (c *Crawler) ScanDir(root string, onFile func(path string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			if path != root && c.isIgnored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() && toc.IsMarkdown(d.Name()) {
			onFile(path)
		}
		return nil
	})
}

func (c *Crawler) isIgnored(name string) bool {
	for _, ign := range c.ignored {
		if name == ign {
			return true
		}
	}
	return false
}
