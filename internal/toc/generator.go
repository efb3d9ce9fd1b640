package toc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"mdtoc/internal/fileio"
	"mdtoc/internal/logging"
	"mdtoc/internal/report"
)

const (
	codeInvalidFile = "INVALID_MARKDOWN_FILE"
	codeReadFailed  = "READ_FAILED"
	codeWriteFailed = "WRITE_FAILED"
)

// ErrNotMarkdown is the cause of errors for files without a markdown extension.
var ErrNotMarkdown = errors.New("not a markdown file")

var markdownExts = map[string]bool{
	".markdown": true,
	".mdown":    true,
	".mkdn":     true,
	".mkd":      true,
	".md":       true,
}

// IsMarkdown reports whether path has one of the accepted markdown extensions.
func IsMarkdown(path string) bool {
	return markdownExts[strings.ToLower(filepath.Ext(path))]
}

// Options controls a single TOC run.
type Options struct {
	// HasTitle treats the first heading as the document title.
	HasTitle bool
	// HasTOCHeader treats the next heading as the header of the TOC.
	HasTOCHeader bool
	// Header, when set, is written as the new TOC header.
	Header string
	// Override removes a previously generated TOC.
	Override bool
	// Backup keeps a .bak copy of the original.
	Backup bool
	// DryRun prints the result instead of writing it.
	DryRun bool
}

// Result describes what a run did to one file.
type Result struct {
	Path       string
	Plan       Plan
	Removed    *Range
	Lines      []string
	Changed    bool
	BackupPath string
}

// Generator runs the scan, synthesize and rewrite pipeline over markdown files.
type Generator struct {
	out    io.Writer
	logger *slog.Logger
	report *report.RunReport
}

// NewGenerator narrates progress to out. logger and rep may be nil.
func NewGenerator(out io.Writer, logger *slog.Logger, rep *report.RunReport) *Generator {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Generator{out: out, logger: logger, report: rep}
}

// Run makes or updates the TOC of the markdown file at path.
func (g *Generator) Run(ctx context.Context, path string, opts Options) (*Result, error) {
	args := []logging.Arg{
		{Name: "filename", Value: path},
		{Name: "has_title", Value: opts.HasTitle},
		{Name: "has_toc_header", Value: opts.HasTOCHeader},
		{Name: "toc_header", Value: opts.Header},
		{Name: "override", Value: opts.Override},
		{Name: "backup", Value: opts.Backup},
		{Name: "dry_run", Value: opts.DryRun},
	}
	return logging.Catch(ctx, g.logger, "auto_toc", args, func() (*Result, error) {
		return g.run(ctx, path, opts)
	})
}

// RunAll processes paths in order and stops at the first failure.
func (g *Generator) RunAll(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	results := make([]*Result, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := g.Run(ctx, path, opts)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (g *Generator) run(ctx context.Context, path string, opts Options) (*Result, error) {
	fmt.Fprintf(g.out, "📖 Reading %s ...\n", path)
	if !IsMarkdown(path) {
		err := fmt.Errorf("expect a markdown file, but file extension is %q: %w", filepath.Ext(path), ErrNotMarkdown)
		g.report.AddSignal("invalid_extension", path, "critical", err.Error())
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid input file").
			WithTextCode(codeInvalidFile)
	}

	stage := g.report.BeginStage("read", path)
	lines, err := fileio.ReadLines(path)
	g.report.EndStage(stage, map[string]float64{"lines": float64(len(lines))}, err)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryCommand, "read markdown file").
			WithTextCode(codeReadFailed)
	}

	fmt.Fprintln(g.out, "🔍 Scanning file for headers ...")
	stage = g.report.BeginStage("scan", path)
	doc := Scan(lines)
	plan := Synthesize(doc.Headings, opts)
	g.report.EndStage(stage, map[string]float64{
		"headings":   float64(len(doc.Headings)),
		"list_lines": float64(len(doc.ListLines)),
		"entries":    float64(len(plan.Entries)),
	}, nil)
	if plan.TitleLine > 0 {
		fmt.Fprintf(g.out, "   title: %s (line %d)\n", preview(doc.Headings[0].Text), plan.TitleLine)
	}
	if plan.HeaderLine > 0 {
		fmt.Fprintf(g.out, "   TOC header: line %d\n", plan.HeaderLine)
	}
	if plan.Header != "" {
		fmt.Fprintf(g.out, "   new TOC header: %s\n", plan.Header)
	}
	if len(plan.Entries) == 0 {
		g.report.AddSignal("no_headings", path, "warning", "No headings left to list in the TOC.")
	}

	var removed *Range
	if opts.Override {
		stage = g.report.BeginStage("detect", path)
		removed = Locate(doc, plan)
		g.report.EndStage(stage, map[string]float64{"removed_lines": float64(removed.Len())}, nil)
		if removed != nil {
			fmt.Fprintf(g.out, "🧹 Detected an existing TOC, from line %d to line %d ...\n", removed.Begin, removed.End)
		}
	}

	out := Rewrite(lines, plan, removed)
	res := &Result{
		Path:    path,
		Plan:    plan,
		Removed: removed,
		Lines:   out,
		Changed: !slices.Equal(lines, out),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fmt.Fprintf(g.out, "📝 Making / Updating TOC for %d headers ...\n", len(plan.Entries))
	stage = g.report.BeginStage("write", path)
	switch {
	case opts.DryRun:
		err = fileio.WriteLines(g.out, out)
	case res.Changed:
		res.BackupPath, err = fileio.Replace(path, out, opts.Backup)
		if res.BackupPath != "" {
			fmt.Fprintf(g.out, "💾 Saved a back-up copy to %s\n", res.BackupPath)
		}
	default:
		fmt.Fprintln(g.out, "   already up to date")
	}
	g.report.EndStage(stage, map[string]float64{"lines": float64(len(out))}, err)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryCommand, "write markdown file").
			WithTextCode(codeWriteFailed)
	}

	metric := report.FileMetric{
		Path:       path,
		Headings:   len(doc.Headings),
		Entries:    len(plan.Entries),
		TitleLine:  plan.TitleLine,
		AnchorLine: plan.AnchorLine,
		Changed:    res.Changed,
		DryRun:     opts.DryRun,
		BackupPath: res.BackupPath,
	}
	if removed != nil {
		metric.RemovedFrom, metric.RemovedTo = removed.Begin, removed.End
	}
	g.report.AddFile(metric)

	fmt.Fprintln(g.out, "✨ Finish ...")
	return res, nil
}

func preview(text string) string {
	r := []rune(strings.TrimSpace(text))
	if len(r) > 10 {
		r = r[:10]
	}
	return strings.TrimRight(string(r), " \t")
}
