package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"mdtoc/internal/config"
	"mdtoc/internal/report"
	"mdtoc/internal/toc"
)

// Answers holds what the user chose in an interactive session.
type Answers struct {
	File    string
	Options toc.Options
}

// Prompter asks the questions of the interactive mode.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Collect asks for the file and TOC options. Blank answers take the defaults
// from cfg; for yes/no questions anything but "y" or "yes" means no.
func (p *Prompter) Collect(cfg *config.Config) (Answers, error) {
	d := cfg.Defaults
	var a Answers
	var err error

	if a.File, err = p.ask(fmt.Sprintf("Enter filename (press ENTER for '%s') : ", d.File), d.File); err != nil {
		return a, err
	}
	if a.Options.HasTitle, err = p.confirm("Has header for title", d.HasTitle); err != nil {
		return a, err
	}
	if a.Options.HasTOCHeader, err = p.confirm("Has header for table of contents", d.HasTOCHeader); err != nil {
		return a, err
	}
	if a.Options.Header, err = p.ask("Enter new TOC header (press ENTER if none or no change) : ", d.TOCHeader); err != nil {
		return a, err
	}
	if a.Options.Override, err = p.confirm("Override any existing TOC", d.Override); err != nil {
		return a, err
	}
	a.Options.Backup = d.Backup
	return a, nil
}

// Run is the interactive mode: it collects the answers from in and updates the
// chosen file, narrating to out.
func Run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, logger *slog.Logger, rep *report.RunReport) (*toc.Result, error) {
	fmt.Fprintln(out, "----- Make/Update Table of Contents (TOC) for Markdown Files -----")
	answers, err := NewPrompter(in, out).Collect(cfg)
	if err != nil {
		return nil, err
	}
	return toc.NewGenerator(out, logger, rep).Run(ctx, answers.File, answers.Options)
}

func (p *Prompter) ask(question, def string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (p *Prompter) confirm(question string, def bool) (bool, error) {
	hint := "press ENTER for YES, enter any key for no"
	if !def {
		hint = "press ENTER for NO, enter y for yes"
	}
	answer, err := p.ask(fmt.Sprintf("%s (%s) ? ", question, hint), "")
	if err != nil {
		return false, err
	}
	if answer == "" {
		return def, nil
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
