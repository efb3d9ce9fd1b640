package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"mdtoc/internal/config"
	"mdtoc/internal/crawler"
	"mdtoc/internal/fileio"
	"mdtoc/internal/git"
	"mdtoc/internal/logging"
	"mdtoc/internal/preview"
	"mdtoc/internal/prompt"
	"mdtoc/internal/report"
	"mdtoc/internal/toc"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "mdtoc",
		Short:         "Make / update the table of contents of markdown files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	configPath string
	verbose    bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log arguments and outcomes of each run")

	updateCmd.Flags().Bool("title", true, "The first heading is the document title")
	updateCmd.Flags().Bool("toc-header", true, "The heading after the title is the TOC header")
	updateCmd.Flags().String("header", "", "New TOC header text")
	updateCmd.Flags().Bool("override", true, "Replace an existing TOC")
	updateCmd.Flags().Bool("no-backup", false, "Do not keep a .bak copy")
	updateCmd.Flags().Bool("dry-run", false, "Print the result instead of writing it")
	updateCmd.Flags().String("changed", "", "Only update markdown files changed since this git ref")
	updateCmd.Flags().String("report", "", "Write a JSON run report to this path")

	previewCmd.Flags().StringP("output", "o", "", "Write the HTML to this file instead of stdout")

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(previewCmd)
}

func newLogger() *slog.Logger {
	return logging.New(os.Stderr, verbose)
}

// runTOC updates every file and saves the run report when a path is set.
func runTOC(ctx context.Context, files []string, opts toc.Options, reportPath string) (retErr error) {
	var rep *report.RunReport
	if reportPath != "" {
		rep = report.New("update")
		defer func() {
			if err := rep.Save(reportPath); err != nil {
				fmt.Printf("⚠️  Failed to write run report: %v\n", err)
			}
		}()
	}

	gen := toc.NewGenerator(os.Stdout, newLogger(), rep)
	results, err := gen.RunAll(ctx, files, opts)
	if err != nil {
		return err
	}

	changed := 0
	for _, r := range results {
		if r.Changed {
			changed++
		}
	}
	fmt.Printf("🎉 Processed %d file(s), %d changed.\n", len(results), changed)
	return nil
}

// resolvePaths picks the inputs of an update run: the files changed since ref,
// the paths given on the command line, or the default file. An empty result
// means ref matched no markdown files.
func resolvePaths(args []string, ref, defaultFile string, changed func(string) ([]string, error)) ([]string, error) {
	if ref != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("--changed cannot be combined with paths %v", args)
		}
		return changed(ref)
	}
	if len(args) == 0 {
		return []string{defaultFile}, nil
	}
	return args, nil
}

var updateCmd = &cobra.Command{
	Use:   "update [paths...]",
	Short: "Make or update the TOC of markdown files and directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		opts := toc.Options{
			HasTitle:     cfg.Defaults.HasTitle,
			HasTOCHeader: cfg.Defaults.HasTOCHeader,
			Header:       cfg.Defaults.TOCHeader,
			Override:     cfg.Defaults.Override,
			Backup:       cfg.Defaults.Backup,
		}
		flags := cmd.Flags()
		if flags.Changed("title") {
			opts.HasTitle, _ = flags.GetBool("title")
		}
		if flags.Changed("toc-header") {
			opts.HasTOCHeader, _ = flags.GetBool("toc-header")
		}
		if flags.Changed("header") {
			opts.Header, _ = flags.GetString("header")
		}
		if flags.Changed("override") {
			opts.Override, _ = flags.GetBool("override")
		}
		if noBackup, _ := flags.GetBool("no-backup"); noBackup {
			opts.Backup = false
		}
		opts.DryRun, _ = flags.GetBool("dry-run")

		reportPath := cfg.Report.Path
		if flags.Changed("report") {
			reportPath, _ = flags.GetString("report")
		}

		ref, _ := flags.GetString("changed")
		paths, err := resolvePaths(args, ref, cfg.Defaults.File, git.ChangedMarkdownFiles)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println("✅ No changed markdown files.")
			return nil
		}

		files, err := crawler.NewCrawler(cfg.Walk.Ignore).Collect(paths)
		if err != nil {
			return err
		}
		return runTOC(cmd.Context(), files, opts, reportPath)
	},
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Ask for the file and TOC options interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		var rep *report.RunReport
		if cfg.Report.Path != "" {
			rep = report.New("prompt")
			defer func() {
				if err := rep.Save(cfg.Report.Path); err != nil {
					fmt.Printf("⚠️  Failed to write run report: %v\n", err)
				}
			}()
		}
		_, err = prompt.Run(cmd.Context(), cfg, os.Stdin, os.Stdout, newLogger(), rep)
		return err
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Render a markdown file to HTML with TOC anchors resolved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := fileio.ReadLines(args[0])
		if err != nil {
			return err
		}
		source := []byte{}
		for _, l := range lines {
			source = append(source, l...)
			source = append(source, '\n')
		}

		html, err := preview.NewRenderer().Render(source)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			_, err = os.Stdout.Write(html)
			return err
		}
		if err := os.WriteFile(out, html, 0644); err != nil {
			return err
		}
		fmt.Printf("🖼️  Preview written to %s\n", out)
		return nil
	},
}
