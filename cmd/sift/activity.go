package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/statement-sifter/internal/cli"
	"github.com/Veraticus/statement-sifter/internal/common"
	"github.com/Veraticus/statement-sifter/internal/dedup"
	"github.com/Veraticus/statement-sifter/internal/export"
	"github.com/Veraticus/statement-sifter/internal/model"
	"github.com/Veraticus/statement-sifter/internal/statement"
)

func activityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity [files...]",
		Short: "Parse activity reports into canonical transaction CSV",
		Long: `Parse one or more activity/transaction report text exports, deduplicate the
transactions, and emit the canonical CSV.

Examples:
  # Parse a single report to stdout
  sift activity ~/Downloads/statement_jan.txt

  # Parse a quarter's worth of reports into one CSV
  sift activity ~/Downloads/statement_*.txt -o q1.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runActivity,
	}

	cmd.Flags().StringP("output", "o", "", "write canonical CSV to this file (default stdout)")
	cmd.Flags().BoolP("dry-run", "d", false, "Parse and summarize without emitting CSV")
	return cmd
}

func runActivity(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	ctx := cmd.Context()

	files, err := expandGlobs(args)
	if err != nil {
		return err
	}

	slog.Info("Parsing activity reports",
		"file_count", len(files),
		"dry_run", dryRun)

	parser := statement.NewActivityParser()
	bar := fileProgress(len(files), "Parsing activity reports...")

	var (
		canonical []model.CanonicalTransaction
		warnings  int
	)
	for _, filePath := range files {
		f, err := os.Open(filePath)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("failed to open %s", filePath), err)
		}

		result, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			// Document-level failure aborts the run entirely.
			return common.NewUserError(fmt.Sprintf("failed to parse %s", filePath), err)
		}

		warnings += len(result.Warnings)
		for _, rec := range result.Records {
			c, err := export.Normalize(rec)
			if err != nil {
				// Fatal to the single record only.
				warnings++
				slog.Warn("Skipping record with invalid date",
					"file", filepath.Base(filePath),
					"line", rec.Line,
					"error", err)
				continue
			}
			canonical = append(canonical, c)
		}
		bumpProgress(bar)
	}

	result := dedup.Deduplicate(canonical)

	if !dryRun {
		if err := writeCanonicalCSV(output, result.Records); err != nil {
			return err
		}
	}

	printActivitySummary(len(files), result, warnings, dryRun)
	if warnings > 0 || len(result.FalseDuplicates) > 0 {
		exitCode = exitPartial
	}
	return nil
}

func writeCanonicalCSV(output string, records []model.CanonicalTransaction) error {
	if output == "" {
		return export.WriteCSV(os.Stdout, records)
	}
	f, err := os.Create(output)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("failed to create %s", output), err)
	}
	defer func() { _ = f.Close() }()
	if err := export.WriteCSV(f, records); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}

func printActivitySummary(fileCount int, result *dedup.Result, warnings int, dryRun bool) {
	out := os.Stderr
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.FormatTitle("Activity report summary"))
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d transactions from %d files", len(result.Records), fileCount)))
	if result.Collapsed > 0 {
		fmt.Fprintln(out, cli.FormatSubtle(fmt.Sprintf("  %d true duplicates collapsed", result.Collapsed)))
	}
	for _, collision := range result.FalseDuplicates {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf(
			"identity key %q groups %d differing transactions; key schema needs review",
			collision.Key, len(collision.Records))))
	}
	if warnings > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d records skipped with warnings", warnings)))
	}
	if dryRun {
		fmt.Fprintln(out, cli.FormatSubtle("  dry run - no CSV emitted"))
	}
}
