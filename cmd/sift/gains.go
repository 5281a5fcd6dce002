package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/statement-sifter/internal/cli"
	"github.com/Veraticus/statement-sifter/internal/common"
	"github.com/Veraticus/statement-sifter/internal/model"
	"github.com/Veraticus/statement-sifter/internal/statement"
)

func gainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gains [files...]",
		Short: "Parse realized-gains reports into per-security lot sets",
		Long: `Parse one or more realized-gains/lot-detail report text exports, reconcile
each lot group to its security by conserved share quantity, and print the
per-security lot sets plus any unmatched groups.

Examples:
  # Parse a single report
  sift gains ~/Downloads/realized_gains.txt

  # Loosen the reconciliation tolerance to half a share
  sift gains ~/Downloads/realized_gains.txt --tolerance 0.5`,
		Args: cobra.MinimumNArgs(1),
		RunE: runGains,
	}

	cmd.Flags().Float64("tolerance", 0, "max share-quantity difference for a lot group to match a security (default from config)")
	_ = viper.BindPFlag("reconcile.tolerance", cmd.Flags().Lookup("tolerance"))
	return cmd
}

func runGains(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	tolerance := statement.DefaultTolerance
	if v := viper.GetFloat64("reconcile.tolerance"); v > 0 {
		tolerance = decimal.NewFromFloat(v)
	}

	files, err := expandGlobs(args)
	if err != nil {
		return err
	}

	slog.Info("Parsing realized-gains reports",
		"file_count", len(files),
		"tolerance", tolerance.String())

	parser := statement.NewGainsParser()
	bar := fileProgress(len(files), "Parsing realized-gains reports...")

	anyUnmatched := false
	for _, filePath := range files {
		f, err := os.Open(filePath)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("failed to open %s", filePath), err)
		}

		scan, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			return common.NewUserError(fmt.Sprintf("failed to parse %s", filePath), err)
		}

		result := statement.Reconcile(scan.Groups, scan.Tracker.Securities, tolerance)
		printGainsReport(filePath, scan, result)
		if len(result.Unmatched) > 0 {
			anyUnmatched = true
		}
		bumpProgress(bar)
	}

	if anyUnmatched {
		exitCode = exitPartial
	}
	return nil
}

func printGainsReport(filePath string, scan *statement.ScanResult, result *statement.ReconcileResult) {
	fmt.Println()
	fmt.Println(cli.FormatTitle("Realized gains: " + filePath))

	keys := make([]model.SecurityKey, 0, len(result.Matched))
	for key := range result.Matched {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].AccountNumber != keys[j].AccountNumber {
			return keys[i].AccountNumber < keys[j].AccountNumber
		}
		return keys[i].Symbol < keys[j].Symbol
	})

	for _, key := range keys {
		lots := result.Matched[key]
		total := decimal.Zero
		for _, lot := range lots {
			total = total.Add(lot.Quantity)
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s / %s: %d lots, %s shares",
			key.AccountNumber, key.Symbol, len(lots), total.String())))
		for _, lot := range lots {
			sold := lot.DateSold
			if sold == "" {
				sold = "open"
			}
			fmt.Println(cli.FormatSubtle(fmt.Sprintf("    %s acquired %s sold %s qty %s gain %s",
				lot.Event, lot.DateAcquired, sold, lot.Quantity.String(), lot.TotalGain)))
		}
	}

	fmt.Println(cli.FormatSubtle(fmt.Sprintf("  %d of %d lot groups matched",
		len(scan.Groups)-len(result.Unmatched), len(scan.Groups))))
	for _, u := range result.Unmatched {
		detail := fmt.Sprintf("line %d: group of %s shares has no security within tolerance",
			u.Line, u.Quantity.String())
		if u.HasBest {
			detail += fmt.Sprintf(" (best diff %s)", u.BestDiff.String())
		}
		fmt.Println(cli.FormatWarning(detail))
	}
}
