package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"scorecard/adapters/store"
	readertabular "scorecard/adapters/tabular"
	"scorecard/domain/tabular"
	"scorecard/internal/config"
	"scorecard/internal/metrics"
	"scorecard/internal/pipeline"
	"scorecard/internal/report"
	"scorecard/internal/summary"
	"scorecard/internal/testkit"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scorecard",
		Short: "Credit scorecard exploration: treatment, binning, WOE/IV scoring and diagnostics",
	}

	rootCmd.AddCommand(
		newSummarizeCmd(),
		newSweepCmd(),
		newMetricsCmd(),
		newRunsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSummarizeCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Print per-column descriptive statistics for a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if target != "" {
				cfg.Data.Target = target
			}

			tbl, err := readertabular.NewDataReader(args[0], cfg.Data.Target).Read()
			if err != nil {
				return err
			}

			summaries, err := summary.Summarize(tbl)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COLUMN\tROLE\tMISSING\tCARDINALITY\tMEAN\tMEDIAN\tMIN\tMAX\tSKEW")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%.1f%%\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.2f\n",
					s.Name, s.Role, s.MissingRate*100, s.Cardinality, s.Mean, s.Median, s.Min, s.Max, s.Skewness)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "binary target field name (overrides SCORECARD_TARGET)")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var target string
	var bins int
	var save bool
	var demo bool

	cmd := &cobra.Command{
		Use:   "sweep [file]",
		Short: "Run the full treat/bin/score sweep and write the analysis report",
		Long: `Run the univariate sweep: cap/floor/impute each continuous predictor, cut it
into quantile bins, score every predictor by Weight of Evidence and
Information Value, and produce rank diagnostics.

With --demo the sweep runs on a seeded synthetic portfolio instead of a file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if target != "" {
				cfg.Data.Target = target
			}
			if bins > 0 {
				cfg.Scoring.Bins = bins
			}

			var tbl *tabular.Table
			switch {
			case demo:
				tbl, err = testkit.NewLoanGenerator(testkit.DefaultLoanConfig()).Generate()
			case len(args) == 1:
				tbl, err = readertabular.NewDataReader(args[0], cfg.Data.Target).Read()
			default:
				return fmt.Errorf("either a dataset file or --demo is required")
			}
			if err != nil {
				return err
			}

			result, err := pipeline.Sweep(tbl, cfg)
			if err != nil {
				return err
			}

			if err := writeReports(cfg, result); err != nil {
				return err
			}
			if save {
				if err := persist(cmd.Context(), cfg, result); err != nil {
					return err
				}
			}

			fmt.Printf("run %s: %d variables scored, reports in %s\n",
				result.RunID, len(result.Reports), cfg.Report.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "binary target field name (overrides SCORECARD_TARGET)")
	cmd.Flags().IntVar(&bins, "bins", 0, "quantile bin count for continuous predictors")
	cmd.Flags().BoolVar(&save, "save", false, "persist the run to the configured store")
	cmd.Flags().BoolVar(&demo, "demo", false, "sweep a seeded synthetic portfolio")
	return cmd
}

func newMetricsCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "metrics [file] [score-column]",
		Short: "Compute AUROC, KS and Gini for a model score column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if target != "" {
				cfg.Data.Target = target
			}

			tbl, err := readertabular.NewDataReader(args[0], cfg.Data.Target).Read()
			if err != nil {
				return err
			}
			scores, err := tbl.Numeric(args[1])
			if err != nil {
				return fmt.Errorf("score column %s: %w", args[1], err)
			}
			tgt, err := tbl.Target(cfg.Data.Target)
			if err != nil {
				return err
			}

			d, err := metrics.Evaluate(scores, tgt)
			if err != nil {
				return err
			}
			fmt.Printf("AUROC=%.4f KS=%.4f Gini=%.4f\n", d.AUROC, d.KS, d.Gini)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "binary target field name (overrides SCORECARD_TARGET)")
	return cmd
}

func newRunsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List persisted analysis runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			s, err := store.Open(cfg.Store.Driver, cfg.Store.DSN)
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RUN\tDATASET\tTARGET\tSTARTED")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					r.ID, r.Dataset, r.Target, r.StartedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	return cmd
}

// writeReports renders the Markdown, HTML and workbook artifacts.
func writeReports(cfg *config.Config, result *pipeline.Result) error {
	if err := os.MkdirAll(cfg.Report.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}

	base := strings.TrimSuffix(result.Dataset, filepath.Ext(result.Dataset))
	mdPath := filepath.Join(cfg.Report.OutputDir, base+".md")

	var md strings.Builder
	if err := report.WriteMarkdown(&md, result); err != nil {
		return err
	}
	if err := os.WriteFile(mdPath, []byte(md.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}

	htmlPath := filepath.Join(cfg.Report.OutputDir, base+".html")
	if err := os.WriteFile(htmlPath, report.RenderHTML([]byte(md.String())), 0o644); err != nil {
		return fmt.Errorf("failed to write html report: %w", err)
	}

	return report.WriteWorkbook(filepath.Join(cfg.Report.OutputDir, base+".xlsx"), result)
}

// persist saves run metadata and reports to the configured store.
func persist(ctx context.Context, cfg *config.Config, result *pipeline.Result) error {
	s, err := store.Open(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return err
	}
	defer s.Close()

	run := store.Run{
		ID:          result.RunID,
		Dataset:     result.Dataset,
		Target:      result.Target,
		IVThreshold: result.IVThreshold,
		StartedAt:   result.StartedAt,
	}
	if err := s.SaveRun(ctx, run); err != nil {
		return err
	}
	return s.SaveReports(ctx, result.RunID, result.Reports)
}
