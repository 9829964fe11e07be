// Package report renders sweep results into the tabular artifacts an analyst
// reads: a Markdown document (optionally rendered to HTML) and an Excel
// workbook with the IV ranking and per-variable level statistics.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"scorecard/internal/pipeline"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
)

// WriteMarkdown renders the full analysis report for one sweep.
func WriteMarkdown(w io.Writer, result *pipeline.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Scorecard exploration: %s\n\n", result.Dataset)
	fmt.Fprintf(&b, "- Run: `%s`\n", result.RunID)
	fmt.Fprintf(&b, "- Target: `%s`\n", result.Target)
	fmt.Fprintf(&b, "- Started: %s\n\n", result.StartedAt.Format("2006-01-02 15:04:05"))

	writeSummarySection(&b, result)
	writeRankingSection(&b, result)
	writeLevelSections(&b, result)
	writeDiagnosticSections(&b, result)

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderHTML converts a Markdown report into standalone HTML.
func RenderHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	return markdown.ToHTML(md, p, nil)
}

func writeSummarySection(b *strings.Builder, result *pipeline.Result) {
	if len(result.Summaries) == 0 {
		return
	}

	b.WriteString("## Column summary\n\n")
	b.WriteString("| Column | Role | Missing | Cardinality | Mean | Median | Min | Max | Skewness |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for _, s := range result.Summaries {
		fmt.Fprintf(b, "| %s | %s | %.1f%% | %d | %.3f | %.3f | %.3f | %.3f | %.2f |\n",
			s.Name, s.Role, s.MissingRate*100, s.Cardinality, s.Mean, s.Median, s.Min, s.Max, s.Skewness)
	}
	b.WriteString("\n")
}

func writeRankingSection(b *strings.Builder, result *pipeline.Result) {
	b.WriteString("## Information Value ranking\n\n")
	b.WriteString("| Variable | IV | Efficiency | Levels | Signal |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, r := range result.Reports {
		signal := "ok"
		if r.LowSignal(result.IVThreshold) {
			signal = fmt.Sprintf("below %.2f", result.IVThreshold)
		}
		fmt.Fprintf(b, "| %s | %.4f | %.4f | %d | %s |\n",
			r.Variable, r.IV, r.Efficiency, len(r.Levels), signal)
	}
	b.WriteString("\n")
}

func writeLevelSections(b *strings.Builder, result *pipeline.Result) {
	for _, r := range result.Reports {
		fmt.Fprintf(b, "## %s (IV %.4f)\n\n", r.Variable, r.IV)
		b.WriteString("| Level | Good | Bad | Total | %Good | %Bad | WOE | IV |\n")
		b.WriteString("|---|---|---|---|---|---|---|---|\n")
		for _, lvl := range r.Levels {
			label := lvl.Label
			if lvl.Smoothed {
				label += " *"
			}
			fmt.Fprintf(b, "| %s | %d | %d | %d | %.3f | %.3f | %.3f | %.4f |\n",
				label, lvl.Good, lvl.Bad, lvl.Total, lvl.PctGood, lvl.PctBad, lvl.WOE, lvl.IV)
		}
		b.WriteString("\n`*` level required zero-count smoothing.\n\n")
	}
}

func writeDiagnosticSections(b *strings.Builder, result *pipeline.Result) {
	if len(result.Diagnostics) == 0 {
		return
	}

	names := make([]string, 0, len(result.Diagnostics))
	for name := range result.Diagnostics {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("## Rank diagnostics\n\n")
	for _, name := range names {
		d := result.Diagnostics[name]
		fmt.Fprintf(b, "### %s (separation %.1f)\n\n", name, d.Separation)
		b.WriteString("| Bucket | Avg value | Bad rate | Count |\n")
		b.WriteString("|---|---|---|---|\n")
		for i, bucket := range d.Buckets {
			fmt.Fprintf(b, "| %d | %.3f | %.3f | %d |\n",
				i+1, bucket.AvgValue, bucket.BadRate, bucket.Count)
		}
		b.WriteString("\n")
	}
}
