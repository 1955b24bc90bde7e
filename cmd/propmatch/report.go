package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/katalvlaran/propmatch/balance"
	"github.com/katalvlaran/propmatch/match"
)

// printReport writes the plain-text iteration summary: matched pairs, the
// diagnostic table, the advisory flags, and the worst pair for outlier
// review. Anything fancier (plots, formatted tables, interactive reports)
// belongs to downstream consumers of the result structures.
func printReport(w io.Writer, res match.Result, rep balance.Report) {
	fmt.Fprintf(w, "algorithm: %s\n", res.Algorithm)
	fmt.Fprintf(w, "pairs: %d, total distance: %.4f\n\n", len(res.Pairs), res.TotalDistance)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TREATED\tCONTROL\tDISTANCE")
	for _, p := range res.Pairs {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\n", p.TreatedID, p.ControlID, p.Distance)
	}
	tw.Flush()

	if len(res.UnmatchedTreated) > 0 {
		fmt.Fprintf(w, "\nunmatched treated (caliper): %v\n", res.UnmatchedTreated)
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIABLE\tTYPE\tMEAN T\tMEAN C\tSMD\tVAR RATIO\tP\tTEST")
	for _, row := range rep.Rows() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%.4f\t%s\n",
			row.Variable, row.Type,
			cell(row.TreatedMean), cell(row.ControlMean),
			cell(row.SMD), cell(row.VarianceRatio),
			row.PValue, row.Test)
	}
	tw.Flush()

	if flags := balance.Assess(rep); len(flags) > 0 {
		fmt.Fprintln(w)
		for _, f := range flags {
			fmt.Fprintf(w, "caution: %s: %s (%.4f)\n", f.Variable, f.Reason, f.Value)
		}
	}

	if worst, ok := res.MaxPair(); ok {
		fmt.Fprintf(w, "\nlargest-distance pair: %s ↔ %s (%.4f)\n",
			worst.TreatedID, worst.ControlID, worst.Distance)
	}
}

// cell renders a table value, leaving a dash where the statistic does not
// apply (categorical rows).
func cell(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}

	return fmt.Sprintf("%.4f", v)
}
