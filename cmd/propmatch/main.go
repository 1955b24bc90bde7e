// Command propmatch runs one analyst iteration of the propensity matching
// loop: load the subject CSV, estimate scores, match 1:1, print the balance
// diagnostics, stop. Accepting the match or editing the YAML config
// (covariates, caliper, exclusions) and rerunning is the analyst's call —
// there is no automated acceptance criterion.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/propmatch/balance"
	"github.com/katalvlaran/propmatch/internal/tabular"
	"github.com/katalvlaran/propmatch/logit"
	"github.com/katalvlaran/propmatch/match"
)

var (
	// Global flags.
	cfgPath string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "propmatch",
	Short: "propensity-score matching with balance diagnostics",
	Long: `propmatch selects a balanced comparison group from a pool of candidate
subjects: logistic propensity scores, greedy or optimal 1:1 matching, and
the balance numbers (standardized mean difference, variance ratio,
significance tests) an analyst needs to accept or rerun.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("propmatch: init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run one matching iteration from a YAML config",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	runCmd.Flags().StringVarP(&cfgPath, "config", "c", "analysis.yaml", "path to the analysis config")
	rootCmd.AddCommand(runCmd)
}

// runAnalysis drives the pipeline: table → scores → matches → diagnostics.
// Every failure carries the offending subject or covariate in its message;
// the corrective action (excluding a subject, changing covariates) is the
// analyst's, out of band.
func runAnalysis(cmd *cobra.Command) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	algo, err := cfg.algorithm()
	if err != nil {
		return err
	}

	tbl, err := tabular.Load(cfg.Data, cfg.spec())
	if err != nil {
		return err
	}
	logger.Debug("table loaded", zap.String("path", cfg.Data), zap.Int("subjects", tbl.Len()))

	if len(cfg.Exclude) > 0 {
		if tbl, err = tbl.Exclude(cfg.Exclude...); err != nil {
			return err
		}
		logger.Info("exclusions applied",
			zap.Strings("excluded", cfg.Exclude), zap.Int("remaining", tbl.Len()))
	}

	scores, err := logit.Score(tbl, cfg.Covariates...)
	if err != nil {
		return err
	}
	logger.Debug("propensity scores estimated", zap.Int("subjects", len(scores)))

	treatedIDs, controlIDs := tbl.Partition()
	treated := make(map[string]float64, len(treatedIDs))
	controls := make(map[string]float64, len(controlIDs))
	for _, id := range treatedIDs {
		treated[id] = scores[id]
	}
	for _, id := range controlIDs {
		controls[id] = scores[id]
	}

	res, err := match.Match(treated, controls,
		match.DefaultOptions(match.WithAlgorithm(algo), match.WithCaliper(cfg.Caliper)))
	if err != nil {
		return err
	}
	logger.Info("matching complete",
		zap.String("algorithm", res.Algorithm.String()),
		zap.Int("pairs", len(res.Pairs)),
		zap.Int("unmatched_treated", len(res.UnmatchedTreated)),
		zap.Float64("total_distance", res.TotalDistance))

	rep, err := balance.Diagnose(tbl, scores, res, cfg.Covariates, cfg.Categorical)
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), res, rep)

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
