package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marek-kar/riskdash/pkg/analysis"
	"github.com/marek-kar/riskdash/pkg/cache"
	"github.com/marek-kar/riskdash/pkg/config"
	"github.com/marek-kar/riskdash/pkg/dataset"
	"github.com/marek-kar/riskdash/pkg/logging"
	"github.com/marek-kar/riskdash/pkg/metrics"
	"github.com/marek-kar/riskdash/pkg/render"
	"github.com/marek-kar/riskdash/pkg/scoring"
	"github.com/marek-kar/riskdash/pkg/server"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app holds what every subcommand needs once the global flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "riskdash",
		Short:        "Score workplace risk assessments and build summary reports",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (YAML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(newScoreCmd())
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newConvertCmd())
	root.AddCommand(newServeCmd(a))
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) engine(limit int) *analysis.Engine {
	opts := analysis.Options{
		RankingLimit: a.cfg.Report.RankingLimit,
		Recompute:    a.cfg.Report.Recompute,
	}
	if limit > 0 {
		opts.RankingLimit = limit
	}
	return analysis.DefaultEngine(opts, a.log.Named("analysis"))
}

func newScoreCmd() *cobra.Command {
	var severity, probability, exposure float64

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the risk score and level for one set of factors",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scoring.FactorFromFloat(scoring.FactorSeverity, severity)
			if err != nil {
				return err
			}
			p, err := scoring.FactorFromFloat(scoring.FactorProbability, probability)
			if err != nil {
				return err
			}
			e, err := scoring.FactorFromFloat(scoring.FactorExposure, exposure)
			if err != nil {
				return err
			}

			score, err := scoring.CalculateRiskScore(s, p, e)
			if err != nil {
				return err
			}
			level, err := scoring.LevelForScore(score)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Risk score: %d\n", score)
			fmt.Fprintf(out, "Risk level: %s (%s)\n", level, scoring.GetRiskLevelColor(level))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&severity, "severity", "s", 0, "severity (1-10)")
	cmd.Flags().Float64VarP(&probability, "probability", "p", 0, "probability (1-6)")
	cmd.Flags().Float64VarP(&exposure, "exposure", "e", 0, "exposure (1-6)")
	_ = cmd.MarkFlagRequired("severity")
	_ = cmd.MarkFlagRequired("probability")
	_ = cmd.MarkFlagRequired("exposure")
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	var (
		input  string
		format string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the summary report for a CSV, XLSX or JSON dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			records, err := dataset.Load(input, dataset.DefaultOptions())
			if err != nil {
				return err
			}

			res := a.engine(limit).BuildReport(records)
			if !res.OK() {
				return res.Err
			}
			return render.New(f).Render(cmd.OutOrStdout(), res.Bundle)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "dataset file (.csv, .xlsx or .json)")
	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatTable), "output format: table, json or yaml")
	cmd.Flags().IntVar(&limit, "limit", 0, "ranking length (default from config)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newConvertCmd() *cobra.Command {
	var (
		input, output string
		recompute     bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a dataset between CSV, XLSX and JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := dataset.DefaultOptions()
			opts.Recompute = recompute

			records, err := dataset.Load(input, opts)
			if err != nil {
				return err
			}
			if err := dataset.Save(output, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d records to %s\n", len(records), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "source file")
	cmd.Flags().StringVarP(&output, "out", "o", "", "destination file; the extension selects the format")
	cmd.Flags().BoolVar(&recompute, "recompute", false, "derive scores and levels from the factors")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			c, err := cache.New(a.cfg.Cache, a.log)
			if err != nil {
				return err
			}
			defer c.Close()

			srv := server.New(a.cfg, server.Deps{
				Engine:  a.engine(0),
				Cache:   c,
				Metrics: metrics.New(),
				Logger:  a.log.Named("http"),
			})
			a.log.Info("starting riskdash",
				logging.String("addr", a.cfg.Server.Addr),
				logging.String("cache", a.cfg.Cache.Backend),
			)
			return srv.Run(ctx)
		},
	}
}
