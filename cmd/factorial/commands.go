package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/govalues/factorial"
)

// app is the state shared by all commands.
type app struct {
	configPath string
	logLevel   string
	precision  int
	noColor    bool

	cfg Config
	log *slog.Logger
	out *printer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "factorial",
		Short: "Evaluate products of factorials, permutations, and combinations",
		Long: `factorial evaluates expressions such as 5!/5! * 7!/6! * C(5,2)/P(9,2)
by accumulating prime exponents instead of multiplying large integers.
The result is rounded only once.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.IntVar(&a.precision, "precision", 0, "floating-point precision: 32 or 64")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(a.newEvalCmd(), a.newBatchCmd(), a.newDemoCmd())
	return root
}

// setup loads the config and applies command-line overrides.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("precision") {
		cfg.Precision = a.precision
	}
	if flags.Changed("no-color") {
		cfg.NoColor = a.noColor
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	level, _ := cfg.level()
	a.cfg = cfg
	a.log = newLogger(cmd.ErrOrStderr(), level, cfg.NoColor)
	a.out = newPrinter(cmd.OutOrStdout(), cfg.NoColor)
	a.log.Debug("Configuration loaded", "precision", cfg.Precision, "log_level", cfg.LogLevel)
	return nil
}

func (a *app) newEvalCmd() *cobra.Command {
	var showFactors, showDecimal bool
	cmd := &cobra.Command{
		Use:   "eval EXPR",
		Short: "Evaluate an expression",
		Long: `Evaluate an expression of the form

	operand { ('*' | '/') operand }

where an operand is n! (factorial), P(n,k) (permutations),
C(n,k) (combinations) or a positive integer n.`,
		Example: `  factorial eval "5!/5! * 7!/6! * C(5,2)/P(9,2)"
  factorial eval --factors "C(1000,500) / C(1000,499)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")
			start := time.Now()
			r, err := evaluateExpr(expr, a.cfg.Precision)
			if err != nil {
				a.log.Error("Evaluation failed", "expr", expr, "error", err)
				return err
			}
			a.log.Debug("Evaluated", "expr", expr, "elapsed", time.Since(start))
			a.out.field("value", r)
			if showFactors {
				a.out.field("factors", r.Factors)
			}
			if showDecimal {
				if r.Decimal == "" {
					a.log.Warn("Value does not fit into a decimal", "expr", expr)
				} else {
					a.out.field("decimal", r.Decimal)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showFactors, "factors", false, "print the prime factorization")
	cmd.Flags().BoolVar(&showDecimal, "decimal", false, "print the value as a 19-digit decimal")
	return cmd
}

func (a *app) newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: "Evaluate scenarios from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBatch(args[0])
			if err != nil {
				return err
			}
			a.log.Info("Running scenarios", "file", args[0], "count", len(b.Scenarios))
			failed := 0
			for _, s := range b.Scenarios {
				value, err := s.run(a.cfg.Precision)
				if err != nil {
					failed++
					a.log.Debug("Scenario failed", "name", s.Name, "error", err)
				}
				a.out.scenario(s.Name, value, err)
			}
			if failed > 0 {
				return fmt.Errorf("%v of %v scenarios failed", failed, len(b.Scenarios))
			}
			a.log.Info("All scenarios passed", "count", len(b.Scenarios))
			return nil
		},
	}
}

func (a *app) newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Evaluate 5!/5! * 7!/6! * C(5,2)/P(9,2)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var s string
			if a.cfg.Precision == 32 {
				s = formatFloat(float64(demo[float32]()), 32)
			} else {
				s = formatFloat(demo[float64](), 64)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func demo[F factorial.Float]() F {
	p := factorial.New[F]()
	p.MustMulFact(5).MustDivFact(5)
	p.MustMulFact(7).MustDivFact(6)
	p.MustMulComb(5, 2).MustDivPerm(9, 2)
	return p.MustValue()
}
