package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pyihe/randgen/alias"
	"github.com/pyihe/randgen/internal/config"
	"github.com/pyihe/randgen/random"
	"github.com/pyihe/randgen/tally"
	"github.com/pyihe/randgen/weighted"
)

const (
	defaultDraws = 100

	exitOK    = 0
	exitError = 1
	exitUsage = 2

	methodWeighted = "weighted"
	methodAlias    = "alias"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("randgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "YAML distribution table (default: built-in table)")
		seed       = fs.String("seed", "", "deterministic seed string (default: process-wide source)")
		method     = fs.String("method", methodWeighted, "sampling method: weighted (cumulative scan) or alias")
		precision  = fs.Int("precision", tally.FullPrecision, "decimal places of the probability estimates (-1: full precision)")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: randgen [flags] [N]\n\nDraw N values (default %d) and print counts and probability estimates.\n\n", defaultDraws)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	logger := newLogger(stderr, *verbose)
	defer logger.Sync()

	if *method != methodWeighted && *method != methodAlias {
		logger.Error("unknown sampling method", zap.String("method", *method))
		return exitUsage
	}
	if *precision < tally.FullPrecision {
		logger.Error("invalid precision", zap.Int("precision", *precision))
		return exitUsage
	}

	n, err := parseDraws(fs.Args())
	if err != nil {
		logger.Error("invalid number of draws", zap.Strings("args", fs.Args()), zap.Error(err))
		return exitUsage
	}

	dist, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load distribution", zap.String("path", *configPath), zap.Error(err))
		return exitError
	}
	outcomes, probabilities := dist.Split()

	src := random.Default()
	if *seed != "" {
		src = random.NewSeeded(random.SeedFromString(*seed))
	}
	sampler, err := weighted.New(outcomes, probabilities,
		weighted.WithSource(src),
		weighted.WithTolerance(dist.Tolerance),
	)
	if err != nil {
		logger.Error("build sampler", zap.Error(err))
		return exitError
	}
	logger.Debug("sampler ready",
		zap.Ints("outcomes", outcomes),
		zap.Float64s("probabilities", probabilities),
		zap.Float64s("cumulative", sampler.Cumulative()),
		zap.Int("draws", n),
		zap.String("seed", *seed),
		zap.String("method", *method),
	)

	var drawer tally.Drawer[int] = sampler
	if *method == methodAlias {
		drawer, err = newAliasDrawer(outcomes, probabilities, src)
		if err != nil {
			logger.Error("build alias sampler", zap.Error(err))
			return exitError
		}
	}

	report, err := tally.Run(drawer, outcomes, n)
	if err != nil {
		logger.Error("draw", zap.Error(err))
		return exitError
	}
	report.Precision = *precision
	if _, err = report.WriteTo(stdout); err != nil {
		logger.Error("write report", zap.Error(err))
		return exitError
	}
	return exitOK
}

// outcome 以结果值作为alias事件ID
type outcome struct {
	value int
	prob  float64
}

func (o *outcome) Id() int {
	return o.value
}

func (o *outcome) Prob() float64 {
	return o.prob
}

// aliasDrawer 将alias.Sampler适配为tally.Drawer
type aliasDrawer struct {
	s alias.Sampler
}

func newAliasDrawer(values []int, probabilities []float64, src random.Source) (*aliasDrawer, error) {
	events := make([]alias.Event, len(values))
	for i, v := range values {
		events[i] = &outcome{value: v, prob: probabilities[i]}
	}
	s := alias.New(alias.WithSource(src))
	if err := s.Add(events...); err != nil {
		return nil, err
	}
	return &aliasDrawer{s: s}, nil
}

func (d *aliasDrawer) Next() int {
	ok, id := d.s.Pick()
	if !ok {
		panic("alias sampler has no event to pick")
	}
	return id
}

func parseDraws(args []string) (int, error) {
	switch len(args) {
	case 0:
		return defaultDraws, nil
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, fmt.Errorf("negative number of draws %d", n)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected at most one argument, got %d", len(args))
	}
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}
