// Command hexagon is the CLI entry point (spec.md §6): it reads a
// source file (and an optional config file), parses, compiles,
// interprets, and prints the final stack and buffer. Built on
// github.com/urfave/cli/v2 the way AKJUS-bsc-erigon's own command tree
// is, with multi-file batch runs fanned out through
// golang.org/x/sync/errgroup (spec.md §5 permits host-level parallelism
// across disjoint State values).
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hexcompiler/hexagon/internal/ast"
	"github.com/hexcompiler/hexagon/internal/compiler"
	"github.com/hexcompiler/hexagon/internal/config"
	"github.com/hexcompiler/hexagon/internal/interp"
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/parser"
	"github.com/hexcompiler/hexagon/internal/registry"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	logger := newLogger()
	defer logger.Sync()

	app := &cli.App{
		Name:      "hexagon",
		Usage:     "compile and interpret a Hex Casting pattern program",
		ArgsUsage: "<source-path> [<config-path>] [<source-path>...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file shared by every source path"},
			&cli.BoolFlag{Name: "salvage", Usage: "on a mishap, print the salvaged stack instead of failing"},
		},
		Action: func(c *cli.Context) error {
			return runSources(c, logger)
		},
	}

	if err := app.Run(args); err != nil {
		logger.Errorw("run failed", "error", err)
		return 1
	}
	return 0
}

func newLogger() *zap.SugaredLogger {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	return l.Sugar()
}

func runSources(c *cli.Context, logger *zap.SugaredLogger) error {
	sources := c.Args().Slice()
	if len(sources) == 0 {
		return cli.Exit("expected at least one <source-path>", 2)
	}

	configPath := c.String("config")
	// Back-compat with spec.md §6's literal `<source-path>
	// [<config-path>]` shape: a lone second positional argument is
	// treated as the config path when --config wasn't given.
	if configPath == "" && len(sources) == 2 {
		configPath = sources[1]
		sources = sources[:1]
	}

	salvage := c.Bool("salvage")

	cfg, err := loadConfig(configPath, logger)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	reg, err := registry.New(toSignatureStrings(cfg))
	if err != nil {
		return cli.Exit(errors.Wrap(err, "building registry").Error(), 1)
	}

	g, ctx := errgroup.WithContext(c.Context)
	results := make([]error, len(sources))
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = runOne(src, cfg, reg, salvage, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	failed := false
	for _, err := range results {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
	}
	if failed {
		return cli.Exit("", 1)
	}
	return nil
}

func loadConfig(path string, logger *zap.SugaredLogger) (*config.Config, error) {
	if path == "" {
		return &config.Config{
			GreatSpells: map[string]iotamodel.Signature{},
			Libraries:   map[interp.LibraryKey]interp.Library{},
			Entities:    map[string]*interp.Entity{},
		}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	return config.Load(data, logger, literalFromString)
}

// literalFromString resolves an iota-literal string (used inside
// config `libraries`/`entities` tables) via the same grammar
// internal/parser's source-file parser uses, per spec.md §6's "used in
// both source files and config iota-strings".
func literalFromString(s string) (iotamodel.Iota, error) {
	emptyReg, err := registry.New(nil)
	if err != nil {
		return nil, err
	}
	file, _, err := parser.Parse("<config-literal>", s, emptyReg, nil)
	if err != nil {
		return nil, err
	}
	if len(file.Nodes) != 1 {
		return nil, errors.Errorf("expected exactly one iota literal, got %d nodes", len(file.Nodes))
	}
	act, ok := file.Nodes[0].(ast.Action)
	if !ok || act.Value == nil || act.Value.Iota == nil {
		return nil, errors.New("expected an iota-valued literal")
	}
	return act.Value.Iota, nil
}

func toSignatureStrings(cfg *config.Config) map[string]iotamodel.Signature {
	return cfg.GreatSpells
}

func runOne(path string, cfg *config.Config, reg *registry.Registry, salvage bool, logger *zap.SugaredLogger) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	entityNames := map[string]string{}
	file, macros, perr := parser.Parse(path, string(src), reg, entityNames)
	if perr != nil {
		return perr
	}

	program, cerr := compiler.Compile(file, nil, reg, macros)
	if cerr != nil {
		return fmt.Errorf("%s: %s", path, cerr.Error())
	}

	st := interp.NewState(nil, cfg.Entities, cfg.Libraries)
	_, ierr := interp.Interpret(program, st, reg, interp.NewDispatch())
	if ierr != nil {
		if salvage {
			if salvaged, ok := mishap.Salvage(ierr.Mishap, st.Stack); ok {
				logger.Warnw("mishap salvaged", "path", path, "mishap", ierr.Error())
				printResult(path, salvaged, st)
				return nil
			}
		}
		return fmt.Errorf("%s: %s", path, ierr.Error())
	}

	printResult(path, st.Stack, st)
	return nil
}

func printResult(path string, stack []iotamodel.Iota, st *interp.State) {
	fmt.Printf("%s: stack =", path)
	for _, i := range stack {
		fmt.Printf(" %s", i.Display())
	}
	fmt.Println()
	if st.Buffer != nil {
		fmt.Printf("%s: buffer =", path)
		for _, b := range *st.Buffer {
			fmt.Printf(" %s", b.Iota.Display())
		}
		fmt.Println()
	}
	for _, line := range st.PrintLog {
		fmt.Println(line)
	}
}
