// Command clustree builds a clustering tree from integer input values and
// outputs its structure.
//
// Usage:
//
//	clustree run [flags]
//
// Values are either read from a file (--input, "-" for stdin) or generated
// pseudo-randomly (--count values in [0, --max), seeded by --seed). The
// resulting tree is printed to the console, or written in Graphviz DOT or
// HTML format. Settings may be loaded from a YAML file (--config); flags
// override file settings.
//
// If building the tree fails, the input sequence is dumped to stderr, to be
// replayed with --input.
package main

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strings"

	"github.com/npillmayer/clustree"
	"github.com/npillmayer/clustree/feed"
	"github.com/npillmayer/clustree/printer"
	"github.com/npillmayer/clustree/report"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clustree",
		Short: "clustree - incremental clustering of integer values",
		Long: `clustree inserts integer values into a clustering tree with bounded
fan-out. Close values are merged into weighted clusters, overflowing
nodes are split, and the tree grows at the root.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clustree v%s\n", version)
		},
	})
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Build a tree and output it",
		RunE:  runTree,
	}
	runCmd.Flags().String("config", "", "YAML configuration file")
	runCmd.Flags().Int("branching", clustree.DefaultBranchingFactor, "Branching factor")
	runCmd.Flags().Int("threshold", clustree.DefaultClosenessThreshold, "Closeness threshold")
	runCmd.Flags().Int("count", 100, "Number of random values")
	runCmd.Flags().Int("max", 1000, "Upper bound (exclusive) of random values")
	runCmd.Flags().Uint64("seed", 1, "Seed for random values")
	runCmd.Flags().String("input", "", "File of whitespace separated integers, - for stdin")
	runCmd.Flags().String("format", "console", "Output format: console, dot, html, none")
	runCmd.Flags().Int("width", 0, "Line width for console output (0 = terminal width)")
	runCmd.Flags().Bool("check", false, "Validate tree invariants after every insertion")
	runCmd.Flags().String("trace", "error", "Trace level: error, info, debug")
	rootCmd.AddCommand(runCmd)
	return rootCmd
}

func runTree(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := loadRunConfig(path)
	if err != nil {
		return err
	}
	cfg.applyFlags(cmd)
	if err := cfg.validate(); err != nil {
		return err
	}
	setupTracing(cfg.Trace)
	tree, err := clustree.New(cfg.treeConfig())
	if err != nil {
		return err
	}
	values, err := inputValues(cfg)
	if err != nil {
		return err
	}
	f, err := feed.New(tree)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := build(cmd.Context(), f, values, cfg.Check); err != nil {
		dumpInputs(cmd.ErrOrStderr(), f, err)
		return err
	}
	st := tree.Stats()
	gtrace.CoreTracer.Infof("tree of height %d with %d clusters, %d splits, %d rebuilds",
		st.Height, st.Clusters, st.Splits, st.Rebuilds)
	return output(cmd, tree, cfg)
}

func setupTracing(level string) {
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(tracing.TraceLevelFromString(level))
	tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace {
		return gtrace.CoreTracer
	}))
}

func inputValues(cfg runConfig) (iter.Seq[int], error) {
	if cfg.Input == "" {
		return feed.RandomValues(cfg.Seed, cfg.Count, cfg.Max), nil
	}
	in := os.Stdin
	if cfg.Input != "-" {
		file, err := os.Open(cfg.Input)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		in = file
	}
	values, err := feed.ReadValues(in)
	if err != nil {
		return nil, err
	}
	return slices.Values(values), nil
}

// build feeds all values into the tree. Internal assertion failures are
// converted into errors.
func build(ctx context.Context, f *feed.Feeder, values iter.Seq[int], check bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", clustree.ErrCorruptTree, r)
		}
	}()
	if ctx == nil {
		ctx = context.Background()
	}
	if check {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		events, serr := f.Subscribe(ctx, 16)
		if serr != nil {
			return serr
		}
		tr := gtrace.CoreTracer
		go func() {
			for e := range events {
				if e.Rebuilt {
					tr.Debugf("tree grew to height %d with value #%d", e.Height, e.Seq)
				}
			}
		}()
		for v := range values {
			if _, err = f.Feed(slices.Values([]int{v})); err != nil {
				return err
			}
			if err = f.Tree().Check(); err != nil {
				return err
			}
		}
		return nil
	}
	_, err = f.Feed(values)
	return err
}

func dumpInputs(w io.Writer, f *feed.Feeder, err error) {
	inputs := f.Inputs()
	fmt.Fprintf(w, "error after %d values, tree height %d: %v\n",
		len(inputs), f.Tree().Height(), err)
	var sb strings.Builder
	for i, v := range inputs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	fmt.Fprintln(w, sb.String())
}

func output(cmd *cobra.Command, tree *clustree.Tree, cfg runConfig) error {
	w := cmd.OutOrStdout()
	switch cfg.Format {
	case "dot":
		clustree.Tree2Dot(tree, w)
	case "html":
		return report.Render(tree, "clustree", w)
	case "console":
		var pcfg *printer.Config
		if cfg.Width > 0 {
			pcfg = &printer.Config{LineWidth: cfg.Width}
		}
		return printer.New(pcfg).Print(tree, w)
	}
	return nil
}
