package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lhaig/calcc/internal/config"
	"github.com/lhaig/calcc/internal/diagnostic"
)

// errFailed is returned after diagnostics have already been printed.
var errFailed = errors.New("compilation failed")

// app carries state shared by every subcommand once the root has parsed
// its persistent flags.
type app struct {
	cfgFile string
	verbose bool
	output  string

	cfg    *config.Config
	log    *slog.Logger
	styles styles
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "calcc",
		Short: "calcc - a compiler for a tiny assignment-and-print language",
		Long: `calcc tokenizes, parses and evaluates programs made of assignments
and print statements, and compiles them to stack bytecode or an
x86-64 style listing.

Language:
  a = 10
  b = a * (2 + 3)
  print b

Files are read from a path, or from standard input when the path is "-".`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./calcc.toml, ./calcc.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "output format: text or yaml (default from config)")

	root.AddCommand(
		a.tokensCmd(),
		a.astCmd(),
		a.evalCmd(),
		a.buildCmd(),
		a.runCmd(),
		a.checkCmd(),
		a.lintCmd(),
		a.fmtCmd(),
		a.targetsCmd(),
	)
	return root
}

// setup loads configuration and creates the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.output != "" {
		cfg.Output = a.output
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	level := cfg.Level()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.styles = newStyles(cfg.Color)

	if cfg.Path != "" {
		a.log.Debug("loaded config", "path", cfg.Path)
	}
	a.log.Debug("settings", "target", cfg.Target, "division", cfg.Division, "output", cfg.Output)
	return nil
}

// readSource reads a program from path, or standard input for "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// displayName is the file name used in diagnostics.
func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

// report prints diagnostics to stderr and returns errFailed if any of
// them is an error.
func (a *app) report(cmd *cobra.Command, diag *diagnostic.Diagnostics, path string) error {
	if diag.Count() > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), a.styles.diagnostics(diag, displayName(path)))
	}
	if diag.HasErrors() {
		return errFailed
	}
	return nil
}

// reportErr prints a single pipeline error as a diagnostic.
func (a *app) reportErr(cmd *cobra.Command, err error, path string) error {
	diag := diagnostic.New()
	diag.Add(diagnostic.FromError(err))
	return a.report(cmd, diag, path)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
