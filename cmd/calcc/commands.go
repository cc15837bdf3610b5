package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lhaig/calcc/internal/backend"
	"github.com/lhaig/calcc/internal/compiler"
	"github.com/lhaig/calcc/internal/eval"
	"github.com/lhaig/calcc/internal/formatter"
)

// tokenView is the YAML shape of a token.
type tokenView struct {
	Type    string `yaml:"type"`
	Literal string `yaml:"literal"`
	Offset  int    `yaml:"offset"`
	Line    int    `yaml:"line"`
	Column  int    `yaml:"column"`
}

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			resp := compiler.Handle(source, compiler.CmdTokens)
			if resp.Kind == compiler.KindError {
				return a.reportErr(cmd, resp.Err, args[0])
			}

			if a.cfg.Output == "yaml" {
				views := make([]tokenView, len(resp.Tokens))
				for i, tok := range resp.Tokens {
					views[i] = tokenView{
						Type:    tok.Type.String(),
						Literal: tok.Literal,
						Offset:  tok.Offset,
						Line:    tok.Line,
						Column:  tok.Column,
					}
				}
				return writeYAML(cmd.OutOrStdout(), views)
			}
			for _, tok := range resp.Tokens {
				fmt.Fprintf(cmd.OutOrStdout(), "%d:%d\t%s\n", tok.Line, tok.Column, tok)
			}
			return nil
		},
	}
}

func (a *app) astCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of a program or expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			resp := compiler.Handle(source, compiler.CmdAST)
			if resp.Kind == compiler.KindError {
				return a.reportErr(cmd, resp.Err, args[0])
			}
			if a.cfg.Output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), resp.Tree)
			return nil
		},
	}
}

func (a *app) evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <file>",
		Short: "Interpret a program or expression",
		Long: `Interprets the input directly. A program prints one "name = value"
line per print statement; a bare expression prints its value.

Division follows the configured division mode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			resp := compiler.HandleWith(source, compiler.CmdEvaluate, eval.Options{Division: a.cfg.DivisionMode()})
			if resp.Kind == compiler.KindError {
				return a.reportErr(cmd, resp.Err, args[0])
			}
			if a.cfg.Output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), resp)
			}
			if resp.Expression {
				fmt.Fprintln(cmd.OutOrStdout(), resp.Value.String())
				return nil
			}
			for _, p := range resp.Prints {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", p.Name, p.Value)
			}
			return nil
		},
	}
}

func (a *app) compileOptions(target string) compiler.Options {
	if target == "" {
		target = a.cfg.Target
	}
	return compiler.Options{Target: target, Division: a.cfg.DivisionMode()}
}

func (a *app) buildCmd() *cobra.Command {
	var target, out string

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Compile to stack bytecode or an assembly listing",
		Long: `Compiles a program for a target and writes the result next to the
input (prog.calc -> prog.bc or prog.s) or to --out. Use --out - to
print to standard output.

With --output yaml the artifact, including its variable table, is
written as a YAML document.

Examples:
  calcc build prog.calc
  calcc build --target asm --out - prog.calc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			opts := a.compileOptions(target)
			if out == "" {
				out = compiler.OutputPath(args[0], opts.Target)
				if a.cfg.Output == "yaml" {
					out += ".yaml"
				}
			}

			if a.cfg.Output == "text" && out != "-" {
				res, err := compiler.EmitToTarget(source, out, opts)
				if res.Diagnostics.Count() > 0 {
					if reportErr := a.report(cmd, res.Diagnostics, args[0]); reportErr != nil {
						return reportErr
					}
				}
				if err != nil {
					return err
				}
				a.log.Info("wrote artifact", "path", out, "target", res.Target, "id", res.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
				return nil
			}

			res := compiler.CompileWith(source, opts)
			if err := a.report(cmd, res.Diagnostics, args[0]); err != nil {
				return err
			}
			a.log.Debug("compiled", "target", res.Target, "id", res.ID, "instructions", len(res.Artifact.Lines))

			if out == "-" {
				if a.cfg.Output == "yaml" {
					return writeYAML(cmd.OutOrStdout(), res.Artifact)
				}
				fmt.Fprint(cmd.OutOrStdout(), res.Artifact.Listing())
				return nil
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			if err := writeYAML(f, res.Artifact); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			a.log.Info("wrote artifact", "path", out, "target", res.Target, "id", res.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "target: "+targetList()+" (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "output path, or - for stdout")
	return cmd
}

func (a *app) runCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Compile and execute on a target's machine",
		Long: `Compiles a program and executes the artifact: bytecode on the stack
machine, or the assembly listing on the register simulator. Prints one
value per print statement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			res, values, err := compiler.RunOnTarget(source, a.compileOptions(target))
			if res.Diagnostics.Count() > 0 {
				if reportErr := a.report(cmd, res.Diagnostics, args[0]); reportErr != nil {
					return reportErr
				}
			}
			if err != nil {
				return err
			}
			a.log.Debug("ran", "target", res.Target, "id", res.ID, "printed", len(values))

			if a.cfg.Output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), map[string]any{"target": res.Target, "output": values})
			}
			for _, v := range values {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "target: "+targetList()+" (default from config)")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and check for undefined variables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			if err := a.report(cmd, compiler.Check(source), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.styles.success.Render(displayName(args[0])+": ok"))
			return nil
		},
	}
}

func (a *app) lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file>",
		Short: "Check a program and report style warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			diag := compiler.Lint(source)
			if err := a.report(cmd, diag, args[0]); err != nil {
				return err
			}
			if diag.Count() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), a.styles.success.Render(displayName(args[0])+": no issues"))
			}
			return nil
		},
	}
}

func (a *app) fmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print a program in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			formatted, err := formatter.FormatSource(source)
			if err != nil {
				return a.reportErr(cmd, err, args[0])
			}
			if !write || args[0] == "-" {
				fmt.Fprint(cmd.OutOrStdout(), formatted)
				return nil
			}
			if formatted == source {
				a.log.Debug("already formatted", "path", args[0])
				return nil
			}
			if err := os.WriteFile(args[0], []byte(formatted), 0644); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			a.log.Info("formatted", "path", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	return cmd
}

func (a *app) targetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List compilation targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			type targetView struct {
				Name      string `yaml:"name"`
				Division  string `yaml:"division"`
				Extension string `yaml:"extension"`
				Default   bool   `yaml:"default"`
			}
			var views []targetView
			for _, name := range backend.Names() {
				be, err := backend.Lookup(name)
				if err != nil {
					return err
				}
				views = append(views, targetView{
					Name:      name,
					Division:  be.Division().String(),
					Extension: backend.FileExtension(name),
					Default:   name == a.cfg.Target,
				})
			}

			if a.cfg.Output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), views)
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.styles.heading.Render("Targets"))
			for _, v := range views {
				marker := " "
				if v.Default {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-6s %-4s division=%s\n", marker, v.Name, v.Extension, v.Division)
			}
			return nil
		},
	}
}

func targetList() string {
	return strings.Join(backend.Names(), "|")
}
