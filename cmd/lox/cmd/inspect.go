package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mdwast "github.com/msto63/lox/foundation/lox/ast"
	"github.com/msto63/lox/foundation/lox/diag"
	"github.com/msto63/lox/foundation/lox/parser"
	"github.com/msto63/lox/foundation/lox/scanner"
	"github.com/msto63/lox/internal/repl"
)

var astExpr string

var tokensCmd = &cobra.Command{
	Use:   "tokens <script>",
	Short: "Print the tokens of a script",
	Long: `Scans a script and prints one token per line as LINE KIND 'lexeme'.
Lexical errors appear as error tokens and make the command fail.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

var astCmd = &cobra.Command{
	Use:   "ast [script]",
	Short: "Print the syntax tree of a script",
	Long: `Parses a script and prints each statement in parenthesized prefix form,
for example "print (2 + 3) * 4;" prints "(print (* (group (+ 2 3)) 4))".

With --expr a single expression is parsed instead of a script.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().StringVarP(&astExpr, "expr", "e", "", "parse a single expression")
}

func runTokens(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	reporter := repl.NewReporter(cmd.ErrOrStderr(), colored())
	engine, err := newEngine(cmd.OutOrStdout(), reporter)
	if err != nil {
		return err
	}

	tokens, err := engine.Tokens(source)
	if err != nil {
		return err
	}

	var firstErr error
	for _, tok := range tokens {
		fmt.Fprintln(cmd.OutOrStdout(), tok.String())
		if tok.Type.IsError() {
			d := diag.Lexical(tok)
			reporter.Report(d)
			if firstErr == nil {
				firstErr = d.Err()
			}
		}
	}
	return firstErr
}

func runAST(cmd *cobra.Command, args []string) error {
	reporter := repl.NewReporter(cmd.ErrOrStderr(), colored())

	if astExpr != "" {
		p, err := parser.New(parser.Options{Logger: logger, Reporter: reporter})
		if err != nil {
			return err
		}
		expr, err := p.ParseExpression(scanner.Scan(astExpr))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), mdwast.Print(expr))
		return nil
	}

	if len(args) == 0 {
		return cmd.Usage()
	}
	source, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	engine, err := newEngine(cmd.OutOrStdout(), reporter)
	if err != nil {
		return err
	}

	stmts, err := engine.Parse(source)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), mdwast.PrintProgram(stmts))
	return nil
}
