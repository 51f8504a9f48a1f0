package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/phoenix-script/ph/lib"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// tokensEnv provides the environment for the tokens command.
type tokensEnv struct {
	root *rootEnv

	flagAll bool
}

// getTokensCmd returns the definition of the tokens command.
func getTokensCmd(root *rootEnv) *cobra.Command {
	env := &tokensEnv{root: root}

	ret := &cobra.Command{
		Use:     "tokens <file>",
		Aliases: []string{"t"},
		Short:   "Lists the tokens of a source file",
		Long: `
Lists the token buffer the parser builds for a file. With --all the raw lexer
output is listed instead, whitespace and unrecognized characters included.`,
		Args: cobra.ExactArgs(1),
		RunE: env.runTokensCmd,
	}
	ret.Flags().BoolVar(&env.flagAll, "all", false, "List whitespace and unrecognized characters too")

	return ret
}

// runTokensCmd implements the tokens command.
func (t *tokensEnv) runTokensCmd(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "reading %s", filePath)
	}
	src := string(bytes)

	var tokens []lib.Token
	if t.flagAll {
		tokens = lib.Lex(src)
	} else {
		p := lib.NewParser(src)
		p.Parse()
		tokens = p.Tokens()
	}
	t.root.log.Debugf("%s: %d tokens", filePath, len(tokens))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, tok := range tokens {
		fmt.Fprintf(w, "%s\t%s\t%s\n", tok.Location, tok.Kind, tokenDetail(tok))
	}
	return w.Flush()
}

func tokenDetail(tok lib.Token) string {
	switch tok.Kind {
	case lib.TokenBad:
		return fmt.Sprintf("%q", string(tok.Raw))
	case lib.TokenNumber:
		if tok.Err != nil {
			return fmt.Sprintf("%q (%s)", tok.Text, tok.Err)
		}
		return fmt.Sprintf("%q = %d", tok.Text, tok.Value)
	default:
		return fmt.Sprintf("%q", tok.Text)
	}
}
