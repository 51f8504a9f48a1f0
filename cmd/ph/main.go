// ph is the Phoenix Script toolchain.
package main

import (
	"fmt"
	"os"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/phoenix-script/ph/lib"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootEnv holds the flags shared by every sub-command.
type rootEnv struct {
	flagConfig  string
	flagVerbose bool

	log slog.Logger
}

func newRootCmd() *cobra.Command {
	env := &rootEnv{}

	ret := &cobra.Command{
		Use:   "ph",
		Short: "Phoenix Script",
		Long: `Phoenix Script toolchain.

Build a source file or every .ph file in a directory:

	ph build main.ph
	ph b ./src --jobs=4
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			env.log = logger.NewFromOptions(&logger.Options{
				SyncWriter:   os.Stderr,
				IncludeDebug: env.flagVerbose,
			})
		},
	}
	ret.PersistentFlags().StringVar(&env.flagConfig, "config", "", fmt.Sprintf("Config file (default ./%s if present)", lib.DefaultConfigFile))
	ret.PersistentFlags().BoolVarP(&env.flagVerbose, "verbose", "v", false, "Log debug output")

	ret.AddCommand(getBuildCmd(env))
	ret.AddCommand(getTokensCmd(env))
	return ret
}

func (r *rootEnv) loadConfig() (lib.Config, error) {
	if r.flagConfig != "" {
		return lib.LoadConfig(r.flagConfig, true)
	}
	return lib.LoadConfig(lib.DefaultConfigFile, false)
}
