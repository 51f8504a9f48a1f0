package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/phoenix-script/ph/lib"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// buildEnv provides the environment for the build command.
type buildEnv struct {
	root *rootEnv

	flagJobs      int
	flagColor     string
	flagFormat    string
	flagExtension string
	flagRecordDSN string
	flagDump      bool
}

// getBuildCmd returns the definition of the build command.
func getBuildCmd(root *rootEnv) *cobra.Command {
	env := &buildEnv{root: root}

	ret := &cobra.Command{
		Use:     "build <file or directory>...",
		Aliases: []string{"b"},
		Short:   "Builds the project",
		Long: `
Lexes and parses every given file and prints the expression each one holds.
Directories are expanded to the source files directly inside them. Files that
do not build are reported with their location and the command exits non-zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: env.runBuildCmd,
	}
	ret.Flags().IntVarP(&env.flagJobs, "jobs", "j", 0, "Files to build at once (default one per CPU)")
	ret.Flags().StringVar(&env.flagColor, "color", lib.ColorAuto, "Colorize diagnostics: auto, always or never")
	ret.Flags().StringVar(&env.flagFormat, "format", "", "text/template applied to every built file")
	ret.Flags().StringVar(&env.flagExtension, "extension", "", "Source file extension used when expanding directories")
	ret.Flags().StringVar(&env.flagRecordDSN, "record-dsn", "", "Postgres connection string to record build outcomes in")
	ret.Flags().BoolVar(&env.flagDump, "dump", false, "Dump the token buffer and expression of every file")

	return ret
}

// config merges the flags that were set over the config file.
func (b *buildEnv) config(cmd *cobra.Command) (lib.Config, error) {
	cfg, err := b.root.loadConfig()
	if err != nil {
		return lib.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("jobs") {
		cfg.Jobs = b.flagJobs
	}
	if flags.Changed("color") {
		cfg.Color = b.flagColor
	}
	if flags.Changed("format") {
		cfg.Format = b.flagFormat
	}
	if flags.Changed("extension") {
		cfg.Extension = b.flagExtension
	}
	if flags.Changed("record-dsn") {
		cfg.RecordDSN = b.flagRecordDSN
	}
	return cfg, cfg.Validate()
}

// runBuildCmd implements the build command.
func (b *buildEnv) runBuildCmd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := b.config(cmd)
	if err != nil {
		return err
	}

	reporter, err := lib.NewReporter(cfg.Format)
	if err != nil {
		return err
	}

	builder := lib.NewBuilder(b.root.log)
	builder.Jobs = cfg.Workers()
	builder.Extension = cfg.Extension

	if cfg.RecordDSN != "" {
		store, err := lib.OpenStore(ctx, cfg.RecordDSN, cfg.RecordTable)
		if err != nil {
			return err
		}
		defer store.Close()
		builder.Recorder = store
	}

	results, buildErr := builder.BuildPaths(ctx, args)
	if results == nil && buildErr != nil {
		return buildErr
	}

	out := cmd.OutOrStdout()
	if b.flagDump {
		for _, r := range results {
			fmt.Fprintf(out, "%s tokens:\n%s", r.File, spew.Sdump(r.Tokens))
			if r.Expression != nil {
				fmt.Fprintf(out, "%s expression:\n%s", r.File, spew.Sdump(r.Expression))
			}
		}
	}

	if err := reporter.Write(out, results); err != nil {
		return err
	}

	printer := lib.NewDiagnosticPrinter(cmd.ErrOrStderr(), cfg.ColorEnabled())
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			printer.Print(r.File, r.Source, r.Err)
		}
		if r.RecordErr != nil {
			printer.Print(r.File, r.Source, r.RecordErr)
		}
	}

	if failed > 0 {
		return errors.Errorf("%d of %d files failed to build", failed, len(results))
	}
	return buildErr
}
