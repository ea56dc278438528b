/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gnames/dwhetl/internal/iocatalog"
	"github.com/gnames/dwhetl/internal/iofs"
	"github.com/gnames/dwhetl/internal/ioload"
	"github.com/gnames/dwhetl/internal/iologger"
	"github.com/gnames/dwhetl/internal/iosources"
	"github.com/gnames/dwhetl/internal/iowarehouse"
	dwhetl "github.com/gnames/dwhetl/pkg"
	"github.com/gnames/dwhetl/pkg/config"
	"github.com/gnames/dwhetl/pkg/mode"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

var (
	homeDir string
	cfgFile string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the dwhetl command.
// Positional arguments select the run mode, so there are no subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			dwhetl.Version, dwhetl.Build),
		Use:   "dwhetl [all|test]",
		Short: "Loads song and event logs into a Redshift star schema",
		Long: `dwhetl loads JSON song and event logs from S3 into Redshift staging
tables, then populates a star schema from the staging tables.

Arguments:
  all     load the complete dataset
  test    load a restricted dataset
  (none)  ask which dataset to load

Statements run one at a time on a single connection and every statement
is committed before the next one starts. The first failure stops the run,
statements committed before it stay in the warehouse.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (DWHETL_*)
  3. Config file (~/.config/dwhetl/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (warehouse.host → DWHETL_WAREHOUSE_HOST).

  Examples:
    DWHETL_WAREHOUSE_HOST           Redshift cluster endpoint
    DWHETL_WAREHOUSE_PASSWORD       Redshift password
    DWHETL_SOURCES_IAM_ROLE_ARN     IAM role used by COPY
    DWHETL_LOG_LEVEL                Log level (debug/info/warn/error)

Statements are kept in ~/.config/dwhetl/catalog.yaml.

Examples:
  # Ask which dataset to load
  dwhetl

  # Load the restricted dataset with a progress bar
  dwhetl test --progress

  # Show the statements 'dwhetl all' would run
  dwhetl all --plan`,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRoot(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "dwhetl version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		gn.PrintErrorMessage(err)
		return err
	})

	setFlags(rootCmd)

	return rootCmd
}

// Execute runs the root command and exits with status 1 on error.
// This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureCatalogFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfgPath := cfgFile
	if cfgPath == "" {
		cfgPath = config.ConfigFilePath(homeDir)
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(cfgPath); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", cfgPath)

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg.Update(flagOptions(cmd))

	prompt := stdinPrompt(cmd.InOrStdin(), cmd.OutOrStdout())
	m, err := mode.Select(args, prompt)
	if err != nil {
		return err
	}
	if m == mode.Abort {
		slog.Info("No dataset selected, nothing to load")
		return nil
	}

	catPath := config.CatalogFilePath(cfg.HomeDir)
	cat, err := iocatalog.Load(catPath, cfg.Sources)
	if err != nil {
		return err
	}

	wh := iowarehouse.New(&cfg.Warehouse)
	ld := ioload.New(cfg, wh, cat, ioload.OptOutput(cmd.OutOrStdout()))

	if cfg.WithPlan {
		return printPlan(cmd.OutOrStdout(), ld, m)
	}

	if cfg.WithSourcesCheck {
		if err = checkSources(ctx, m); err != nil {
			return err
		}
	}

	slog.Info("Loading data",
		"mode", m.String(),
		"warehouse", iowarehouse.Target(&cfg.Warehouse),
	)
	return ld.Load(ctx, m)
}

func checkSources(ctx context.Context, m mode.RunMode) error {
	chk, err := iosources.New(ctx, cfg.Sources)
	if err != nil {
		return err
	}
	if err = chk.Check(ctx, cfg.Sources, m); err != nil {
		return err
	}
	gn.Info("Source data for <em>%s</em> mode is available", m.String())
	return nil
}

func printPlan(w io.Writer, ld dwhetl.Loader, m mode.RunMode) error {
	steps, err := ld.Plan(m)
	if err != nil {
		return err
	}

	for _, st := range steps {
		fmt.Fprintf(w, "%3d  %-13s %2d  %s\n", st.Seq, st.List, st.Index, st.Name)
	}
	return nil
}

// stdinPrompt asks the question and reads one line of the answer.
func stdinPrompt(in io.Reader, out io.Writer) mode.Prompt {
	return func(question string) (string, error) {
		fmt.Fprint(out, question+" ")
		return bufio.NewReader(in).ReadString('\n')
	}
}
