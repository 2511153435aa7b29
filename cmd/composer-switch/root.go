// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/composer-switch/cmd/composer-switch/commands"
	"github.com/walteh/composer-switch/cmd/composer-switch/opts"
	"github.com/walteh/composer-switch/pkg/config"
	"github.com/walteh/composer-switch/pkg/file"
	"github.com/walteh/composer-switch/pkg/log"
	"github.com/walteh/composer-switch/pkg/switcher"
	"gitlab.com/tozd/go/errors"
)

type rootFlags struct {
	dir        string
	configFile string
	debug      bool
	quiet      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "composer-switch",
		Short: "Switch composer.json between production and local development configs",
		Long: `composer-switch keeps a production backup of composer.json and composer.lock
and builds a development composer.json that points selected packages at
local path repositories. The current mode is recorded next to the dev config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			applyLogLevel(flags.debug)
			configureStyling(cmd.OutOrStdout())
			return loadRootOpts(cmd, flags, rootOpts)
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewSwitchCmd(rootOpts),
		commands.NewDevCmd(rootOpts),
		commands.NewProdCmd(rootOpts),
		commands.NewStatusCmd(rootOpts),
		commands.NewDiffCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", ".", "project directory")
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file path (default: discovered in the project directory)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "only print advisories and errors")
}

func applyLogLevel(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}
}

// configureStyling drops colors when output is not a terminal
func configureStyling(out io.Writer) {
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return
	}
	pterm.DisableStyling()
	color.NoColor = true
}

func loadRootOpts(cmd *cobra.Command, flags *rootFlags, o *opts.RootOpts) error {
	ctx := cmd.Context()

	cfg, err := config.LoadProject(ctx, flags.dir, flags.configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Str("location", cfg.Location()).Msg("resolved project")

	o.Config = cfg
	o.Out = cmd.OutOrStdout()
	o.UserLogger = log.NewUserLoggerTo(ctx, o.Out)
	o.Quiet = flags.quiet

	return nil
}

func reportError(ctx context.Context, w io.Writer, err error) {
	userLogger := log.NewUserLoggerTo(ctx, w)

	msg := "Command failed"
	if code := file.CodeOf(err); code != 0 {
		msg = fmt.Sprintf("Command failed (error #%d)", code)
	}
	userLogger.LogValidation(false, msg, err)

	var abort *switcher.AbortError
	if errors.As(err, &abort) {
		fmt.Fprintln(w, abort.RecoveryHint())
	}
}
