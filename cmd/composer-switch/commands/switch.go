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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/composer-switch/cmd/composer-switch/opts"
	"github.com/walteh/composer-switch/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func NewSwitchCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "switch <dev|prod>",
		Short:     "Switch composer.json to the given mode",
		ValidArgs: []string{"dev", "prod"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := status.ParseMode(args[0])
			if err != nil {
				return err
			}
			return runSwitch(cmd, opts, mode)
		},
	}

	return cmd
}

func NewDevCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Switch to the development config with local path repositories",
		Long: `Dev switches composer.json to the development config.
It will:
1. Back up composer.json and composer.lock on the first switch
2. Require every local repository at any version
3. Register each local repository as a symlinked path repository
4. Restore the DEV composer.lock, or remove it so composer update recreates it`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwitch(cmd, opts, status.ModeDev)
		},
	}

	return cmd
}

func NewProdCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prod",
		Short: "Switch back to the production config",
		Long: `Prod restores composer.json and composer.lock from the production backup.
The DEV composer.lock is kept next to the dev config for the next switch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwitch(cmd, opts, status.ModeProd)
		},
	}

	return cmd
}

func runSwitch(cmd *cobra.Command, opts *opts.RootOpts, mode status.Mode) error {
	ctx := cmd.Context()

	eng := opts.NewEngine(ctx)
	err := eng.SwitchTo(ctx, mode)

	// the reporter is silent in quiet mode, advisories still matter
	if opts.Quiet {
		for _, msg := range eng.Messages() {
			opts.UserLogger.LogMessage(msg.Level, msg.Text)
		}
	}

	if err != nil {
		return errors.Errorf("switching to %s: %w", mode, err)
	}

	return nil
}
