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
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/walteh/composer-switch/cmd/composer-switch/opts"
	"github.com/walteh/composer-switch/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	var showFiles bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current composer config mode",
		Long: `Status reports which config composer.json is switched to.
It will:
1. Read the status file next to the dev config
2. Report the mode and when the last switch happened
3. Check that the mode marker next to composer.json agrees
4. With --files, list every tracked file with its size and checksum`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng := opts.NewEngine(ctx)

			rec, err := eng.Status(ctx)
			if err != nil {
				return errors.Errorf("reading status: %w", err)
			}

			opts.UserLogger.LogStateChange(fmt.Sprintf("Mode: %s", status.FormatMode(rec.Mode)))
			if when, ok := rec.Time(); ok {
				opts.UserLogger.LogStateChange(fmt.Sprintf("Last switch: %s (%s)", humanize.Time(when), rec.Date))
			}

			if rec.Mode != status.ModeInitial {
				marker := eng.MainFile().FlagFile(rec.Mode.Marker())
				opts.UserLogger.LogValidation(marker.Exists(), fmt.Sprintf("Marker %s present", marker.BaseName()), nil)
			}

			if !showFiles {
				return nil
			}

			mainLock := eng.MainFile().LockFile()
			prodLock := eng.ProdFile().LockFile()
			devLock := eng.DevFile().LockFile()

			infos, err := status.Inspect(ctx, []status.Tracked{
				{Label: "main", Path: eng.MainFile().Path()},
				{Label: "main lock", Path: mainLock.Path()},
				{Label: "prod", Path: eng.ProdFile().Path()},
				{Label: "prod lock", Path: prodLock.Path()},
				{Label: "dev", Path: eng.DevFile().Path()},
				{Label: "dev lock", Path: devLock.Path()},
				{Label: "status", Path: eng.StatusStore().Path()},
			})
			if err != nil {
				return errors.Errorf("inspecting files: %w", err)
			}

			fmt.Fprintln(opts.Out)
			for _, info := range infos {
				fmt.Fprintln(opts.Out, status.FormatFileInfo(info))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showFiles, "files", false, "list tracked files with size and checksum")

	return cmd
}
