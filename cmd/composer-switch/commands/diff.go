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

	"github.com/spf13/cobra"
	"github.com/walteh/composer-switch/cmd/composer-switch/opts"
	"github.com/walteh/composer-switch/pkg/drift"
	"gitlab.com/tozd/go/errors"
)

func NewDiffCmd(opts *opts.RootOpts) *cobra.Command {
	var contextLines int

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show how composer.json differs from the production backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng := opts.NewEngine(ctx)

			report, err := drift.Compare(ctx, eng.ProdFile().File, eng.MainFile().File, contextLines)
			if err != nil {
				return errors.Errorf("comparing manifests: %w", err)
			}

			if report.FromMissing {
				opts.UserLogger.LogValidation(false, fmt.Sprintf("No production backup at %s yet", report.From), nil)
			}

			if report.Equal() {
				opts.UserLogger.LogValidation(true, "composer.json matches the production backup", nil)
				return nil
			}

			fmt.Fprint(opts.Out, report.Diff)

			return nil
		},
	}

	cmd.Flags().IntVarP(&contextLines, "context", "U", drift.DefaultContext, "lines of context around each change")

	return cmd
}
