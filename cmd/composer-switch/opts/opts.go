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

package opts

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/composer-switch/pkg/config"
	"github.com/walteh/composer-switch/pkg/log"
	"github.com/walteh/composer-switch/pkg/switcher"
)

// RootOpts is filled in by the root command before any subcommand runs.
type RootOpts struct {
	Config     *config.Config
	UserLogger *log.UserLogger
	Out        io.Writer
	Quiet      bool
}

// 🏭 NewEngine creates a switch engine for the configured project
func (o *RootOpts) NewEngine(ctx context.Context) *switcher.Engine {
	eng := switcher.New(switcher.Options{
		Main:     o.Config.Main,
		Prod:     o.Config.Prod,
		Dev:      o.Config.Dev,
		Reporter: log.New(o.Out, *zerolog.Ctx(ctx)),
	})
	eng.SetOutputEnabled(!o.Quiet)
	return eng
}
