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

package log

import (
	"context"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🏷️ Level classifies a message collected during a switch
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelSuccess
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// 📢 UserLogger prints command results for people, not machines
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎯 NewUserLogger creates a user logger writing to stdout
func NewUserLogger(ctx context.Context) *UserLogger {
	return NewUserLoggerTo(ctx, os.Stdout)
}

// NewUserLoggerTo creates a user logger writing to out.
func NewUserLoggerTo(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.out)
}

// 📝 LogMessage prints one collected message with the matching style
func (u *UserLogger) LogMessage(level Level, text string) {
	switch level {
	case LevelWarning:
		u.printer(pterm.Warning, "⚠️").Println(text)
		u.log.Warn().Msg(text)
	case LevelSuccess:
		u.printer(pterm.Success, "✅").Println(text)
		u.log.Info().Msg(text)
	default:
		u.printer(pterm.Info, "ℹ️").Println(text)
		u.log.Info().Msg(text)
	}
}

// 📊 LogStateChange prints a change of the overall mode
func (u *UserLogger) LogStateChange(description string) {
	u.printer(pterm.Info, "📦").Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation prints a check result, with the error when there is one
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}

	if err != nil {
		u.printer(pterm.Error, "❌").Println(description)
		pterm.Error.WithWriter(u.out).Println(err)
		u.log.Error().Err(err).Msg(description)
		return
	}

	u.printer(pterm.Warning, "⚠️").Println(description)
	u.log.Warn().Msg(description)
}
