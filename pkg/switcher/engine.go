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

package switcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/composer-switch/pkg/document"
	"github.com/walteh/composer-switch/pkg/file"
	"github.com/walteh/composer-switch/pkg/log"
	"github.com/walteh/composer-switch/pkg/status"
	"github.com/walteh/composer-switch/pkg/synth"
	"gitlab.com/tozd/go/errors"
)

// File kinds as shown in progress output.
const (
	kindManifest = "manifest"
	kindLock     = "lock"
	kindFlag     = "flag"
	kindStatus   = "status"
)

// ⚙️ Options configures an Engine
type Options struct {
	Main     string // live manifest, usually composer.json
	Prod     string // production backup manifest
	Dev      string // development descriptor
	Reporter log.Reporter
}

// 💬 Message is an advisory collected during the last switch
type Message struct {
	Level log.Level
	Text  string
}

// 🔀 Engine switches a project between its production and development
// manifests. It is not safe for concurrent use.
type Engine struct {
	main  *file.ConfigFile
	prod  *file.ConfigFile
	dev   *file.ConfigFile
	store *status.Store

	output   log.Reporter // configured reporter
	reporter log.Reporter // active reporter, output or log.Nop

	messages []Message
	journal  *journal
}

// 🏭 New creates an engine for the given files. No I/O happens here.
func New(opts Options) *Engine {
	output := opts.Reporter
	if output == nil {
		output = log.Nop{}
	}

	dev := absPath(opts.Dev)

	return &Engine{
		main:     file.NewConfigFile(absPath(opts.Main)),
		prod:     file.NewConfigFile(absPath(opts.Prod)),
		dev:      file.NewConfigFile(dev),
		store:    status.NewStore(status.PathFor(dev)),
		output:   output,
		reporter: output,
		journal:  &journal{},
	}
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// SetOutputEnabled toggles progress output without touching behaviour.
func (e *Engine) SetOutputEnabled(enabled bool) {
	if enabled {
		e.reporter = e.output
		return
	}
	e.reporter = log.Nop{}
}

func (e *Engine) MainFile() *file.ConfigFile {
	return e.main
}

func (e *Engine) ProdFile() *file.ConfigFile {
	return e.prod
}

func (e *Engine) DevFile() *file.ConfigFile {
	return e.dev
}

func (e *Engine) StatusStore() *status.Store {
	return e.store
}

// Mode reads the current mode from the status record.
func (e *Engine) Mode(ctx context.Context) (status.Mode, error) {
	return e.store.Mode(ctx)
}

// Status reads the full status record.
func (e *Engine) Status(ctx context.Context) (status.Record, error) {
	return e.store.Load(ctx)
}

// FlagExists reports whether the marker for mode sits next to the main manifest.
func (e *Engine) FlagExists(mode status.Mode) bool {
	if mode == status.ModeInitial {
		return false
	}
	return e.main.FlagFile(mode.Marker()).Exists()
}

// Messages returns the advisories of the last switch, in order.
func (e *Engine) Messages() []Message {
	out := make([]Message, len(e.messages))
	copy(out, e.messages)
	return out
}

func (e *Engine) SwitchToDevelopment(ctx context.Context) error {
	return e.SwitchTo(ctx, status.ModeDev)
}

func (e *Engine) SwitchToProduction(ctx context.Context) error {
	return e.SwitchTo(ctx, status.ModeProd)
}

// 🚀 SwitchTo moves the project to target. Advisories are collected in
// Messages and never returned as errors. Any failure after the first
// mutation is an *AbortError and leaves the status record untouched.
func (e *Engine) SwitchTo(ctx context.Context, target status.Mode) error {
	e.messages = nil
	e.journal = &journal{}

	if target != status.ModeDev && target != status.ModeProd {
		return file.NewError(file.KindInvalidMode, "", errors.Errorf("cannot switch to %s", target))
	}

	current, err := e.store.Mode(ctx)
	if err != nil {
		return errors.Errorf("reading current mode: %w", err)
	}

	logger := zerolog.Ctx(ctx).With().
		Str("from", current.String()).
		Str("to", target.String()).
		Logger()
	ctx = logger.WithContext(ctx)

	e.reporter.Header(fmt.Sprintf("Switching to %s composer config", target.Marker()))

	mainLock := e.main.LockFile()
	if !mainLock.Exists() {
		e.advise(log.LevelWarning, fmt.Sprintf(
			"No %s found next to %s. Run composer install first, then switch again.",
			mainLock.BaseName(), e.main.BaseName()))
		logger.Debug().Str("lock", mainLock.Path()).Msg("lock file missing, nothing changed")
		return nil
	}

	// the DEV manifest is built before anything is touched on disk
	var doc *document.Map
	backupMain := false
	if target == status.ModeDev {
		if current == status.ModeDev {
			e.reporter.Line(1, "Already in DEV mode, refreshing local repositories...")
		}

		var source *file.ConfigFile
		source, backupMain, err = e.devSource(current)
		if err != nil {
			return e.fail(ctx, "compare manifest timestamps", err)
		}

		doc, err = e.synthesize(ctx, source)
		if err != nil {
			return err
		}
	}

	if current == status.ModeInitial {
		if err := e.seed(ctx); err != nil {
			return err
		}
	}

	switch {
	case target == status.ModeDev && current != status.ModeDev:
		err = e.enterDev(ctx, current, backupMain)
	case target == status.ModeProd && current == status.ModeProd:
		err = e.reconcile(ctx)
	case target == status.ModeProd && current == status.ModeDev:
		err = e.enterProd(ctx)
	}
	if err != nil {
		return err
	}

	if doc != nil {
		op := log.FileOperation{Action: log.ActionWrite, Kind: kindManifest, Target: e.main.Path()}
		if err := e.apply(ctx, op, func() error { return e.main.Save(ctx, doc) }); err != nil {
			return err
		}
	}

	if err := e.writeFlags(ctx, target); err != nil {
		return err
	}

	files := status.FileSet{Main: e.main.Path(), Prod: e.prod.Path(), Dev: e.dev.Path()}
	op := log.FileOperation{Action: log.ActionWrite, Kind: kindStatus, Target: e.store.Path()}
	if err := e.apply(ctx, op, func() error { return e.store.SaveState(ctx, target, files) }); err != nil {
		return err
	}

	e.reporter.Newline()
	e.advise(log.LevelSuccess, fmt.Sprintf("Switched to %s mode.", target.Marker()))
	logger.Info().Int("steps", len(e.journal.applied)).Msg("switch complete")

	return nil
}

// 🌱 seed creates the production backup on the very first switch
func (e *Engine) seed(ctx context.Context) error {
	e.reporter.Line(1, "First switch, creating the production backup...")

	if !e.prod.Exists() {
		if err := e.copy(ctx, log.ActionSeed, kindManifest, e.main.File, e.prod.File); err != nil {
			return err
		}
	}

	return e.copy(ctx, log.ActionSeed, kindLock, e.main.LockFile(), e.prod.LockFile())
}

// devSource picks the manifest the DEV config is built from. In PROD, edits
// made to main after the last backup win and main is backed up before the
// switch. An existing backup is never replaced on the first switch.
func (e *Engine) devSource(current status.Mode) (*file.ConfigFile, bool, error) {
	switch current {
	case status.ModeProd:
		newer, err := e.mainIsNewer()
		if err != nil {
			return nil, false, err
		}
		if newer {
			return e.main, true, nil
		}
	case status.ModeInitial:
		// seeding copies main when there is no backup yet
		if !e.prod.Exists() {
			return e.main, false, nil
		}
	}
	return e.prod, false, nil
}

// 🧪 enterDev prepares the locks for DEV
func (e *Engine) enterDev(ctx context.Context, current status.Mode, backupMain bool) error {
	if backupMain {
		if err := e.copy(ctx, log.ActionBackup, kindManifest, e.main.File, e.prod.File); err != nil {
			return err
		}
	}

	mainLock := e.main.LockFile()

	// seeding already took the backup
	if current != status.ModeInitial {
		if err := e.copy(ctx, log.ActionBackup, kindLock, mainLock, e.prod.LockFile()); err != nil {
			return err
		}
	}

	devLock := e.dev.LockFile()
	if devLock.Exists() {
		if err := e.copy(ctx, log.ActionRestore, kindLock, devLock, mainLock); err != nil {
			return err
		}
		e.advise(log.LevelInfo, "Restored the DEV lock file. Run composer install to apply it.")
		return nil
	}

	op := log.FileOperation{Action: log.ActionDelete, Kind: kindLock, Target: mainLock.Path()}
	if err := e.apply(ctx, op, mainLock.Delete); err != nil {
		return err
	}
	e.advise(log.LevelWarning, "No DEV lock file exists yet. Run composer update to generate it.")

	return nil
}

// 🏭 enterProd backs up the DEV lock and restores the production files
func (e *Engine) enterProd(ctx context.Context) error {
	prodLock := e.prod.LockFile()
	for _, f := range []*file.File{e.prod.File, prodLock} {
		if !f.Exists() {
			return e.fail(ctx, "restore production files",
				file.NewError(file.KindCopy, f.Path(), errors.New("production backup does not exist")))
		}
	}

	mainLock := e.main.LockFile()

	if err := e.copy(ctx, log.ActionBackup, kindLock, mainLock, e.dev.LockFile()); err != nil {
		return err
	}
	if err := e.copy(ctx, log.ActionRestore, kindManifest, e.prod.File, e.main.File); err != nil {
		return err
	}
	if err := e.copy(ctx, log.ActionRestore, kindLock, prodLock, mainLock); err != nil {
		return err
	}

	e.advise(log.LevelInfo, "Restored the PROD lock file. Run composer install to apply it.")

	return nil
}

// ⚖️ reconcile keeps whichever of main and the production backup was
// written last
func (e *Engine) reconcile(ctx context.Context) error {
	mainTime, err := e.main.RequireModifiedTime()
	if err != nil {
		return e.fail(ctx, "compare manifest timestamps", err)
	}
	prodTime, err := e.prod.RequireModifiedTime()
	if err != nil {
		return e.fail(ctx, "compare manifest timestamps", err)
	}

	mainTime = mainTime.Truncate(time.Second)
	prodTime = prodTime.Truncate(time.Second)

	switch {
	case mainTime.After(prodTime):
		e.reporter.Line(1, "The main config is newer, updating the production backup...")
		return e.copy(ctx, log.ActionBackup, kindManifest, e.main.File, e.prod.File)
	case prodTime.After(mainTime):
		e.reporter.Line(1, "The production backup is newer, restoring it...")
		return e.copy(ctx, log.ActionRestore, kindManifest, e.prod.File, e.main.File)
	default:
		e.reporter.Line(1, "Already in PROD mode, nothing to update.")
		return nil
	}
}

func (e *Engine) mainIsNewer() (bool, error) {
	if !e.prod.Exists() {
		return false, nil
	}
	mainTime, err := e.main.RequireModifiedTime()
	if err != nil {
		return false, err
	}
	prodTime, err := e.prod.RequireModifiedTime()
	if err != nil {
		return false, err
	}
	return mainTime.Truncate(time.Second).After(prodTime.Truncate(time.Second)), nil
}

// synthesize builds the DEV manifest from source and the dev descriptor
func (e *Engine) synthesize(ctx context.Context, source *file.ConfigFile) (*document.Map, error) {
	if !e.dev.Exists() {
		return nil, e.fail(ctx, "load dev config",
			file.NewError(file.KindDevFileMissing, e.dev.Path(), errors.New("the DEV composer config file does not exist")))
	}

	devDoc, err := e.dev.Load(ctx)
	if err != nil {
		return nil, e.fail(ctx, "load dev config", err)
	}

	prodDoc, err := source.Load(ctx)
	if err != nil {
		return nil, e.fail(ctx, "load "+source.BaseName(), err)
	}

	e.reporter.Line(1, "Adjusting config for DEV...")

	res, err := synth.Synthesize(prodDoc, devDoc)
	if err != nil {
		return nil, e.fail(ctx, "synthesize dev manifest", errors.Errorf("%s: %w", e.dev.Path(), err))
	}

	for _, ev := range res.Events {
		verb := "Adding new repository entry."
		if ev.Action == synth.ActionUpdate {
			verb = "Overwriting existing repository entry."
		}
		e.reporter.Line(2, fmt.Sprintf("%s | [%s] | %s", ev.Action, ev.Package, verb))
	}

	return res.Document, nil
}

// 🚩 writeFlags leaves exactly one marker, the one for target
func (e *Engine) writeFlags(ctx context.Context, target status.Mode) error {
	for _, mode := range []status.Mode{status.ModeDev, status.ModeProd} {
		flag := e.main.FlagFile(mode.Marker())

		if mode == target {
			content := []byte(mode.Marker())
			op := log.FileOperation{Action: log.ActionWrite, Kind: kindFlag, Target: flag.Path()}
			if err := e.apply(ctx, op, func() error { return flag.WriteContent(content) }); err != nil {
				return err
			}
			continue
		}

		if flag.Exists() {
			op := log.FileOperation{Action: log.ActionDelete, Kind: kindFlag, Target: flag.Path()}
			if err := e.apply(ctx, op, flag.Delete); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) copy(ctx context.Context, action log.Action, kind string, src, dst *file.File) error {
	op := log.FileOperation{Action: action, Kind: kind, Target: dst.Path(), Source: src.Path()}
	return e.apply(ctx, op, func() error { return src.CopyTo(dst) })
}

// apply runs one mutating step and journals it
func (e *Engine) apply(ctx context.Context, op log.FileOperation, fn func() error) error {
	step := describe(op)
	if err := fn(); err != nil {
		return e.fail(ctx, step, err)
	}

	e.journal.record(step)
	e.reporter.FileOperation(op)
	zerolog.Ctx(ctx).Debug().Str("step", step).Msg("applied")

	return nil
}

func (e *Engine) fail(ctx context.Context, step string, err error) error {
	abort := &AbortError{Step: step, Applied: e.journal.snapshot(), Err: err}

	zerolog.Ctx(ctx).Error().
		Err(err).
		Str("step", step).
		Strs("applied", abort.Applied).
		Msg(abort.RecoveryHint())

	if len(abort.Applied) > 0 {
		e.reporter.Warning(abort.RecoveryHint())
	}

	return errors.WithStack(abort)
}

func (e *Engine) advise(level log.Level, text string) {
	e.messages = append(e.messages, Message{Level: level, Text: text})

	switch level {
	case log.LevelWarning:
		e.reporter.Warning(text)
	case log.LevelSuccess:
		e.reporter.Success(text)
	default:
		e.reporter.Info(text)
	}
}
