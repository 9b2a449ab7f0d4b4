// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/pass-the-salt/internal/config"
	"github.com/MKhiriev/pass-the-salt/internal/logger"
	"github.com/MKhiriev/pass-the-salt/internal/pts"
	"github.com/MKhiriev/pass-the-salt/internal/service"
	"github.com/MKhiriev/pass-the-salt/internal/tui"
	"github.com/MKhiriev/pass-the-salt/internal/workers"
)

const usage = `usage: pts [flags] <command> [args]

commands:
  init                         create an empty store
  add [flags] <label>          add a generatable secret (-login for a login)
  encrypt <label> [value]      add an encrypted secret
  get [-c] <pattern>           print or copy a secret
  ls [pattern]                 list secrets
  rm [-f] <pattern>            remove a secret
  mv <pattern> <label>         relabel a secret
  version                      print build information`

// App runs pts commands against the store handed out by the vault service.
type App struct {
	services   *service.Services
	prompter   Prompter
	clipboard  workers.Clipboard
	owner      string
	clearAfter time.Duration
	out        io.Writer

	logger *logger.Logger
}

// NewApp assembles an [App]. clip may be nil, in which case get -c fails.
func NewApp(services *service.Services, prompter Prompter, clip workers.Clipboard, cfg *config.StructuredConfig, out io.Writer, log *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errors.New("services are required")
	}
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	return &App{
		services:   services,
		prompter:   prompter,
		clipboard:  clip,
		owner:      cfg.App.Owner,
		clearAfter: cfg.Workers.ClipboardClearAfter,
		out:        out,
		logger:     log,
	}, nil
}

// Run executes the command in args.
func (a *App) Run(ctx context.Context, args []string) error {
	log := a.logger.WithTraceID()
	ctx = log.WithContext(ctx)

	if len(args) == 0 {
		return fmt.Errorf("%w: no command given\n%s", ErrUsage, usage)
	}

	command, rest := args[0], args[1:]
	log.Debug().Str("func", "*App.Run").Str("command", command).Msg("running command")

	var err error
	switch command {
	case "init":
		err = a.runInit(ctx, rest)
	case "add":
		err = a.runAdd(ctx, rest)
	case "encrypt":
		err = a.runEncrypt(ctx, rest)
	case "get":
		err = a.runGet(ctx, rest)
	case "ls":
		err = a.runList(ctx, rest)
	case "rm":
		err = a.runRemove(ctx, rest)
	case "mv":
		err = a.runMove(ctx, rest)
	case "version":
		err = a.runVersion(ctx, rest)
	case "help", "-h", "-help", "--help":
		_, err = fmt.Fprintln(a.out, usage)
	default:
		err = fmt.Errorf("%w: unknown command %q\n%s", ErrUsage, command, usage)
	}

	if err != nil {
		log.Err(err).Str("func", "*App.Run").Str("command", command).Msg("command failed")
	}
	return err
}

func (a *App) runInit(ctx context.Context, args []string) error {
	if _, err := parseArgs("init", args, 0, 0); err != nil {
		return err
	}

	if _, err := a.services.VaultService.Init(ctx, a.owner); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	_, err := fmt.Fprintln(a.out, "store initialized")
	return err
}

func (a *App) runAdd(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	salt := fs.String("salt", "", "salt of a generatable secret (default: the label)")
	login := fs.Bool("login", false, "add a login secret instead of a generatable one")
	domain := fs.String("domain", "", "login domain")
	username := fs.String("username", "", "login username")
	iteration := fs.Int("iteration", 0, "login iteration counter")
	version := fs.Int("version", pts.DefaultAlgorithm().Version, "algorithm version")
	length := fs.Int("length", 0, "truncate the generated secret to this length")

	rest, err := parseFlagSet(fs, args, 1, 1)
	if err != nil {
		return err
	}
	label := rest[0]

	algorithm, err := pts.NewAlgorithm(*version, *length)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	var secret pts.Secret
	if *login {
		if *domain == "" || *username == "" {
			return fmt.Errorf("%w: a login secret requires -domain and -username", ErrUsage)
		}
		var it *int
		if *iteration != 0 {
			it = iteration
		}
		secret = pts.NewLogin(*domain, *username, it, algorithm)
	} else {
		s := *salt
		if s == "" {
			s = label
		}
		secret = pts.NewGeneratable(s, algorithm)
	}

	if err = a.mutate(ctx, func(p *pts.PassTheSalt) error {
		return p.Add(label, secret)
	}); err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.out, "added %q\n", label)
	return err
}

func (a *App) runEncrypt(ctx context.Context, args []string) error {
	rest, err := parseArgs("encrypt", args, 1, 2)
	if err != nil {
		return err
	}
	label := rest[0]

	var value string
	if len(rest) == 2 {
		value = rest[1]
	} else {
		if value, err = a.prompt(ctx, "Secret", true); err != nil {
			return err
		}
	}

	if err = a.mutate(ctx, func(p *pts.PassTheSalt) error {
		return p.Add(label, pts.NewEncrypted(value))
	}); err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.out, "encrypted %q\n", label)
	return err
}

func (a *App) runGet(ctx context.Context, args []string) error {
	fs := newFlagSet("get")
	copyValue := fs.Bool("c", false, "copy the secret to the clipboard")

	rest, err := parseFlagSet(fs, args, 1, 1)
	if err != nil {
		return err
	}

	p, err := a.services.VaultService.Open(ctx)
	if err != nil {
		return err
	}

	label, err := p.Resolve(rest[0])
	if err != nil {
		return err
	}
	secret, err := p.Get(label)
	if err != nil {
		return err
	}
	value, err := secret.Get()
	if err != nil {
		return fmt.Errorf("get %q: %w", label, err)
	}

	if *copyValue {
		return a.copy(ctx, label, value)
	}
	_, err = fmt.Fprintln(a.out, value)
	return err
}

func (a *App) copy(ctx context.Context, label, value string) error {
	if a.clipboard == nil {
		return errors.New("no clipboard available")
	}
	if err := a.clipboard.WriteAll(value); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	if a.clearAfter <= 0 {
		_, err := fmt.Fprintf(a.out, "copied %q to the clipboard\n", label)
		return err
	}

	if _, err := fmt.Fprintf(a.out, "copied %q to the clipboard, clearing in %s\n", label, a.clearAfter); err != nil {
		return err
	}
	workers.NewWorkers(
		workers.NewClipboardClearer(ctx, a.clipboard, value, a.clearAfter, logger.FromContext(ctx)),
	).Run()
	return nil
}

func (a *App) runList(ctx context.Context, args []string) error {
	rest, err := parseArgs("ls", args, 0, 1)
	if err != nil {
		return err
	}
	pattern := ""
	if len(rest) == 1 {
		pattern = rest[0]
	}

	p, err := a.services.VaultService.Open(ctx)
	if err != nil {
		return err
	}

	labels, err := p.Labels(pattern)
	if err != nil {
		return err
	}

	matched := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		matched[label] = struct{}{}
	}

	rows := make([]pts.DisplayRow, 0, len(labels))
	if err = p.Each(func(label string, secret pts.Secret) error {
		if _, ok := matched[label]; !ok {
			return nil
		}
		row, err := secret.Display()
		if err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	}); err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}
	_, err = fmt.Fprintln(a.out, tui.RenderSecrets(rows))
	return err
}

func (a *App) runRemove(ctx context.Context, args []string) error {
	fs := newFlagSet("rm")
	force := fs.Bool("f", false, "do not ask for confirmation")

	rest, err := parseFlagSet(fs, args, 1, 1)
	if err != nil {
		return err
	}

	var label string
	if err = a.mutate(ctx, func(p *pts.PassTheSalt) error {
		resolved, err := p.Resolve(rest[0])
		if err != nil {
			return err
		}
		if !*force {
			if err = a.confirm(ctx, fmt.Sprintf("Remove %q?", resolved)); err != nil {
				return err
			}
		}
		label = resolved
		return p.Remove(resolved)
	}); err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.out, "removed %q\n", label)
	return err
}

func (a *App) runMove(ctx context.Context, args []string) error {
	rest, err := parseArgs("mv", args, 2, 2)
	if err != nil {
		return err
	}

	var label string
	if err = a.mutate(ctx, func(p *pts.PassTheSalt) error {
		resolved, err := p.Resolve(rest[0])
		if err != nil {
			return err
		}
		label = resolved
		return p.Move(resolved, rest[1])
	}); err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.out, "moved %q to %q\n", label, rest[1])
	return err
}

func (a *App) runVersion(ctx context.Context, args []string) error {
	if _, err := parseArgs("version", args, 0, 0); err != nil {
		return err
	}

	_, err := fmt.Fprintln(a.out, a.services.AppInfoService.GetBuildInfo(ctx))
	return err
}

// mutate opens the store, applies fn and saves the result. Nothing is saved
// when fn fails.
func (a *App) mutate(ctx context.Context, fn func(p *pts.PassTheSalt) error) error {
	p, err := a.services.VaultService.Open(ctx)
	if err != nil {
		return err
	}
	if err = fn(p); err != nil {
		return err
	}
	return a.services.VaultService.Save(ctx, p)
}

func (a *App) prompt(ctx context.Context, prompt string, confirm bool) (string, error) {
	if a.prompter == nil {
		return "", fmt.Errorf("%w: no terminal to prompt on", ErrUsage)
	}
	return a.prompter.Password(ctx, prompt, confirm)
}

func (a *App) confirm(ctx context.Context, question string) error {
	if a.prompter == nil {
		return fmt.Errorf("%w: no terminal to confirm on, use -f", ErrUsage)
	}
	ok, err := a.prompter.Confirm(ctx, question)
	if err != nil {
		return err
	}
	if !ok {
		return tui.ErrUserQuit
	}
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseFlagSet parses args and checks the number of positional arguments.
func parseFlagSet(fs *flag.FlagSet, args []string, minArgs, maxArgs int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUsage, fs.Name(), err)
	}
	rest := fs.Args()
	if len(rest) < minArgs || len(rest) > maxArgs {
		return nil, fmt.Errorf("%w: %s takes %s, got %d\n%s", ErrUsage, fs.Name(), arity(minArgs, maxArgs), len(rest), usage)
	}
	return rest, nil
}

func parseArgs(name string, args []string, minArgs, maxArgs int) ([]string, error) {
	return parseFlagSet(newFlagSet(name), args, minArgs, maxArgs)
}

func arity(minArgs, maxArgs int) string {
	switch {
	case maxArgs == 0:
		return "no arguments"
	case minArgs == maxArgs:
		return fmt.Sprintf("%d argument(s)", minArgs)
	default:
		return fmt.Sprintf("%d to %d arguments", minArgs, maxArgs)
	}
}
