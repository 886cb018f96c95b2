package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"codeberg.org/mutker/erraruga/internal/errors"
	"codeberg.org/mutker/erraruga/internal/logger"
	"codeberg.org/mutker/erraruga/pkg/apperror"
	"codeberg.org/mutker/erraruga/pkg/catalog"
	"codeberg.org/mutker/erraruga/pkg/resolver"
	"github.com/spf13/pflag"
)

func runResolve(ctx context.Context, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("resolve", pflag.ContinueOnError)
	code := fs.String("code", "", "Error code")
	errContext := fs.String("context", "", "Error context")
	message := fs.String("message", "", "Error message")
	meta := fs.StringArray("meta", nil, "Metadata as key=value, repeatable")
	forceDefault := fs.Bool("force-default", false, "Skip custom rules")
	asJSON := fs.Bool("json", false, "Also print the error value as JSON")

	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	if *code == "" {
		return errors.New().WithMessage(errors.ErrInvalidArgument, "--code is required")
	}

	md, err := parseMeta(*meta)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	e := apperror.New(*code,
		apperror.WithMessage(*message),
		apperror.WithContext(*errContext),
		apperror.WithMetadata(md))

	return printResolved(out, a.resolver, e, *asJSON, resolver.ForceDefault(*forceDefault))
}

func runDemo(ctx context.Context, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("demo", pflag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Also print each error value as JSON")

	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	cfg.DemoRules = true

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	for i, e := range newDemoService().scenarios() {
		if i > 0 {
			fmt.Fprintln(out, "---")
		}
		if err := printResolved(out, a.resolver, e, *asJSON); err != nil {
			return err
		}
	}

	return nil
}

func runAggregate(_ context.Context, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("aggregate", pflag.ContinueOnError)
	strict := fs.Bool("strict", false, "Reject an empty error list")

	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	errs := make([]*apperror.Error, 0, len(cfg.Args))
	for _, arg := range cfg.Args {
		code, message, _ := strings.Cut(arg, "=")
		errs = append(errs, apperror.New(code, apperror.WithMessage(message)))
	}

	agg := apperror.NewAggregate(errs)
	if *strict {
		if agg, err = apperror.NewStrictAggregate(errs); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, agg.Message())

	return nil
}

func runCatalog(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New().WithMessage(errors.ErrInvalidArgument, "catalog requires a subcommand: import, set, list, delete")
	}

	fs := pflag.NewFlagSet("catalog "+args[0], pflag.ContinueOnError)
	code := fs.String("code", "", "Rule code (set, delete)")
	errContext := fs.String("context", "", "Rule context (set, delete)")
	isDefault := fs.Bool("default", false, "Default-tier rule (set, delete)")
	message := fs.String("message", "", "Message template (set)")

	cfg, err := loadConfig(fs, args[1:])
	if err != nil {
		return err
	}

	repo, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	switch args[0] {
	case "import":
		if len(cfg.Args) != 1 {
			return errors.New().WithMessage(errors.ErrInvalidArgument, "catalog import takes one YAML file")
		}

		c, err := catalog.Load(cfg.Args[0])
		if err != nil {
			return err
		}

		if err := c.Apply(resolver.New()); err != nil {
			return err
		}

		if err := repo.SaveAll(ctx, c); err != nil {
			return err
		}
		logger.Info().Int("rules", len(c.Entries)).Str("file", cfg.Args[0]).Msg("Catalog imported")

		return nil
	case "set":
		entry := catalog.Entry{Code: *code, Context: *errContext, Default: *isDefault, Message: *message}
		if _, err := catalog.Compile(entry); err != nil {
			return err
		}

		if err := repo.Save(ctx, entry); err != nil {
			return err
		}
		logger.Info().Str("code", entry.Code).Str("context", entry.Context).Bool("default", entry.Default).Msg("Rule saved")

		return nil
	case "list":
		c, err := repo.List(ctx)
		if err != nil {
			return err
		}

		return c.Encode(out)
	case "delete":
		deleted, err := repo.Delete(ctx, *code, *errContext, *isDefault)
		if err != nil {
			return err
		}
		if !deleted {
			logger.Warn().Str("code", *code).Str("context", *errContext).Msg("No matching rule")
		}

		return nil
	default:
		return errors.New().WithMessage(errors.ErrInvalidArgument, "unknown catalog subcommand "+args[0])
	}
}

type errorView struct {
	Code     string         `json:"code"`
	Context  string         `json:"context,omitempty"`
	Message  string         `json:"message,omitempty"`
	Metadata map[string]any `json:"metadata"`
}

func printResolved(out io.Writer, r *resolver.Resolver, e *apperror.Error, asJSON bool, opts ...resolver.ResolveOption) error {
	text, err := r.Resolve(e, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, strings.TrimRight(text, "\n"))

	if !asJSON {
		return nil
	}

	data, err := json.MarshalIndent(errorView{
		Code:     e.Code(),
		Context:  e.Context(),
		Message:  e.Message(),
		Metadata: e.Metadata(),
	}, "", "  ")
	if err != nil {
		return errors.New().Wrap(errors.ErrInternal, err)
	}

	fmt.Fprintln(out, string(data))

	return nil
}
