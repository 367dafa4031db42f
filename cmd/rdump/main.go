// Command rdump is the CLI adapter: a cobra command tree whose flags map
// 1:1 onto internal/orchestrator.Options (spec.md §9). It owns preset-file
// loading and calls internal/query.ResolvePreset before Parse, never
// after (spec.md §6). Modeled on the cobra root/subcommand shape in
// morfx's demo/cmd/main.go, generalized from a demo-scenario runner to
// rdump's single search command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/termfx/rdump/internal/config"
	"github.com/termfx/rdump/internal/contentpred"
	"github.com/termfx/rdump/internal/format"
	"github.com/termfx/rdump/internal/langprofile"
	"github.com/termfx/rdump/internal/metapred"
	"github.com/termfx/rdump/internal/orchestrator"
	"github.com/termfx/rdump/internal/predicate"
	"github.com/termfx/rdump/internal/presetfile"
	"github.com/termfx/rdump/internal/query"
	"github.com/termfx/rdump/internal/rdumperr"
	"github.com/termfx/rdump/internal/semantic"
)

type cliFlags struct {
	roots      []string
	hidden     bool
	noIgnore   bool
	maxDepth   int
	workers    int
	cacheDSN   string
	cacheDebug bool
	formatKind string
	noHeaders  bool
	presetPath string
	jsonErrors bool
}

func buildRegistry() (*predicate.Registry, error) {
	reg := predicate.NewRegistry()
	if err := metapred.Register(reg); err != nil {
		return nil, err
	}
	if err := contentpred.Register(reg); err != nil {
		return nil, err
	}
	if err := semantic.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func newRootCmd() *cobra.Command {
	var flags cliFlags
	cfg := config.Load()

	root := &cobra.Command{
		Use:   "rdump [flags] <query> [path...]",
		Short: "Search source files by metadata, content, and syntax structure",
		Long: "rdump finds files matching a declarative query combining filesystem " +
			"metadata, textual content, and language-aware syntax-tree structure.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawQuery := args[0]
			roots := args[1:]
			if len(roots) == 0 {
				roots = flags.roots
			}
			return runSearch(cmd, rawQuery, roots, flags, cfg)
		},
	}

	root.Flags().StringArrayVar(&flags.roots, "root", nil, "search root (repeatable; defaults to positional paths, then cwd)")
	root.Flags().BoolVar(&flags.hidden, "hidden", false, "include hidden files and directories")
	root.Flags().BoolVar(&flags.noIgnore, "no-ignore", false, "disable ignore files except .rdumpignore re-includes")
	root.Flags().IntVar(&flags.maxDepth, "max-depth", cfg.MaxDepth, "maximum subdirectory levels below root (negative = unbounded, 0 = root directory's own files only)")
	root.Flags().IntVar(&flags.workers, "workers", cfg.Workers, "evaluator worker count (0 = runtime.NumCPU())")
	root.Flags().StringVar(&flags.cacheDSN, "cache", cfg.CacheDSN, "result cache DSN (local file path or libsql:// URL)")
	root.Flags().BoolVar(&flags.cacheDebug, "cache-debug", cfg.CacheDebug, "log cache SQL statements")
	root.Flags().StringVar(&flags.formatKind, "format", "plain", "output format: plain, json, find")
	root.Flags().BoolVar(&flags.noHeaders, "no-headers", false, "suppress output headers (incompatible with --format find)")
	root.Flags().StringVar(&flags.presetPath, "presets", "", "path to a YAML preset file (name -> query)")
	root.Flags().BoolVar(&flags.jsonErrors, "json-errors", false, "report fatal errors as JSON on stderr")

	return root
}

func runSearch(cmd *cobra.Command, rawQuery string, roots []string, flags cliFlags, cfg *config.Config) error {
	presets, err := presetfile.Load(flags.presetPath)
	if err != nil {
		return fail(cmd, flags, rdumperr.Wrap(rdumperr.ErrQueryParse, "loading presets", err))
	}

	resolved, err := query.ResolvePreset(rawQuery, presets)
	if err != nil {
		return fail(cmd, flags, rdumperr.Wrap(rdumperr.ErrQueryParse, "resolving preset", err))
	}

	expr, err := query.Parse(resolved)
	if err != nil {
		if perr, ok := err.(*query.ParseError); ok {
			return fail(cmd, flags, rdumperr.CLIError{Code: rdumperr.CodeQueryParse, Message: perr.Msg, Pos: perr.Pos})
		}
		return fail(cmd, flags, rdumperr.Wrap(rdumperr.ErrQueryParse, "parsing query", err))
	}

	reg, err := buildRegistry()
	if err != nil {
		return fail(cmd, flags, err)
	}

	o := orchestrator.New(reg, langprofile.Default)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		o.Interrupt()
	}()

	records, err := o.Run(ctx, orchestrator.Options{
		Query:            expr,
		Roots:            roots,
		ShowHidden:       flags.hidden,
		NoIgnore:         flags.noIgnore,
		GlobalIgnoreFile: cfg.GlobalIgnore,
		MaxDepth:         flags.maxDepth,
		Workers:          flags.workers,
		CacheDSN:         flags.cacheDSN,
		CacheDebug:       flags.cacheDebug,
	})
	if err != nil {
		if cliErr, ok := err.(rdumperr.CLIError); ok {
			return fail(cmd, flags, cliErr)
		}
		return fail(cmd, flags, rdumperr.Wrap(rdumperr.ErrFileAccess, "running search", err))
	}

	if err := format.Write(cmd.OutOrStdout(), format.Kind(flags.formatKind), records, format.Options{NoHeaders: flags.noHeaders}); err != nil {
		return fail(cmd, flags, err)
	}
	return nil
}

func fail(cmd *cobra.Command, flags cliFlags, err error) error {
	if flags.jsonErrors {
		if cliErr, ok := err.(rdumperr.CLIError); ok {
			fmt.Fprintf(cmd.ErrOrStderr(), `{"code":%q,"message":%q}`+"\n", cliErr.Code, cliErr.Message)
			return cliErr
		}
	}
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
