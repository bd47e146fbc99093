package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/template-resolver/builtins"
	"github.com/wippyai/template-resolver/errors"
	"github.com/wippyai/template-resolver/handle"
	"github.com/wippyai/template-resolver/internal/config"
	"github.com/wippyai/template-resolver/manifest"
	"github.com/wippyai/template-resolver/owner"
	"github.com/wippyai/template-resolver/resolver"
	"github.com/wippyai/template-resolver/wasmhelper"
)

var errUsage = stderrors.New("no name to resolve")

var stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: tmplresolve -manifest <app.hcl> -kind component -name <name> [-module m]")
	fmt.Fprintln(os.Stderr, "       tmplresolve -manifest <app.hcl> -names helper:a,component:b")
	fmt.Fprintln(os.Stderr, "       tmplresolve -manifest <app.hcl> -i  (interactive mode)")
}

func main() {
	var (
		configPath  = flag.String("config", "", "Path to config file (toml, yaml or json)")
		manifestArg = flag.String("manifest", "", "Path to registry manifest (.hcl)")
		kind        = flag.String("kind", "component", "Kind to resolve: helper, modifier, component, partial")
		name        = flag.String("name", "", "Name to resolve")
		names       = flag.String("names", "", "Batch of kind:name pairs (comma-separated)")
		module      = flag.String("module", "", "Module name the lookup is made from")
		list        = flag.Bool("list", false, "List registered identifiers and built-ins, then exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *manifestArg != "" {
		cfg.Manifest = *manifestArg
	}

	if err := run(cfg, *kind, *name, *names, *module, *list, *interactive); err != nil {
		if stderrors.Is(err, errUsage) {
			printUsage()
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(cfg config.Config, kind, name, names, module string, listOnly, interactive bool) error {
	ctx := context.Background()

	logger, err := cfg.Log.Logger()
	if err != nil {
		return err
	}
	defer logger.Sync()
	resolver.SetLogger(logger.Named("resolver"))
	builtins.SetLogger(logger.Named("builtins"))
	wasmhelper.SetLogger(logger.Named("wasmhelper"))

	host := wasmhelper.NewHostWithConfig(ctx, cfg.Wasm.HostConfig())
	defer host.Close(ctx)

	reg := owner.NewRegistry()
	if cfg.Manifest != "" {
		if _, err := manifest.Load(ctx, cfg.Manifest, reg, host); err != nil {
			return err
		}
	}

	opts := cfg.Resolver.Options(logger.Named("instrument"))
	opts.OnDiagnostic = func(e *errors.Error) {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}
	r := resolver.New(reg, opts)

	if listOnly {
		printList(reg)
		return nil
	}

	if interactive || (name == "" && names == "" && stdinIsTerminal()) {
		return runInteractive(r, cfg.Manifest, module)
	}

	if names == "" {
		if name == "" {
			return errUsage
		}
		names = kind + ":" + name
	}

	pairs, err := parseNames(names)
	if err != nil {
		return err
	}
	return resolveAll(r, pairs, module, func(kind, name string, h handle.Handle) {
		logger.Debug("resolved", zap.String("kind", kind), zap.String("name", name), zap.Uint32("handle", uint32(h)))
		fmt.Printf("%-9s %-24s #%-4d %s\n", kind, name, h, describe(r, r.Resolve(h)))
	})
}

func printList(reg *owner.Registry) {
	fmt.Println("Registered:")
	for _, id := range reg.IDs() {
		fmt.Printf("  %s\n", id)
	}
	fmt.Println("\nBuilt-in helpers:")
	for _, n := range builtins.HelperNames() {
		fmt.Printf("  %s\n", n)
	}
	fmt.Println("\nBuilt-in modifiers:")
	for _, n := range builtins.ModifierNames() {
		fmt.Printf("  %s\n", n)
	}
}
