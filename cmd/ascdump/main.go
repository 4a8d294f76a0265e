package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/engine"
)

type options struct {
	wasmFile string
	funcName string
	args     string
	strArg   string
	ptr      string
	format   string
	verbose  bool
}

func main() {
	var (
		opts        options
		interactive = flag.Bool("i", false, "Interactive inspector with TUI")
	)
	flag.StringVar(&opts.wasmFile, "wasm", "", "Path to guest module")
	flag.StringVar(&opts.funcName, "func", "", "Export to call; its i32 result is dumped unless -ptr is set")
	flag.StringVar(&opts.args, "arg", "", "u32 arguments (comma-separated)")
	flag.StringVar(&opts.strArg, "str", "", "String allocated in the guest and passed as the first argument")
	flag.StringVar(&opts.ptr, "ptr", "", "Offset to dump (decimal or 0x hex)")
	flag.StringVar(&opts.format, "format", "text", "Output format: text or json")
	flag.BoolVar(&opts.verbose, "v", false, "Log engine activity to stderr")
	flag.Parse()

	if opts.wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: ascdump -wasm <file.wasm> -func name [-arg 1,2] [-str text] [-format text|json]")
		fmt.Fprintln(os.Stderr, "       ascdump -wasm <file.wasm> [-func name] -ptr <offset>")
		fmt.Fprintln(os.Stderr, "       ascdump -wasm <file.wasm> -i  (interactive mode)")
		os.Exit(1)
	}
	if opts.format != "text" && opts.format != "json" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", opts.format)
		os.Exit(1)
	}

	if opts.verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			engine.SetLogger(l)
			asc.SetLogger(l)
			defer func() { _ = l.Sync() }()
		}
	}

	var err error
	if *interactive {
		err = runInteractive(opts.wasmFile)
	} else {
		err = run(opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	ctx := context.Background()

	data, err := os.ReadFile(opts.wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	eng, err := engine.New(ctx, nil)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer eng.Close(ctx)

	inst, err := eng.Instantiate(ctx, data, "guest")
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}
	defer inst.Close(ctx)

	params, err := parseArgs(opts.args)
	if err != nil {
		return err
	}
	if opts.strArg != "" {
		p, err := asc.NewString(inst.Heap(), opts.strArg)
		if err != nil {
			return fmt.Errorf("allocate -str: %w", err)
		}
		params = append([]uint64{p.ToPayload()}, params...)
	}

	var target uint32
	if opts.funcName != "" {
		results, err := inst.Call(ctx, opts.funcName, params...)
		if err != nil {
			return fmt.Errorf("call %s: %w", opts.funcName, err)
		}
		if len(results) > 0 {
			target = uint32(results[0])
		}
	}

	if opts.ptr != "" {
		target, err = parseOffset(opts.ptr)
		if err != nil {
			return err
		}
	} else if opts.funcName == "" {
		return fmt.Errorf("nothing to dump: use -func or -ptr")
	}

	d := inspect(inst.Heap(), target)
	if opts.format == "json" {
		return writeJSON(os.Stdout, d)
	}
	return writeText(os.Stdout, d, stdoutIsTerminal())
}

func parseArgs(s string) ([]uint64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]uint64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid -arg %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseOffset(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	return uint32(v), nil
}
