package main

import (
	"fmt"
	"github.com/QuangTung97/fraction/internal/inspect"
	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"os"
)

func run(args []string) int {
	fs := inspect.NewFlagSet("fracinspect")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: fracinspect [flags] VALUE...")
		fmt.Fprintln(os.Stderr, "VALUE is n/d, a decimal, a percentage or #raw")
		fs.PrintDefaults()
	}

	cfg, err := inspect.LoadConfig(fs, args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger, err := inspect.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	if err := inspect.Run(cfg, fs.Args(), os.Stdout, logger); err != nil {
		logger.Error("inspect failed", zap.Error(err))
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
