package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/viant/afs"
	"github.com/viant/ossim"
	"github.com/viant/ossim/internal/logging"
	"github.com/viant/ossim/tracing"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configURL := pflag.StringP("config", "c", "", "YAML config location (any afs URL)")
	diskURL := pflag.StringP("disk", "d", "", "virtual disk location, overrides config")
	traceFile := pflag.StringP("trace", "t", "", "write OpenTelemetry spans to this file")
	demo := pflag.Bool("demo", false, "seed the demo processes p1 and p2")
	level := pflag.StringP("log", "l", "", "log level: debug, info, warn or error")
	pflag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fs := afs.New()
	config := ossim.DefaultConfig()
	if *configURL != "" {
		var err error
		if config, err = ossim.LoadConfig(ctx, fs, *configURL); err != nil {
			return err
		}
	}
	if *diskURL != "" {
		config.Disk.URL = *diskURL
	}
	if *level != "" {
		config.Log.Level = *level
	}
	if *traceFile != "" {
		config.Tracing.Enabled = true
		config.Tracing.Output = *traceFile
	}

	options := []ossim.Option{
		ossim.WithConfig(config),
		ossim.WithFs(fs),
		ossim.WithLogger(logging.New(config.Log, os.Stderr)),
	}
	if *demo {
		options = append(options, ossim.WithDemoProcesses())
	}
	srv, err := ossim.New(options...)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), time.Second)
		defer done()
		_ = tracing.Shutdown(shutdownCtx)
	}()

	sh := srv.Shell(ctx)
	rt := srv.Runtime()
	if err = rt.Start(ctx); err != nil {
		return err
	}
	runErr := sh.Run(ctx, os.Stdin, os.Stdout)

	shutdownCtx, done := context.WithTimeout(context.Background(), time.Second)
	defer done()
	if err = rt.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}
