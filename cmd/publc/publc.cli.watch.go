package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

func runWatch(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseCompileFlags(CmdNameWatch, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}
	if cfg.inputPath == StreamStdio {
		fmt.Fprintln(stderr, ErrMsgWatchStdin)
		return ExitCodeUsageError
	}

	logger := newLogger(cfg.verbose, stderr)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watchDocument(ctx, cfg, stdout, stderr, logger); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithPath, ErrMsgWatchFailed, cfg.inputPath, err)
		return ExitCodeError
	}
	return ExitCodeSuccess
}

// watchDocument compiles the input once and again after every write to it or
// to its config file, until ctx is done. Compile failures are reported on
// stderr and do not stop the watch.
func watchDocument(ctx context.Context, cfg *compileConfig, stdout, stderr io.Writer, logger *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch directories rather than files so editors that replace the file
	// on save keep triggering events.
	watched := map[string]bool{filepath.Clean(cfg.inputPath): true}
	dirs := map[string]bool{filepath.Dir(cfg.inputPath): true}
	if cfg.configPath != "" {
		watched[filepath.Clean(cfg.configPath)] = true
		dirs[filepath.Dir(cfg.configPath)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
		logger.Info(LogMsgWatchStart, zap.String(LogFieldDir, dir))
	}

	recompile := func() {
		if err := compileDocument(cfg, nil, stdout, logger); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, cfg.inputPath, err)
		}
	}
	recompile()

	for {
		select {
		case <-ctx.Done():
			logger.Info(LogMsgWatchStop)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New(ErrMsgWatcherEventsClosed)
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug(LogMsgWatchEvent, zap.String(LogFieldEvent, event.String()))
			recompile()

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New(ErrMsgWatcherEventsClosed)
			}
			logger.Warn(LogMsgWatcherError, zap.Error(err))
		}
	}
}
