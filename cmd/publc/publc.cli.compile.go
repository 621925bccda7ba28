package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/itsatony/go-publication"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// compileConfig holds parsed compile and watch command configuration
type compileConfig struct {
	inputPath   string
	outputPath  string
	configPath  string
	format      string
	bullet      string
	normalize   string
	bold        bool
	italics     bool
	frontmatter bool
	verbose     bool
}

// exitError carries the exit code for a failed compile step
type exitError struct {
	code  int
	msg   string
	cause error
}

func (e *exitError) Error() string {
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *exitError) Unwrap() error {
	return e.cause
}

func runCompile(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseCompileFlags(CmdNameCompile, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	logger := newLogger(cfg.verbose, stderr)
	defer func() { _ = logger.Sync() }()

	if err := compileDocument(cfg, stdin, stdout, logger); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(stderr, FmtErrorWithPath, exitErr.msg, cfg.inputPath, exitErr.cause)
			return exitErr.code
		}
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgCompileFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseCompileFlags(name string, args []string) (*compileConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &compileConfig{}

	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.StringVar(&cfg.configPath, FlagConfig, "", "")
	fs.StringVar(&cfg.configPath, FlagConfigShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, "", "")
	fs.StringVar(&cfg.format, FlagFormatShort, "", "")
	fs.StringVar(&cfg.bullet, FlagBullet, "", "")
	fs.StringVar(&cfg.normalize, FlagNormalize, "", "")
	fs.BoolVar(&cfg.bold, FlagBold, false, "")
	fs.BoolVar(&cfg.italics, FlagItalics, false, "")
	fs.BoolVar(&cfg.frontmatter, FlagFrontmatter, FlagDefaultFrontmatter, "")
	fs.BoolVar(&cfg.verbose, FlagVerbose, false, "")
	fs.BoolVar(&cfg.verbose, FlagVerboseShort, false, "")

	inputs, err := parseInterspersed(fs, args)
	if err != nil {
		return nil, err
	}

	// Validation
	if len(inputs) != 1 {
		return nil, errors.New(ErrMsgMissingInput)
	}
	cfg.inputPath = inputs[0]

	if cfg.inputPath == StreamStdio {
		if cfg.outputPath == FlagDefaultOutput {
			cfg.outputPath = StreamStdio
		}
		return cfg, nil
	}

	ext := filepath.Ext(cfg.inputPath)
	if ext != publication.SourceFileExtension {
		return nil, errors.New(ErrMsgInvalidSourceExt)
	}
	if cfg.outputPath == FlagDefaultOutput {
		cfg.outputPath = strings.TrimSuffix(cfg.inputPath, ext) + "." + publication.FormatHTML
	}

	return cfg, nil
}

// parseInterspersed parses flags appearing before, between or after the
// positional arguments and returns the positionals in order. Everything
// after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if len(args) > len(rest) && args[len(args)-len(rest)-1] == FlagTerminator {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// newEngine builds an engine from the config file and the command line flags.
// Flags are applied after the file and win over it.
func newEngine(cfg *compileConfig, logger *zap.Logger) (*publication.Engine, error) {
	opts := []publication.Option{
		publication.WithLogger(logger),
		publication.WithFrontmatter(cfg.frontmatter),
	}

	if cfg.configPath != "" {
		fileCfg, err := publication.LoadConfig(cfg.configPath)
		if err != nil {
			return nil, &exitError{code: ExitCodeInputError, msg: ErrMsgLoadConfigFailed, cause: err}
		}
		logger.Debug(publication.LogMsgConfigLoaded, zap.String(publication.LogFieldPath, cfg.configPath))
		opts = append(opts, publication.WithConfig(fileCfg))
	}

	if cfg.bold {
		opts = append(opts, publication.WithBold())
	}
	if cfg.italics {
		opts = append(opts, publication.WithItalics())
	}
	if cfg.bullet != "" {
		opts = append(opts, publication.WithListBullet(cfg.bullet))
	}
	if cfg.normalize != "" {
		opts = append(opts, publication.WithNormalization(cfg.normalize))
	}

	engine, err := publication.New(opts...)
	if err != nil {
		return nil, &exitError{code: ExitCodeUsageError, msg: ErrMsgEngineFailed, cause: err}
	}
	return engine, nil
}

// outputFormat returns the explicit format, or infers it from the output path.
func outputFormat(cfg *compileConfig) string {
	if cfg.format != "" {
		return cfg.format
	}
	if cfg.outputPath == StreamStdio {
		return publication.FormatHTML
	}
	return filepath.Ext(cfg.outputPath)
}

// compileDocument reads, renders and writes one document, reporting
// "input → output (Nµs)" on stdout when writing to a file.
func compileDocument(cfg *compileConfig, stdin io.Reader, stdout io.Writer, logger *zap.Logger) error {
	start := time.Now()

	engine, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}

	format := outputFormat(cfg)
	emitter, err := engine.Emitter(format)
	if err != nil {
		return &exitError{code: ExitCodeUsageError, msg: ErrMsgNoEmitter, cause: err}
	}

	source, err := readSource(cfg.inputPath, stdin)
	if err != nil {
		return &exitError{code: ExitCodeInputError, msg: ErrMsgReadFileFailed, cause: err}
	}

	rendered, err := engine.Render(source, emitter)
	if err != nil {
		logger.Debug(LogMsgCompileFailed, zap.String(LogFieldInput, cfg.inputPath), zap.Error(err))
		return &exitError{code: ExitCodeError, msg: ErrMsgCompileFailed, cause: err}
	}

	if err := writeOutput(cfg.outputPath, rendered, stdout); err != nil {
		return &exitError{code: ExitCodeError, msg: ErrMsgWriteOutputFailed, cause: err}
	}

	elapsed := time.Since(start)
	logger.Debug(LogMsgCompiled,
		zap.String(LogFieldInput, cfg.inputPath),
		zap.String(LogFieldOutput, cfg.outputPath),
		zap.String(publication.LogFieldFormat, format),
		zap.Int64(LogFieldElapsedMicros, elapsed.Microseconds()),
	)
	if cfg.outputPath != StreamStdio {
		fmt.Fprintf(stdout, FmtCompiled, cfg.inputPath, cfg.outputPath, elapsed.Microseconds())
	}
	return nil
}

// newLogger returns a development logger writing to stderr when verbose, else a no-op logger.
func newLogger(verbose bool, stderr io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core, zap.Development()).Named(CLIName)
}
