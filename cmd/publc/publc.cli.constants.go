package main

// Command names
const (
	CmdNameCompile = "compile"
	CmdNameWatch   = "watch"
	CmdNameSchema  = "schema"
	CmdNameVersion = "version"
	CmdNameHelp    = "help"
)

// Flag names - long form
const (
	FlagOutput      = "output"
	FlagConfig      = "config"
	FlagFormat      = "format"
	FlagVerbose     = "verbose"
	FlagBold        = "bold"
	FlagItalics     = "italics"
	FlagBullet      = "bullet"
	FlagNormalize   = "normalize"
	FlagFrontmatter = "frontmatter"
)

// Flag names - short form
const (
	FlagOutputShort  = "o"
	FlagConfigShort  = "c"
	FlagFormatShort  = "F"
	FlagVerboseShort = "v"
)

// Flag default values
const (
	FlagDefaultOutput      = "" // derived from the input path
	FlagDefaultFormat      = "text"
	FlagDefaultFrontmatter = false
)

// Version output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeInputError = 4
)

// Input and output stream indicators
const (
	FlagTerminator = "--"
	StreamStdio    = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand      = "unknown command"
	ErrMsgMissingInput        = "exactly one input file required"
	ErrMsgInvalidSourceExt    = "publication files must use the .publ extension"
	ErrMsgInvalidFlags        = "invalid flags"
	ErrMsgReadFileFailed      = "failed to read file"
	ErrMsgWriteOutputFailed   = "failed to write output"
	ErrMsgLoadConfigFailed    = "failed to load config"
	ErrMsgEngineFailed        = "invalid engine configuration"
	ErrMsgNoEmitter           = "cannot infer emitter"
	ErrMsgCompileFailed       = "failed to compile"
	ErrMsgWatchFailed         = "failed to watch"
	ErrMsgWatchStdin          = "watch requires an input file"
	ErrMsgSchemaFailed        = "failed to generate schema"
	ErrMsgInvalidFormat       = "invalid output format"
	ErrMsgJSONMarshalFailed   = "failed to marshal JSON"
	ErrMsgWatcherEventsClosed = "watcher closed"
)

// Log message constants
const (
	LogMsgCompiled        = "document compiled"
	LogMsgCompileFailed   = "document compilation failed"
	LogMsgWatchStart      = "watching for changes"
	LogMsgWatchStop       = "watch stopped"
	LogMsgWatchEvent      = "change detected"
	LogMsgWatcherError    = "watcher error"
	LogFieldInput         = "input"
	LogFieldOutput        = "output"
	LogFieldDir           = "dir"
	LogFieldEvent         = "event"
	LogFieldElapsedMicros = "elapsed_us"
)

// Help text templates
const (
	HelpMainUsage = `publc - publication document compiler

Usage:
    publc <command> [options]

Commands:
    compile     Compile a .publ file to HTML or plain text
    watch       Recompile a .publ file whenever it changes
    schema      Print the JSON schema of the config file
    version     Show version information
    help        Show help for a command

Use "publc help <command>" for more information about a command.`

	HelpCompileUsage = `Compile a .publ file to HTML or plain text

Usage:
    publc compile [options] <input.publ>

Options:
    -o, --output <file>     Output file (default: input with .html, "-" for stdout)
    -F, --format <format>   Output format: html, txt (default: from output extension)
    -c, --config <file>     Config file (.yaml, .yml, .toml)
    --bold                  Enable *bold* emphasis
    --italics               Enable /italic/ emphasis
    --bullet <prefix>       Enable lists started by prefix
    --normalize <form>      Unicode normalization: nfc, nfd, nfkc, nfkd
    --frontmatter           Read settings from a leading --- block
    -v, --verbose           Log to stderr

Options may appear before or after the input.
Use "-" as input to read from stdin; output then defaults to stdout.

Examples:
    publc compile notes.publ
    publc compile -o notes.txt notes.publ
    publc compile notes.publ -F txt -o -
    publc compile --bold --bullet "**" -o - notes.publ
    cat notes.publ | publc compile -F txt -`

	HelpWatchUsage = `Recompile a .publ file whenever it changes

Usage:
    publc watch [options] <input.publ>

Accepts the same options as compile. Stops on interrupt.

Examples:
    publc watch -c publ.yaml notes.publ`

	HelpSchemaUsage = `Print the JSON schema of the config file

Usage:
    publc schema`

	HelpVersionUsage = `Show version information

Usage:
    publc version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    publc help [command]

Commands:
    compile     Show help for compile command
    watch       Show help for watch command
    schema      Show help for schema command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "publc version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
	VersionsFileName    = "versions.yaml"
)

// CLI metadata
const (
	CLIName        = "publc"
	maxSuggestions = 3
)

// Output file constants
const (
	FilePermissions = 0644
	TempFilePrefix  = "."
	TempFileSuffix  = ".*.tmp"
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtErrorWithPath   = "%s %s: %v\n"
	FmtCompiled        = "%s → %s (%dµs)\n"
	FmtDidYouMean      = "Did you mean %s?\n"
	FmtNewline         = "\n"
)
