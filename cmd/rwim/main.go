package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/rwim/internal/app"
	"github.com/kk-code-lab/rwim/internal/archive"
	"github.com/kk-code-lab/rwim/internal/config"
	"github.com/kk-code-lab/rwim/internal/logging"
)

var version = "dev"

func printHelp(w io.Writer) {
	fmt.Fprint(w, `rwim - Terminal browser for WIM, 7z and FAT disk images

USAGE:
    rwim [OPTIONS] [IMAGE]

OPTIONS:
    -h, --help            Show this help message and exit
    -i, --index N         Image index to open (default 1)
        --version         Print the version and exit

ENVIRONMENT:
    RWIM_WIMLIB           wimlib-imagex binary (default wimlib-imagex)
    RWIM_SHOW_HIDDEN      Show hidden and system entries (default true)
    RWIM_LOG_FILE         Log file (default $TMPDIR/rwim.log)
    RWIM_LOG_LEVEL        debug, info, warn or error
`)
}

type options struct {
	help    bool
	version bool
	index   int
	image   string
}

var errUsage = errors.New("usage")

func parseArgs(args []string) (options, error) {
	opts := options{index: 1}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			opts.help = true
		case arg == "--version":
			opts.version = true
		case arg == "-i" || arg == "--index":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%w: %s needs a value", errUsage, arg)
			}
			i++
			n, err := parseIndex(args[i])
			if err != nil {
				return opts, err
			}
			opts.index = n
		case strings.HasPrefix(arg, "--index="):
			n, err := parseIndex(strings.TrimPrefix(arg, "--index="))
			if err != nil {
				return opts, err
			}
			opts.index = n
		case strings.HasPrefix(arg, "-") && arg != "-":
			return opts, fmt.Errorf("%w: unknown option %s", errUsage, arg)
		default:
			if opts.image != "" {
				return opts, fmt.Errorf("%w: only one IMAGE may be given", errUsage)
			}
			opts.image = arg
		}
	}
	return opts, nil
}

func parseIndex(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: index must be a positive number, got %q", errUsage, value)
	}
	return n, nil
}

func main() {
	// Set UTF-8 as fallback encoding so file names outside ASCII render
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printHelp(os.Stderr)
		os.Exit(2)
	}
	if opts.help {
		printHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.version {
		fmt.Println("rwim", version)
		os.Exit(0)
	}

	if opts.image != "" {
		if err := archive.CheckImageFile(opts.image); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg := config.Load()

	if err := logging.Init(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputPath: cfg.LogFile,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer func() {
		_ = logging.Sync()
	}()
	for _, w := range cfg.Warnings {
		logging.L().Warn("config", logging.Err(w))
	}
	logging.L().Info("starting", logging.String("version", version), logging.String("image", opts.image))

	app, err := apppkg.NewApplication(cfg, opts.image, opts.index)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	logging.L().Info("exiting", logging.String("last", app.Describe()))
}
