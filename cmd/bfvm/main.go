package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"rgehrsitz/bfvm/internal/config"
	"rgehrsitz/bfvm/internal/preprocessor"
	"rgehrsitz/bfvm/internal/runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	exitOK      = 0
	exitLoad    = 1
	exitRuntime = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("bfvm", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "optional TOML settings file")
	verbose := flags.Bool("v", false, "log at debug level")
	if err := flags.Parse(args); err != nil {
		return exitLoad
	}

	if flags.NArg() < 1 {
		fmt.Fprintln(stdout, "Not enough arguments.")
		return exitLoad
	}

	cfg, err := loadConfig(*configPath, *verbose, stderr)
	if err != nil {
		log.Error().Err(err).Msg("Error loading config")
		return exitLoad
	}

	// Read and check the source file
	program, err := preprocessor.Load(flags.Arg(0))
	if err != nil {
		log.Error().Err(err).Msg("Error loading source")
		return exitLoad
	}

	maxCells, err := cfg.MaxTapeCells()
	if err != nil {
		log.Error().Err(err).Msg("Error loading config")
		return exitLoad
	}
	vm := runtime.NewVM(program,
		runtime.WithInput(stdin),
		runtime.WithOutput(stdout),
		runtime.WithMaxTapeCells(maxCells),
	)
	if err := vm.Run(); err != nil {
		log.Error().Err(err).Msg("Error running program")
		return exitRuntime
	}

	log.Debug().Uint64("Steps", vm.Steps()).Msg("Program execution completed successfully.")
	return exitOK
}

// loadConfig reads the settings file, if any, and points the global logger
// at stderr with the configured level.
func loadConfig(path string, verbose bool, stderr io.Writer) (*config.Config, error) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return cfg, nil
}
