package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"rgehrsitz/bfvm/internal/preprocessor"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run strips a source file down to its instructions after checking that its
// brackets balance. The output is itself a runnable program.
func run(args []string, stdout, stderr io.Writer) int {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).With().Timestamp().Logger()

	flags := flag.NewFlagSet("preprocessor", flag.ContinueOnError)
	flags.SetOutput(stderr)
	outputPath := flags.String("o", "", "write the stripped program here instead of stdout")
	verbose := flags.Bool("v", false, "log at debug level")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if flags.NArg() < 1 {
		fmt.Fprintln(stdout, "Not enough arguments.")
		return 1
	}

	program, err := preprocessor.Load(flags.Arg(0))
	if err != nil {
		log.Error().Err(err).Msg("Error loading source")
		return 1
	}

	// Write the stripped stream
	if *outputPath == "" {
		if _, err := stdout.Write(program.Instructions); err != nil {
			log.Error().Err(err).Msg("Error writing program")
			return 1
		}
		return 0
	}
	if err := os.WriteFile(*outputPath, program.Instructions, 0644); err != nil {
		log.Error().Err(err).Msg("Error writing program to file")
		return 1
	}

	log.Info().Str("path", *outputPath).Int("Instructions", len(program.Instructions)).Msg("Wrote stripped program")
	return 0
}
