package preprocessor

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"rgehrsitz/bfvm/internal/preprocessor/bytecode"

	"github.com/rs/zerolog/log"
)

// ErrInvalidEncoding is returned when a source file is not UTF-8 text.
var ErrInvalidEncoding = errors.New("source is not valid UTF-8 text")

// Load reads the source file at path and preprocesses it.
func Load(path string) (*Program, error) {
	log.Info().Str("path", path).Msg("Loading source...")
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %q: %w", path, err)
	}

	if !utf8.Valid(source) {
		return nil, fmt.Errorf("failed to read source %q: %w", path, ErrInvalidEncoding)
	}

	program, err := Preprocess(source)
	if err != nil {
		return nil, fmt.Errorf("invalid program %q: %w", path, err)
	}
	return program, nil
}

// Strip drops every byte that is not an instruction. The remaining
// instructions keep their relative order.
func Strip(source []byte) []byte {
	stripped := make([]byte, 0, len(source))
	for _, b := range source {
		if bytecode.IsInstruction(b) {
			stripped = append(stripped, b)
		}
	}
	return stripped
}
