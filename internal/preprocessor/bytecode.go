package preprocessor

import (
	"rgehrsitz/bfvm/internal/preprocessor/bytecode"

	"github.com/rs/zerolog/log"
)

// Program is a stripped instruction stream together with its jump table.
// Neither is modified after Preprocess returns.
type Program struct {
	Instructions []byte
	Jumps        bytecode.JumpTable
}

// Preprocess strips source down to its instructions and pairs every bracket.
func Preprocess(source []byte) (*Program, error) {
	instructions := Strip(source)

	jumps, err := bytecode.NewCompiler().Compile(instructions)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("SourceBytes", len(source)).
		Int("Instructions", len(instructions)).
		Int("Loops", len(jumps)/2).
		Msg("Preprocessed source")

	return &Program{Instructions: instructions, Jumps: jumps}, nil
}
