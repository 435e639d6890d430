// runtime/runtime.go

package runtime

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"rgehrsitz/bfvm/internal/preprocessor"
	"rgehrsitz/bfvm/internal/preprocessor/bytecode"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrInputRead     = errors.New("failed to read input")
	ErrOutputWrite   = errors.New("failed to write output")
	ErrMissingJump   = errors.New("bracket has no jump target")
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// VM represents the virtual machine that executes a preprocessed program.
type VM struct {
	program *preprocessor.Program
	ip      int
	tape    *Tape
	pending []byte // rest of the last line read from input
	steps   uint64

	in     *bufio.Reader
	out    io.Writer
	outBuf [1]byte
	logger zerolog.Logger
}

type VMError struct {
	Message string
	IP      int
	Err     error
}

func (e *VMError) Error() string {
	return fmt.Sprintf("VM error at IP %d: %s", e.IP, e.Message)
}

func (e *VMError) Unwrap() error {
	return e.Err
}

// Option configures a VM.
type Option func(*VM)

// WithInput sets the stream read by ','.
func WithInput(r io.Reader) Option {
	return func(vm *VM) {
		vm.in = bufio.NewReader(r)
	}
}

// WithOutput sets the stream written by '.'. Writers with a Flush method are
// flushed after every byte.
func WithOutput(w io.Writer) Option {
	return func(vm *VM) {
		vm.out = w
	}
}

// WithMaxTapeCells caps the tape length. Zero leaves it unbounded.
func WithMaxTapeCells(n int) Option {
	return func(vm *VM) {
		vm.tape.MaxCells = n
	}
}

// WithLogger replaces the global logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(vm *VM) {
		vm.logger = logger
	}
}

// NewVM creates a new instance of the virtual machine.
func NewVM(program *preprocessor.Program, opts ...Option) *VM {
	vm := &VM{
		program: program,
		ip:      0,
		tape:    NewTape(0),
		pending: nil,
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Tape returns the VM's memory.
func (vm *VM) Tape() *Tape {
	return vm.tape
}

// Steps returns the number of instructions executed so far.
func (vm *VM) Steps() uint64 {
	return vm.steps
}

// Run executes the program until the instruction pointer runs off the end of
// the stream. Every returned error is a *VMError.
func (vm *VM) Run() error {
	instructions := vm.program.Instructions
	trace := vm.logger.GetLevel() <= zerolog.TraceLevel && zerolog.GlobalLevel() <= zerolog.TraceLevel

	vm.logger.Debug().Int("Instructions", len(instructions)).Msg("Starting execution")

	for vm.ip < len(instructions) {
		opcode := bytecode.Opcode(instructions[vm.ip])

		if trace {
			vm.logger.Trace().
				Int("IP", vm.ip).
				Str("Opcode", opcode.String()).
				Int("DP", vm.tape.Pointer).
				Uint8("Cell", vm.tape.Get()).
				Msg("Processing instruction")
		}

		switch opcode {
		case bytecode.INC:
			vm.tape.Increment()

		case bytecode.DEC:
			vm.tape.Decrement()

		case bytecode.RIGHT:
			if err := vm.tape.MoveRight(); err != nil {
				return &VMError{
					Message: fmt.Sprintf("%v: cannot grow past %s", err, humanize.Bytes(uint64(vm.tape.MaxCells))),
					IP:      vm.ip,
					Err:     err,
				}
			}

		case bytecode.LEFT:
			vm.tape.MoveLeft()

		case bytecode.OUTPUT:
			if err := vm.output(vm.tape.Get()); err != nil {
				return &VMError{Message: err.Error(), IP: vm.ip, Err: fmt.Errorf("%w: %w", ErrOutputWrite, err)}
			}

		case bytecode.INPUT:
			if err := vm.input(); err != nil {
				return &VMError{Message: err.Error(), IP: vm.ip, Err: fmt.Errorf("%w: %w", ErrInputRead, err)}
			}

		case bytecode.LOOP_START:
			if vm.tape.Get() == 0 {
				if err := vm.jump(); err != nil {
					return err
				}
			}

		case bytecode.LOOP_END:
			if vm.tape.Get() != 0 {
				if err := vm.jump(); err != nil {
					return err
				}
			}

		default:
			return &VMError{Message: opcode.String(), IP: vm.ip, Err: ErrUnknownOpcode}
		}

		vm.ip++
		vm.steps++
	}

	vm.logger.Debug().
		Uint64("Steps", vm.steps).
		Int("TapeCells", vm.tape.Len()).
		Msg("Execution completed")

	return nil
}

// jump moves the instruction pointer onto the partner of the current bracket.
// The dispatch loop then steps past it.
func (vm *VM) jump() error {
	target, ok := vm.program.Jumps.Target(vm.ip)
	if !ok {
		return &VMError{Message: "bracket has no jump target", IP: vm.ip, Err: ErrMissingJump}
	}
	vm.ip = target
	return nil
}

// input stores the next pending input byte in the current cell, reading a
// new line first when nothing is pending. At end of input the cell is left
// as it was.
func (vm *VM) input() error {
	if len(vm.pending) == 0 {
		line, err := vm.in.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return err
		}
		vm.pending = line
	}

	if len(vm.pending) == 0 {
		return nil
	}
	vm.tape.Set(vm.pending[0])
	vm.pending = vm.pending[1:]
	return nil
}

type flusher interface {
	Flush() error
}

func (vm *VM) output(b byte) error {
	vm.outBuf[0] = b
	if _, err := vm.out.Write(vm.outBuf[:]); err != nil {
		return err
	}
	if f, ok := vm.out.(flusher); ok {
		return f.Flush()
	}
	return nil
}
