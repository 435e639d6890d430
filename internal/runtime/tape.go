package runtime

import "errors"

// ErrTapeLimit is returned when the data pointer would move past the
// configured tape ceiling.
var ErrTapeLimit = errors.New("tape limit reached")

// Tape is the VM's memory: an append-only row of byte cells and the data
// pointer into it.
type Tape struct {
	Cells    []byte
	Pointer  int
	MaxCells int // 0 means unbounded
}

// NewTape returns a tape holding a single zero cell.
func NewTape(maxCells int) *Tape {
	return &Tape{
		Cells:    []byte{0},
		Pointer:  0,
		MaxCells: maxCells,
	}
}

// Get returns the cell under the data pointer.
func (t *Tape) Get() byte {
	return t.Cells[t.Pointer]
}

// Set stores b in the cell under the data pointer.
func (t *Tape) Set(b byte) {
	t.Cells[t.Pointer] = b
}

// Increment adds one to the current cell, wrapping 255 to 0.
func (t *Tape) Increment() {
	t.Cells[t.Pointer]++
}

// Decrement subtracts one from the current cell, wrapping 0 to 255.
func (t *Tape) Decrement() {
	t.Cells[t.Pointer]--
}

// MoveRight advances the data pointer, appending one zero cell first when
// the pointer would leave the tape.
func (t *Tape) MoveRight() error {
	if t.Pointer+1 >= len(t.Cells) {
		if t.MaxCells > 0 && len(t.Cells) >= t.MaxCells {
			return ErrTapeLimit
		}
		t.Cells = append(t.Cells, 0)
	}
	t.Pointer++
	return nil
}

// MoveLeft retreats the data pointer. It does nothing at cell 0.
func (t *Tape) MoveLeft() {
	if t.Pointer > 0 {
		t.Pointer--
	}
}

// Len returns the number of cells allocated so far.
func (t *Tape) Len() int {
	return len(t.Cells)
}
