// File: compiler.go

package bytecode

import (
	"errors"
	"fmt"
)

// ErrUnbalancedBrackets is wrapped by every structural bracket error.
var ErrUnbalancedBrackets = errors.New("unbalanced brackets")

// BracketError reports the first bracket that has no partner.
type BracketError struct {
	Pos     int    // Position in the stripped instruction stream
	Bracket Opcode // LOOP_START for an unclosed opener, LOOP_END for a stray closer
}

func (e *BracketError) Error() string {
	if e.Bracket == LOOP_END {
		return fmt.Sprintf("unmatched closing ']' at position %d", e.Pos)
	}
	return fmt.Sprintf("unclosed opening '[' at position %d", e.Pos)
}

func (e *BracketError) Unwrap() error {
	return ErrUnbalancedBrackets
}

// JumpTable maps every bracket position to the position of its partner.
type JumpTable map[int]int

// Target returns the partner of the bracket at pos.
func (jt JumpTable) Target(pos int) (int, bool) {
	target, ok := jt[pos]
	return target, ok
}

// Compiler pairs loop brackets in an instruction stream.
type Compiler struct {
	jumps     JumpTable
	openStack []int
	used      bool
}

// NewCompiler creates a new instance of the jump compiler.
func NewCompiler() *Compiler {
	return &Compiler{
		jumps:     make(JumpTable),
		openStack: make([]int, 0),
	}
}

// Compile scans stream left to right and returns the symmetric jump table.
// Stray closers and unclosed openers are both reported as *BracketError.
func (c *Compiler) Compile(stream []byte) (JumpTable, error) {
	if c.used {
		return nil, errors.New("compiler already used")
	}
	c.used = true

	for pos, b := range stream {
		switch Opcode(b) {
		case LOOP_START:
			c.openStack = append(c.openStack, pos)
		case LOOP_END:
			if err := c.closeLoop(pos); err != nil {
				return nil, err
			}
		}
	}

	if err := c.resolveUnclosed(); err != nil {
		return nil, err
	}

	return c.jumps, nil
}

// closeLoop pops the innermost opener and links it with the closer at pos.
func (c *Compiler) closeLoop(pos int) error {
	if len(c.openStack) == 0 {
		return &BracketError{Pos: pos, Bracket: LOOP_END}
	}
	open := c.openStack[len(c.openStack)-1]
	c.openStack = c.openStack[:len(c.openStack)-1]

	c.jumps[open] = pos
	c.jumps[pos] = open
	return nil
}

// resolveUnclosed fails on the outermost opener still waiting for a closer.
func (c *Compiler) resolveUnclosed() error {
	if len(c.openStack) > 0 {
		return &BracketError{Pos: c.openStack[0], Bracket: LOOP_START}
	}
	return nil
}
