package model

import (
	"fmt"
	"slices"
)

// Case is a named sequence of box heights with an optional expected answer.
type Case struct {
	Name   string `json:"name,omitempty"`
	Input  []int  `json:"input"`
	Output *int   `json:"output,omitempty"`
}

// Checked reports whether the case carries an expected answer.
func (c Case) Checked() bool {
	return c.Output != nil
}

// Validate ensures the case can be scanned.
func (c Case) Validate() error {
	if len(c.Input) == 0 {
		return fmt.Errorf("case %q has no input boxes", c.Name)
	}
	return nil
}

// NewCase builds a case with an expected answer.
func NewCase(name string, input []int, output int) Case {
	return Case{Name: name, Input: input, Output: &output}
}

// Reverse returns a reversed copy of the sequence.
func Reverse(seq []int) []int {
	out := slices.Clone(seq)
	slices.Reverse(out)
	return out
}

// DefaultCases returns the built-in regression cases used when no input is given.
func DefaultCases() []Case {
	return []Case{
		NewCase("descent-then-rise", []int{8, 6, 2, 5}, 3),
		NewCase("flat-shoulder", []int{9, 7, 7, 10, 4, 8}, 4),
	}
}
