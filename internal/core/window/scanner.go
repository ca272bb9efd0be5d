package window

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when the scanner is given an empty sequence.
var ErrInvalidInput = errors.New("invalid input")

// State is the scanning state threaded through each phase.
type State struct {
	Left           int
	Right          int
	RunningMaximum int
}

// ExtendResult is the outcome of one extend-right phase.
type ExtendResult struct {
	AdvancedTo  int
	CrossedPeak bool
}

// Stats counts pointer advancements made during a scan.
type Stats struct {
	LeftSteps  int
	RightSteps int
	Phases     int
}

// TotalSteps returns the combined number of left and right advancements.
func (s Stats) TotalSteps() int {
	return s.LeftSteps + s.RightSteps
}

// Distance returns the inclusive element count between two indices.
// It panics if j > k, which can only happen through a scanner bug.
func Distance(j, k int) int {
	if j > k {
		panic(fmt.Sprintf("window: distance called with left %d > right %d", j, k))
	}
	return k - j + 1
}

// LargestSinglePeakWindow returns the length of the largest contiguous window
// of boxes that holds at most one peak. A single box yields 0.
func LargestSinglePeakWindow(boxes []int) (int, error) {
	state, _, err := Scan(boxes)
	if err != nil {
		return 0, err
	}
	return state.RunningMaximum, nil
}

// Scan runs the full two-pointer scan and returns the final state together
// with pointer advancement counters.
func Scan(boxes []int) (State, Stats, error) {
	var (
		state State
		stats Stats
	)
	if len(boxes) == 0 {
		return state, stats, fmt.Errorf("%w: empty sequence", ErrInvalidInput)
	}

	n := len(boxes)
	for state.Right < n-1 {
		stats.Phases++

		ext := ProgressRight(boxes, state.Right)
		stats.RightSteps += ext.AdvancedTo - state.Right
		state.Right = ext.AdvancedTo

		state.RunningMaximum = max(state.RunningMaximum, Distance(state.Left, state.Right))

		var left int
		if ext.CrossedPeak {
			left = SettleOnValley(boxes, state.Left, state.Right)
		} else {
			left = CatchupLeft(boxes, state.Left, state.Right)
		}
		stats.LeftSteps += left - state.Left
		state.Left = left
	}

	return state, stats, nil
}

// ProgressRight advances right while the extension still holds a single
// peak: flat and descending steps are always taken, ascending steps only
// until the first strict descent of this phase.
func ProgressRight(boxes []int, right int) ExtendResult {
	n := len(boxes)
	ascended := false
	descended := false

	for right < n-1 {
		current, next := boxes[right], boxes[right+1]
		if current >= next {
			descended = descended || current > next
		} else {
			if descended {
				break
			}
			ascended = true
		}
		right++
	}

	return ExtendResult{
		AdvancedTo:  right,
		CrossedPeak: ascended && descended,
	}
}

// CatchupLeft advances left until boxes[left] <= boxes[right].
// The loop cannot pass right since boxes[right] bounds it.
func CatchupLeft(boxes []int, left, right int) int {
	for boxes[left] > boxes[right] {
		left++
	}
	return left
}

// SettleOnValley moves left onto the valley that ended a peaked extension.
// A flat valley floor stays in the window, so left lands on the first box of
// the run of boxes equal to boxes[right]; it never moves before the previous
// left.
func SettleOnValley(boxes []int, left, right int) int {
	floor := right
	for floor > left && boxes[floor-1] == boxes[right] {
		floor--
	}
	return floor
}
