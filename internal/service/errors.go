package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveDuration reports a slot whose end does not come after
	// its start.
	ErrNonPositiveDuration = errors.New("slot duration must be positive")
	// ErrDurationTooShort reports a slot shorter than one quarter hour.
	ErrDurationTooShort = errors.New("slot duration is below the minimum")
	// ErrNotAligned reports a slot whose bounds are off the quarter-hour
	// grid.
	ErrNotAligned = errors.New("slot bounds must sit on quarter-hour boundaries")

	// ErrForbidden reports an actor without authority over the target
	// user's schedule.
	ErrForbidden = errors.New("actor may not modify this schedule")

	ErrTaskNotFound    = errors.New("task not found")
	ErrSlotNotFound    = errors.New("plan slot not found")
	ErrTimeLogNotFound = errors.New("time log not found")

	// ErrEditWindowClosed reports a time log past its edit window.
	ErrEditWindowClosed = errors.New("time log edit window has closed")
)

// OverlapConflictError reports that a candidate range collides with
// existing slots. SlotIDs lists the colliding slots in ascending order.
type OverlapConflictError struct {
	SlotIDs []int64
}

func (e *OverlapConflictError) Error() string {
	return fmt.Sprintf("slot overlaps existing slots %v", e.SlotIDs)
}

// AsOverlapConflict unwraps err into an OverlapConflictError if it is one.
func AsOverlapConflict(err error) (*OverlapConflictError, bool) {
	var oc *OverlapConflictError
	if errors.As(err, &oc) {
		return oc, true
	}
	return nil, false
}
