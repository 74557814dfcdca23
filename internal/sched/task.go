package sched

import (
	"fmt"
	"math"
)

// TaskID uniquely identifies a task. Ids are assigned by input order and
// double as the RM priority tie-break.
type TaskID int

// Task is one periodic task definition. All durations are integer ticks;
// once constructed a Task is never mutated.
type Task struct {
	ID       TaskID
	Exec     int64 // worst-case execution time per job
	Period   int64 // distance between successive releases
	Deadline int64 // relative deadline, measured from each release
}

// NewTask converts real-valued inputs (execution time, period, deadline in
// the same unit, e.g. milliseconds) into ticks by multiplying with scale and
// rounding to the nearest integer. Every scaled value must come out strictly
// positive; a tiny execution time that rounds to zero ticks is rejected here,
// not during simulation.
func NewTask(id TaskID, execTime, period, deadline float64, scale int) (*Task, error) {
	t := &Task{
		ID:       id,
		Exec:     toTicks(execTime, scale),
		Period:   toTicks(period, scale),
		Deadline: toTicks(deadline, scale),
	}
	switch {
	case t.Exec <= 0:
		return nil, fmt.Errorf("task %d: execution time %v is not positive after scaling: %w", id, execTime, ErrInvalidTaskParameters)
	case t.Period <= 0:
		return nil, fmt.Errorf("task %d: period %v is not positive after scaling: %w", id, period, ErrInvalidTaskParameters)
	case t.Deadline <= 0:
		return nil, fmt.Errorf("task %d: deadline %v is not positive after scaling: %w", id, deadline, ErrInvalidTaskParameters)
	}
	return t, nil
}

func toTicks(v float64, scale int) int64 {
	return int64(math.Round(v * float64(scale)))
}

// Less reports whether t has strictly higher RM priority than o: shorter
// period first, equal periods broken by smaller id. A strict total order
// given unique ids, which is what makes job selection deterministic.
func (t *Task) Less(o *Task) bool {
	if t.Period != o.Period {
		return t.Period < o.Period
	}
	return t.ID < o.ID
}
