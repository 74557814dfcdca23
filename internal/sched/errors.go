package sched

import "errors"

var (
	// ErrInvalidTaskParameters marks a task whose scaled execution time,
	// period, or deadline is not strictly positive.
	ErrInvalidTaskParameters = errors.New("invalid task parameters")

	// ErrEmptyWorkload marks a task set with nothing in it.
	ErrEmptyWorkload = errors.New("empty workload")
)
