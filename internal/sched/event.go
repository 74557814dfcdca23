package sched

// EventKind labels what the simulator did at a given tick.
type EventKind int

const (
	EventRelease EventKind = iota
	EventDispatch
	EventPreempt
	EventFinish
	EventDeadlineMiss
	EventIdle
)

// Event is one row of the optional simulation trace.
type Event struct {
	Tick      int64
	Kind      EventKind
	TaskID    TaskID
	Remaining int64
	Deadline  int64 // absolute
}

func (k EventKind) String() string {
	switch k {
	case EventRelease:
		return "Release"
	case EventDispatch:
		return "Dispatch"
	case EventPreempt:
		return "Preempt"
	case EventFinish:
		return "Finish"
	case EventDeadlineMiss:
		return "DeadlineMiss"
	case EventIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}
