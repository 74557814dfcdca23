// internal/sched/simulator.go

package sched

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// job is one released instance of a task. Jobs live only inside the ready
// tree; they hold a read-only back-reference to their task and nothing else.
type job struct {
	task      *Task
	remaining int64
	deadline  int64 // absolute
	release   int64
}

// nodeKey orders the ready tree by RM priority. The release tick
// disambiguates two live jobs of the same task (deadline longer than the
// period), keeping the order strict.
type nodeKey struct {
	period  int64
	id      TaskID
	release int64
}

// nodeKey comparator for the red-black tree.
func cmp(a, b any) int {
	ka, kb := a.(nodeKey), b.(nodeKey)
	switch {
	case ka.period < kb.period:
		return -1
	case ka.period > kb.period:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	case ka.release < kb.release:
		return -1
	case ka.release > kb.release:
		return 1
	default:
		return 0
	}
}

// Result is the outcome of one simulation run. Preemptions has an entry for
// every task id; when Feasible is false the counts are whatever had
// accumulated up to the deadline miss.
type Result struct {
	Feasible    bool
	Preemptions map[TaskID]int64
	HyperPeriod int64
}

// Simulator replays rate-monotonic scheduling of a fixed task set on one
// processor over a logical integer clock: one hyper-period plus enough slack
// to see whether jobs released near its end still meet their deadlines.
type Simulator struct {
	tasks []*Task

	// logging-related
	csvFile   *os.File
	csvWriter *csv.Writer
}

// New validates the task set. No simulation state is built until Run.
func New(tasks []*Task) (*Simulator, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyWorkload
	}
	return &Simulator{tasks: tasks}, nil
}

// EnableCSVLogging opens the given file path for CSV logging of trace
// events. Must be called before Run().
func (s *Simulator) EnableCSVLogging(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)

	// write header
	w.Write([]string{"tick", "event", "task_id", "remaining", "deadline"})
	w.Flush()
	s.csvFile = f
	s.csvWriter = w
	return nil
}

// Run simulates the task set and reports feasibility plus how often each
// task was preempted within the first hyper-period. Deterministic: the ready
// tree is ordered by the strict (period, id, release) key, never by
// insertion order.
func (s *Simulator) Run() Result {
	res := s.run()

	if s.csvFile != nil {
		s.csvWriter.Flush()
		s.csvFile.Close()
		s.csvFile = nil
		s.csvWriter = nil
	}

	return res
}

func (s *Simulator) run() Result {
	hyper := hyperPeriod(s.tasks)
	horizon := hyper + maxDeadline(s.tasks)

	ready := redblacktree.NewWith(cmp)
	counts := make(map[TaskID]int64, len(s.tasks))
	for _, t := range s.tasks {
		counts[t.ID] = 0
	}

	// current is the job that executed in the previous tick and still has
	// work left. It is forgotten the instant a job completes, so a switch
	// caused by completion is never mistaken for a preemption.
	var current *job

	for tick := int64(0); tick < horizon; tick++ {
		// one full hyper-period observed and nothing outstanding
		if tick >= hyper && ready.Empty() {
			break
		}

		// release: every task whose period divides the clock
		for _, t := range s.tasks {
			if tick%t.Period == 0 {
				j := &job{task: t, remaining: t.Exec, deadline: tick + t.Deadline, release: tick}
				ready.Put(nodeKey{t.Period, t.ID, tick}, j)
				s.emit(Event{Tick: tick, Kind: EventRelease, TaskID: t.ID, Remaining: j.remaining, Deadline: j.deadline})
			}
		}

		// deadline check: every job still in the tree has work left
		if missed := firstMiss(ready, tick); missed != nil {
			s.emit(Event{Tick: tick, Kind: EventDeadlineMiss, TaskID: missed.task.ID, Remaining: missed.remaining, Deadline: missed.deadline})
			return Result{Feasible: false, Preemptions: counts, HyperPeriod: hyper}
		}

		// selection: leftmost of the ready tree, or an idle tick
		node := ready.Left()
		if node == nil {
			s.emit(Event{Tick: tick, Kind: EventIdle})
			continue
		}
		chosen := node.Value.(*job)

		// preemption accounting: only displacement of a job with work
		// left, and only inside the hyper-period window
		if current != nil && current != chosen {
			if tick < hyper {
				counts[current.task.ID]++
			}
			s.emit(Event{Tick: tick, Kind: EventPreempt, TaskID: current.task.ID, Remaining: current.remaining, Deadline: current.deadline})
		}
		if current != chosen {
			s.emit(Event{Tick: tick, Kind: EventDispatch, TaskID: chosen.task.ID, Remaining: chosen.remaining, Deadline: chosen.deadline})
		}

		// execute the chosen job for this tick
		chosen.remaining--
		if chosen.remaining == 0 {
			ready.Remove(node.Key)
			current = nil
			s.emit(Event{Tick: tick, Kind: EventFinish, TaskID: chosen.task.ID, Deadline: chosen.deadline})
		} else {
			current = chosen
		}
	}

	return Result{Feasible: true, Preemptions: counts, HyperPeriod: hyper}
}

// firstMiss returns a job whose absolute deadline has passed, or nil.
func firstMiss(ready *redblacktree.Tree, tick int64) *job {
	it := ready.Iterator()
	for it.Next() {
		j := it.Value().(*job)
		if tick >= j.deadline {
			return j
		}
	}
	return nil
}

func (s *Simulator) emit(ev Event) {
	if s.csvWriter == nil {
		return
	}
	rec := []string{
		strconv.FormatInt(ev.Tick, 10),
		ev.Kind.String(),
		strconv.FormatInt(int64(ev.TaskID), 10),
		strconv.FormatInt(ev.Remaining, 10),
		strconv.FormatInt(ev.Deadline, 10),
	}
	s.csvWriter.Write(rec)
	s.csvWriter.Flush()
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// hyperPeriod folds lcm(a,b) = a/gcd(a,b)*b left to right across the task
// periods. Exact within int64; callers own keeping the result in range.
func hyperPeriod(tasks []*Task) int64 {
	h := tasks[0].Period
	for _, t := range tasks[1:] {
		h = h / gcd(h, t.Period) * t.Period
	}
	return h
}

func maxDeadline(tasks []*Task) int64 {
	max := tasks[0].Deadline
	for _, t := range tasks[1:] {
		if t.Deadline > max {
			max = t.Deadline
		}
	}
	return max
}
