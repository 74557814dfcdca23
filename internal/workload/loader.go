// Package workload parses flat text task records into the scheduler's task
// model.
package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"rmsim/internal/sched"
)

// ErrMalformedRecord marks an input line that is not three real numbers
// separated by commas.
var ErrMalformedRecord = errors.New("malformed record")

// Load reads a workload file, one task per line as
// "exec_time,period,deadline" in a consistent real unit. Task ids are
// assigned by input order.
func Load(path string, scale int) ([]*sched.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tasks, err := Parse(f, scale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, nil
}

// Parse reads task records from r. Blank lines are skipped.
func Parse(r io.Reader, scale int) ([]*sched.Task, error) {
	var tasks []*sched.Task

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d %q: want 3 fields, got %d: %w", lineNo, line, len(fields), ErrMalformedRecord)
		}

		var vals [3]float64
		for i, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d %q: %w", lineNo, line, ErrMalformedRecord)
			}
			vals[i] = v
		}

		t, err := sched.NewTask(sched.TaskID(len(tasks)), vals[0], vals[1], vals[2], scale)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(tasks) == 0 {
		return nil, sched.ErrEmptyWorkload
	}
	return tasks, nil
}
