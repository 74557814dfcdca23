package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rmsim/internal/sched"
	"rmsim/internal/workload"
)

func main() {
	if err := buildRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRoot() *cobra.Command {
	var (
		configPath string
		scale      int
		tracePath  string
	)

	cmd := &cobra.Command{
		Use:   "rmsim <workload-file>",
		Short: "Rate-monotonic schedulability check by exact simulation",
		Long: `rmsim simulates one hyper-period of fixed-priority rate-monotonic
scheduling over an integer tick clock and reports whether the task set is
feasible, plus how often each task gets preempted.

The workload file holds one task per line: "exec_time,period,deadline" as
real numbers in a consistent unit. Tasks are prioritized by shorter period,
ties broken by input order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := sched.Load(configPath)
			if cmd.Flags().Changed("scale") {
				cfg.Scale = scale
			}
			if cmd.Flags().Changed("trace") {
				cfg.TraceCSV = tracePath
			}

			tasks, err := workload.Load(args[0], cfg.Scale)
			if err != nil {
				return err
			}

			sim, err := sched.New(tasks)
			if err != nil {
				return err
			}
			if cfg.TraceCSV != "" {
				if err := sim.EnableCSVLogging(cfg.TraceCSV); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), render(sim.Run(), len(tasks)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	cmd.Flags().IntVar(&scale, "scale", 1000, "integer tick scale applied to input values")
	cmd.Flags().StringVar(&tracePath, "trace", "", "write a CSV trace of scheduler events to this path")
	return cmd
}

// render produces the verdict line ("1" or "0") and, when feasible, the
// preemption counts in task id order. Counts are not meaningful for an
// infeasible set, so only the verdict is printed.
func render(res sched.Result, n int) string {
	if !res.Feasible {
		return "0"
	}
	counts := make([]string, n)
	for i := range counts {
		counts[i] = strconv.FormatInt(res.Preemptions[sched.TaskID(i)], 10)
	}
	return "1\n" + strings.Join(counts, ",")
}
