package command

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/viant/marker"
)

// New creates the marker command writing event lines to out.
func New(out io.Writer) *cobra.Command {
	var (
		configFile string
		traceFile  string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:   "marker <workerCount> <examListPath> <rubricPath>",
		Short: "Mark a list of exams with a pool of graders sharing one rubric",
		Long: `marker launches workerCount graders that review the shared rubric, claim
and mark the questions of the current exam, and advance together through the
exam list until every exam is marked.`,
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, err := parseWorkers(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			config := marker.DefaultConfig()
			if configFile != "" {
				if config, err = marker.LoadConfig(ctx, nil, configFile); err != nil {
					return err
				}
			}
			config.Workers = workers
			if verbose {
				config.Verbose = true
			}
			options := []marker.Option{marker.WithConfig(config), marker.WithLogWriter(out)}
			if traceFile != "" {
				options = append(options, marker.WithTracing(traceFile))
			}
			if _, err = marker.New(options...).Run(ctx, args[1], args[2]); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.Flags().StringVar(&configFile, "config", "", "YAML file with worker timing overrides")
	cmd.Flags().StringVar(&traceFile, "trace-file", "", "write OpenTelemetry spans to this file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log claims, retries and rubric diffs")
	return cmd
}

func parseWorkers(arg string) (int, error) {
	workers, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid worker count %q: %w", arg, err)
	}
	if workers < 1 {
		return 0, fmt.Errorf("worker count must be > 0: %d", workers)
	}
	return workers, nil
}
