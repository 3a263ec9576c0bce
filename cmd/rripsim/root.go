package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/rrip/internal/replay"
	"github.com/sarchlab/rrip/mem/cache"
)

func newRootCmd() *cobra.Command {
	opts := defaultOptions()

	root := &cobra.Command{
		Use:          "rripsim",
		Short:        "Replay synthetic workloads against cache replacement policies",
		SilenceUsage: true,
	}
	opts.bindFlags(root)

	run := &cobra.Command{
		Use:   "run",
		Short: "Replay a workload with one policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := cache.ParsePolicyKind(opts.policy)
			if err != nil {
				return err
			}

			return replayPolicies(cmd.OutOrStdout(), cmd.ErrOrStderr(),
				opts, []cache.PolicyKind{kind})
		},
	}
	run.Flags().StringVar(&opts.policy, "policy", opts.policy, "replacement policy: srrip or lru")

	compare := &cobra.Command{
		Use:   "compare",
		Short: "Replay a workload with every policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return replayPolicies(cmd.OutOrStdout(), cmd.ErrOrStderr(),
				opts, cache.PolicyKinds())
		},
	}

	root.AddCommand(run, compare)

	return root
}

func newLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return logger, nil
}

func replayPolicies(
	out, logOut io.Writer,
	opts options,
	kinds []cache.PolicyKind,
) error {
	pattern, err := replay.ParsePattern(opts.workload)
	if err != nil {
		return err
	}

	logger, err := newLogger(opts.logLevel, logOut)
	if err != nil {
		return err
	}

	var rec *replay.SQLiteRecorder
	if opts.db != "" {
		rec, err = replay.NewSQLiteRecorder(opts.db)
		if err != nil {
			return err
		}
		atexit.Register(func() { _ = rec.Close() })
		defer rec.Close()
	}

	for _, kind := range kinds {
		res, err := replay.Run(replay.Config{
			Policy:    kind,
			RPVMax:    opts.rpvMax,
			NumSets:   opts.sets,
			NumWays:   opts.ways,
			BlockSize: opts.blockSize,
			Workload: replay.WorkloadConfig{
				Pattern:     pattern,
				NumAccesses: opts.accesses,
				WorkingSet:  opts.workingSet,
				WriteRatio:  opts.writeRatio,
				Seed:        opts.seed,
			},
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}

		printResult(out, res)

		if rec != nil {
			if err := rec.Record(res); err != nil {
				return err
			}
		}
	}

	return nil
}

func printResult(out io.Writer, res replay.Result) {
	header := color.New(color.FgCyan, color.Bold)
	header.Fprintf(out, "%s on %s (%d sets x %d ways)\n",
		res.Policy, res.Workload, res.NumSets, res.NumWays)

	fmt.Fprintf(out, "  run        %s\n", res.RunID)
	fmt.Fprintf(out, "  accesses   %d\n", res.Accesses)
	fmt.Fprintf(out, "  hits       %d\n", res.Hits)
	fmt.Fprintf(out, "  misses     %d\n", res.Misses)
	fmt.Fprintf(out, "  evictions  %d\n", res.Evictions)
	fmt.Fprintf(out, "  set misses %.2f ± %.2f\n", res.SetMissMean, res.SetMissStdDev)
	color.New(color.FgGreen).Fprintf(out, "  hit rate   %.2f%%\n", 100*res.HitRate)
}
