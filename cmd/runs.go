package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/skejul/core/runlog"
	"github.com/kilianp07/skejul/pkg/export"
)

var (
	runsSince      time.Duration
	runsClassGroup string
	runsValidated  string
	runsLimit      int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded pipeline runs",
	RunE:  listRuns,
}

func init() {
	runsCmd.Flags().DurationVar(&runsSince, "since", 0, "only runs newer than this duration")
	runsCmd.Flags().StringVar(&runsClassGroup, "class-group", "", "only runs that generated this class group")
	runsCmd.Flags().StringVar(&runsValidated, "validated", "", "filter on validation outcome: true or false")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 0, "keep the most recent N runs")
	rootCmd.AddCommand(runsCmd)
}

func listRuns(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	q := runlog.Query{ClassGroup: runsClassGroup, Limit: runsLimit}
	if runsSince > 0 {
		q.Start = time.Now().Add(-runsSince)
	}
	switch runsValidated {
	case "":
	case "true", "false":
		v := runsValidated == "true"
		q.Validated = &v
	default:
		return fmt.Errorf("invalid --validated value %q", runsValidated)
	}

	store, err := runlog.Open(cfg.RunLog.Options())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	recs, err := store.Query(cmd.Context(), q)
	if err != nil {
		return err
	}
	if recs == nil {
		recs = []runlog.RunRecord{}
	}
	return export.WriteJSON(cmd.OutOrStdout(), recs)
}
