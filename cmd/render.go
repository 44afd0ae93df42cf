package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/skejul/core/grid"
	"github.com/kilianp07/skejul/infra/logger"
	"github.com/kilianp07/skejul/pkg/export"
)

var renderCmd = &cobra.Command{
	Use:   "render <class_timetables.json>",
	Short: "Render exported class timetables again",
	Args:  cobra.ExactArgs(1),
	RunE:  renderTimetables,
}

func init() {
	renderCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory, overrides output.dir")
	rootCmd.AddCommand(renderCmd)
}

func renderTimetables(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	tt, err := export.ReadClassTimetables(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	w := export.NewWriter(cfg.Output.Options(), logger.New("export"))
	var failed int
	for _, g := range grid.Build(nil, tt, cfg.School.Weekdays()) {
		files, err := w.ExportClass(g)
		for _, p := range files {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", g.Class, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d class groups not fully rendered", failed)
	}
	return nil
}
