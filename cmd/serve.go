package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/skejul/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the timetable API",
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return withService(ctx, cfg, app.Options{}, func(svc *app.Service) error {
		return svc.Serve(ctx)
	})
}
