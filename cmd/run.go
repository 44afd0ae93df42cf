package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/skejul/app"
	"github.com/kilianp07/skejul/core/pipeline"
)

var (
	inputPath string
	outDir    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate and export timetables for a school description",
	RunE:  runPipeline,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Extract and validate a school description without generating",
	RunE:  validateInput,
}

func init() {
	for _, c := range []*cobra.Command{runCmd, validateCmd} {
		c.Flags().StringVarP(&inputPath, "input", "i", "-", "description file, - reads stdin")
		rootCmd.AddCommand(c)
	}
	runCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory, overrides output.dir")
}

func readInput(cmd *cobra.Command) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if inputPath != "" && inputPath != "-" {
		f, err := os.Open(inputPath)
		if err != nil {
			return "", err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return "", errors.New("empty school description")
	}
	return text, nil
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	input, err := readInput(cmd)
	if err != nil {
		return err
	}
	return withService(ctx, cfg, app.Options{Export: true}, func(svc *app.Service) error {
		state, err := svc.Pipeline.Run(ctx, input)
		if err != nil {
			return explain(cmd.ErrOrStderr(), err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "run %s: %d class groups\n", state.RunID, len(state.Timetables))
		for _, f := range state.Files {
			fmt.Fprintln(out, f)
		}
		return nil
	})
}

func validateInput(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	input, err := readInput(cmd)
	if err != nil {
		return err
	}
	return withService(ctx, cfg, app.Options{}, func(svc *app.Service) error {
		state, err := svc.Pipeline.Check(ctx, input)
		if err != nil {
			return explain(cmd.ErrOrStderr(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "valid: %d days, %d periods, class groups %s\n",
			len(state.Data.Days), len(state.Data.Periods), strings.Join(pipeline.GroupNames(state.Data), ", "))
		return nil
	})
}

// explain prints the missing fields of a rejected description.
func explain(w io.Writer, err error) error {
	var verr *pipeline.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(w, "The description is missing:")
		for _, m := range verr.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
	}
	return err
}
