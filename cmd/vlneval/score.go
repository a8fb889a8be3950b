package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayshrv/visitron/telemetry"
	"github.com/ayshrv/visitron/trajectory"
)

func newScoreCmd(f *rootFlags) *cobra.Command {
	var (
		output   string
		textfile string
		summary  bool
	)
	cmd := &cobra.Command{
		Use:   "score <submissions.json>",
		Short: "Score a submission file and print the report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("metrics-textfile") {
				cfg.Metrics.Textfile = textfile
			}
			logger := newLogger(cfg.Log, cmd.ErrOrStderr())
			rec := telemetry.New()

			ev, err := buildEvaluator(cmd.Context(), cfg, logger, rec)
			if err != nil {
				return err
			}
			subs, err := trajectory.LoadSubmissions(args[0])
			if err != nil {
				return err
			}

			rep, scoreErr := ev.Score(cmd.Context(), subs)
			if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				logger.Warn("metrics textfile not written", "path", cfg.Metrics.Textfile, "error", err)
			}
			if scoreErr != nil {
				return scoreErr
			}

			var v any = rep
			if summary {
				v = rep.Summary
			}
			w := cmd.OutOrStdout()
			if output != "" {
				fh, err := os.Create(output)
				if err != nil {
					return err
				}
				defer fh.Close()
				w = fh
			}

			return writeReport(w, v)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&textfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")
	cmd.Flags().BoolVar(&summary, "summary-only", false, "print only the aggregate summary")

	return cmd
}

func writeReport(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
