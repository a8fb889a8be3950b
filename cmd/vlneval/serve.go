package main

import (
	"github.com/spf13/cobra"

	"github.com/ayshrv/visitron/server"
	"github.com/ayshrv/visitron/telemetry"
)

func newServeCmd(f *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve scoring over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			logger := newLogger(cfg.Log, cmd.ErrOrStderr())
			rec := telemetry.New()

			ev, err := buildEvaluator(cmd.Context(), cfg, logger, rec)
			if err != nil {
				return err
			}

			return server.New(ev, rec, logger).ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (host:port)")

	return cmd
}
