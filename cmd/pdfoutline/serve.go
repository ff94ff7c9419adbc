package main

import (
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-outline/internal/convert"
	"github.com/thywilljoshua/pdf-outline/internal/server"
)

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve outline extraction over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Listen = addr
			}
			conf, cleanup, err := a.pipelineConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			srv := server.New(convert.NewProcessor(conf), server.Options{
				Addr:           a.cfg.Listen,
				MaxBytes:       a.cfg.MaxUploadBytes(),
				AllowedOrigins: a.cfg.CORSOrigins,
				Logger:         a.logger,
			})
			return srv.ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	return cmd
}
