package main

import (
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-outline/internal/convert"
)

func batchCmd(a *app) *cobra.Command {
	var (
		in, out   string
		workers   int
		cachePath string
		validate  bool
		aiName    string
		aiModel   string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Write <name>.json for every PDF in the input directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("in") {
				a.cfg.InputDir = in
			}
			if f.Changed("out") {
				a.cfg.OutputDir = out
			}
			if f.Changed("workers") {
				a.cfg.Workers = workers
			}
			if f.Changed("cache") {
				a.cfg.CachePath = cachePath
			}
			if f.Changed("validate") {
				a.cfg.Preflight = validate
			}
			if f.Changed("ai") {
				a.cfg.AI.Provider = aiName
			}
			if f.Changed("ai-model") {
				a.cfg.AI.Model = aiModel
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			conf, cleanup, err := a.pipelineConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			sum, err := convert.Run(cmd.Context(), conf)
			a.logger.Info("batch finished", "found", sum.Found, "written", sum.Written, "failed", sum.Failed)
			return err
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "input directory (default /app/input)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default /app/output)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "documents processed in parallel (default: number of CPUs)")
	cmd.Flags().StringVar(&cachePath, "cache", "", "SQLite file caching results by content digest")
	cmd.Flags().BoolVar(&validate, "validate", false, "run pdfcpu validation before extraction")
	cmd.Flags().StringVar(&aiName, "ai", "", "text repair provider: off|gemini (needs GOOGLE_API_KEY)")
	cmd.Flags().StringVar(&aiModel, "ai-model", "", "model used for text repair")
	return cmd
}
