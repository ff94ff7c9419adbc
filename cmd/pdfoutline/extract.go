package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-outline/internal/convert"
	"github.com/thywilljoshua/pdf-outline/internal/outline"
)

func extractCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "extract <pdf>",
		Short: "Print the outline of a single PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "json", "markdown", "tree":
			default:
				return fmt.Errorf("unsupported --format %q (json|markdown|tree)", format)
			}
			conf, cleanup, err := a.pipelineConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			// Failures are logged by the processor and still print the
			// empty result, matching the batch output.
			res, _ := convert.NewProcessor(conf).Process(cmd.Context(), args[0])

			out := cmd.OutOrStdout()
			switch format {
			case "markdown":
				_, err = fmt.Fprint(out, convert.RenderMarkdown(res))
				return err
			case "tree":
				nodes := outline.Nest(res.Outline)
				if nodes == nil {
					nodes = []*outline.Node{}
				}
				return convert.WriteJSON(out, struct {
					Title   string          `json:"title"`
					Outline []*outline.Node `json:"outline"`
				}{res.Title, nodes})
			default:
				return convert.WriteJSON(out, res)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json|markdown|tree")
	return cmd
}
