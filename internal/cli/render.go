package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/dfryer1193/blogify/blog/render"
)

func newRenderCmd() *cobra.Command {
	var contentType, title string

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render post content to HTML (reads stdin without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := getConfig(cmd)
			if err != nil {
				return err
			}

			ct, err := domain.ParseContentType(contentType)
			if err != nil {
				return err
			}

			var content []byte
			if len(args) == 1 {
				content, err = os.ReadFile(args[0])
			} else {
				content, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			pipeline := render.NewPipeline(render.PipelineConfig{
				Highlight: v.GetBool("render.highlight"),
				TrustHTML: v.GetBool("render.trust_html"),
				LinkBase:  v.GetString("render.link_base"),
			})

			_, err = fmt.Fprint(cmd.OutOrStdout(), pipeline.Render(string(content), ct, title))
			return err
		},
	}

	cmd.Flags().StringVar(&contentType, "type", "markdown", "content type: markdown, html or plain")
	cmd.Flags().StringVar(&title, "title", "", "post title; a matching leading heading is removed")

	return cmd
}
