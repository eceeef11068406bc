package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dfryer1193/blogify/blog/domain"
	gh "github.com/dfryer1193/blogify/shared/github"
	"github.com/dfryer1193/blogify/shared/localfs"
)

func newImportCmd() *cobra.Command {
	var dir, repo, glob string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import Markdown posts from a directory or GitHub repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (dir == "") == (repo == "") {
				return fmt.Errorf("exactly one of --dir or --github is required")
			}

			app, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if glob == "" {
				glob = app.Cfg.GetString("import.glob")
			}

			var src domain.SourceRepository
			if dir != "" {
				if src, err = localfs.NewDirSource(dir); err != nil {
					return err
				}
			} else {
				owner, name, ok := strings.Cut(repo, "/")
				if !ok || owner == "" || name == "" {
					return fmt.Errorf("--github must look like owner/repo, got %q", repo)
				}
				src = gh.NewGithubSourceRepository(app.Cfg.GetString("import.github.token"), owner, name, "")
			}

			report, err := app.Importer.Import(cmd.Context(), src, glob)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported=%d failed=%d source=%s\n", report.Imported, report.Failed, report.Source)
			if report.Failed > 0 {
				return fmt.Errorf("%d file(s) failed to import", report.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to import from")
	cmd.Flags().StringVar(&repo, "github", "", "GitHub repository to import from (owner/repo)")
	cmd.Flags().StringVar(&glob, "glob", "", "doublestar pattern of files to import (default import.glob)")

	return cmd
}
