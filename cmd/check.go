package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codemateteam/php-handbook-sub005/internal/content"
	"github.com/codemateteam/php-handbook-sub005/internal/linkcheck"
	"github.com/codemateteam/php-handbook-sub005/internal/navigation"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validates the site config and reports dead internal links",
	Long: `The check command validates the site config and looks for internal links
without a matching document. Unlike build, it reports dead links even when the
site sets ignoreDeadLinks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logs.GetLogger("check")
		site, err := navigation.LoadFile(appConfig.SiteConfig)
		if err != nil {
			return navigation.Categorize(err)
		}
		docs, err := content.Collect(appConfig.ContentDir, logger)
		if err != nil {
			return err
		}

		dead := linkcheck.Check(site, content.NewIndex(docs))
		out := cmd.OutOrStdout()
		for _, d := range dead {
			fmt.Fprintln(out, d.String())
		}
		if len(dead) == 0 {
			fmt.Fprintf(out, "ok: %d sidebar pages, %d documents, no dead links\n", navigation.New(site).Len(), len(docs))
			return nil
		}
		return linkcheck.Enforce(dead, false, logger)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
