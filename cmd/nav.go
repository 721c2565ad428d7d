package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/codemateteam/php-handbook-sub005/internal/model"
	"github.com/codemateteam/php-handbook-sub005/internal/navigation"
)

var navPage string

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Prints the page order derived from the sidebar",
	Long: `The nav command loads the site config and prints the flattened sidebar,
the order used for previous/next links. With --page it prints only the
neighbours of that page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := navigation.LoadFile(appConfig.SiteConfig)
		if err != nil {
			return navigation.Categorize(err)
		}
		m := navigation.New(site)
		out := cmd.OutOrStdout()

		if navPage == "" {
			for i, item := range m.Flatten() {
				fmt.Fprintf(out, "%3d  %-40s %s\n", i+1, item.Text, m.Resolve(item))
			}
			return nil
		}

		prev, next, ok := m.Pager(navPage)
		if !ok {
			return fmt.Errorf("page %s is not in the sidebar", navPage)
		}
		printNeighbor(out, "prev", prev, m)
		printNeighbor(out, "next", next, m)
		return nil
	},
}

func printNeighbor(out io.Writer, label string, item *model.NavItem, m *navigation.Model) {
	if item == nil {
		fmt.Fprintf(out, "%s: -\n", label)
		return
	}
	fmt.Fprintf(out, "%s: %s %s\n", label, item.Text, m.Resolve(*item))
}

func init() {
	navCmd.Flags().StringVar(&navPage, "page", "", "site-relative link of the page to look up, e.g. /laravel/routing")
	rootCmd.AddCommand(navCmd)
}
