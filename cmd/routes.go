package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roots-trade/pagesmith/internal/router"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the pretty-URL route table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		rt := router.New(cfg.Server)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ROUTE\tFILE\tSTATUS")
		for _, entry := range rt.Table() {
			status := 200
			if d := rt.Decide(entry[0]); d.Status != 0 {
				status = d.Status
			}
			fmt.Fprintf(w, "%s\t%s\t%d\n", entry[0], entry[1], status)
		}
		fmt.Fprintf(w, "*\t%s\t%d\n", cfg.Server.NotFoundPage, 404)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
