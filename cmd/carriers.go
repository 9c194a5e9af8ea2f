package main

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/AshokDevireddy/persistency/internal/carrier"
)

var carriersCmd = &cobra.Command{
	Use:   "carriers",
	Short: "List registered carrier adapters",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Key", "Name", "Format", "Header Row", "Statuses", "Lapse Signal"})

		var data [][]string
		for _, key := range carrier.Keys() {
			spec, err := carrier.Get(key)
			if err != nil {
				return err
			}
			signal := "yes"
			if spec.Lapse.Disabled {
				signal = "none declared"
			}
			data = append(data, []string{
				spec.Key,
				spec.Name,
				string(spec.Format),
				strconv.Itoa(spec.HeaderRow),
				strconv.Itoa(len(spec.Vocabulary.Rules)),
				signal,
			})
		}
		if err := table.Bulk(data); err != nil {
			return eris.Wrap(err, "carriers: table rows")
		}
		if err := table.Render(); err != nil {
			return eris.Wrap(err, "carriers: render")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(carriersCmd)
}
