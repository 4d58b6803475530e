package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storecounter/internal/service/report"
)

func historyCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print every stored counting result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(false)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.History().ListAll(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIMESTAMP\tFILENAME\tCOUNT")
			for _, rec := range records {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", rec.ID, rec.Timestamp.Format(report.TimestampLayout), rec.SourceFilename, rec.Count)
			}
			return w.Flush()
		},
	}
}
