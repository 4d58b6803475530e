package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"storecounter/internal/service/report"
)

func reportCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:       "report <pdf|excel>",
		Short:     "Write a report of the whole history",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"pdf", "excel"},
		RunE: func(cmd *cobra.Command, args []string) error {
			encoding, err := report.ParseEncoding(args[0])
			if err != nil {
				return err
			}

			a, err := open(false)
			if err != nil {
				return err
			}
			defer a.Close()

			path, err := a.Generator().GenerateFromStore(cmd.Context(), encoding, a.History())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
