package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"storecounter/internal/config"
	"storecounter/internal/dto"
	"storecounter/internal/service/storage"
)

func processCommand(cfg *config.Config, open opener) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Count visitors in one image or video and store the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if name == "" {
				name = filepath.Base(path)
			}

			a, err := open(true)
			if err != nil {
				return err
			}
			defer a.Close()

			rec, err := a.Pipeline().Process(cmd.Context(), path, name)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(dto.ProcessResponse{
				Count:     rec.Count,
				ResultURL: storage.ResultURL(rec.AnnotatedImagePath),
				Filename:  rec.SourceFilename,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			fmt.Fprintf(cmd.ErrOrStderr(), "Annotated image: %s\n", rec.AnnotatedImagePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Declared filename, decides image/video handling (defaults to the file's base name)")
	cmd.Flags().StringVar(&cfg.TargetClass, "target", cfg.TargetClass, "Detection label to count")
	cmd.Flags().Float64Var(&cfg.DetectionThreshold, "threshold", cfg.DetectionThreshold, "Minimum detection confidence")
	return cmd
}
