package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newSaveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [file.json]",
		Short: "Write the current net back out in the save-file format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			netType, err := parseNetType(cmd.Flag("type").Value.String())
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if err := a.load(netType, path); err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			var w io.Writer = os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("save: %w", err)
				}
				defer f.Close()
				w = f
			}

			if !a.table.Save(a.h, w) {
				return fmt.Errorf("save: net is empty or handle is invalid")
			}
			return nil
		},
	}

	cmd.Flags().String("output", "", "output file (stdout if omitted)")

	return cmd
}
