package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file.json]",
		Short: "Check a net's structure and report accumulated diagnostics",
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

			empty, ok := a.table.IsEmpty(a.h)
			if !ok {
				return fmt.Errorf("validate: invalid handle")
			}
			if empty {
				return fmt.Errorf("validate: net has no places or transitions")
			}

			net, _ := a.table.Get(a.h)
			fmt.Printf("places: %d, transitions: %d, arcs: %d\n",
				len(net.Places), len(net.Transitions), len(net.Arcs))

			if len(net.Diagnostics) == 0 {
				fmt.Println("no diagnostics recorded")
				return nil
			}
			fmt.Println("diagnostics:")
			for _, d := range net.Diagnostics {
				fmt.Printf("  - %s\n", d)
			}
			return fmt.Errorf("validate: %d diagnostic message(s) recorded", len(net.Diagnostics))
		},
	}

	return cmd
}
