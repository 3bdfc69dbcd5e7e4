package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStepCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step [file.json]",
		Short: "Fire enabled transitions for one or more rounds",
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

			count, _ := cmd.Flags().GetInt("count")
			net, ok := a.table.Get(a.h)
			if !ok {
				return fmt.Errorf("step: invalid handle")
			}
			for i := 0; i < count; i++ {
				fired := net.Step()
				fmt.Printf("round %d: %d transition(s) fired\n", i+1, fired)
				if fired == 0 {
					break
				}
			}
			fmt.Println("marking:", net.Tokens())
			return nil
		},
	}

	cmd.Flags().Int("count", 1, "number of rounds to fire")

	return cmd
}
