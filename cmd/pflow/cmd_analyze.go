package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file.json]",
		Short: "Report structural and Max-Plus properties of a net",
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

			fmt.Printf("places: %d\n", a.table.CountPlaces(a.h))
			fmt.Printf("transitions: %d\n", a.table.CountTransitions(a.h))

			isEG, _ := a.table.IsEventGraph(a.h)
			fmt.Printf("event graph: %v\n", isEG)
			if !isEG {
				return nil
			}

			if dater, ok := a.table.DaterForm(a.h, true, true); ok {
				fmt.Println()
				fmt.Println(dater)
			}
			if counter, ok := a.table.CounterForm(a.h, true, true); ok {
				fmt.Println()
				fmt.Println(counter)
			}

			result, ok := a.table.CriticalCycle(a.h)
			if !ok {
				fmt.Println("\ncritical cycle: net has boundary transitions, skipping")
				return nil
			}
			fmt.Println()
			fmt.Println("critical cycle:")
			fmt.Printf("  cycle time: %v\n", result.CycleTime)
			fmt.Printf("  bias:       %v\n", result.Bias)
			return nil
		},
	}

	return cmd
}
