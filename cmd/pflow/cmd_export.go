package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pflow-go/petrinet/export"
	"github.com/pflow-go/petrinet/petri"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <format> [file.json]",
		Short: "Export a net to graphviz, latex, drawio, symfony, grafcet, julia or pneditor",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			netType, err := parseNetType(cmd.Flag("type").Value.String())
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			if err := a.load(netType, path); err != nil {
				return err
			}
			net, ok := a.table.Get(a.h)
			if !ok {
				return fmt.Errorf("export: invalid handle")
			}

			output, _ := cmd.Flags().GetString("output")
			format := args[0]

			if format == "pneditor" {
				return exportPNEditor(net, output)
			}

			var w io.Writer = os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "graphviz":
				return export.WriteGraphviz(net, w)
			case "latex":
				return export.WriteLaTeX(net, w)
			case "drawio":
				return export.WriteDrawIO(net, w)
			case "symfony":
				return export.WriteSymfonyYAML(net, w)
			case "grafcet":
				return export.WriteGrafcetCpp(net, w)
			case "julia":
				return export.WriteJulia(net, w)
			default:
				return fmt.Errorf("export: unknown format %q", format)
			}
		},
	}

	cmd.Flags().String("output", "", "output file (stdout if omitted, base path for pneditor)")

	return cmd
}

// exportPNEditor writes the format's four sibling files (base.pns, base.pnl,
// base.pnkp, base.pnk); base defaults to "net" when --output is omitted.
func exportPNEditor(net *petri.Net, base string) error {
	if base == "" {
		base = "net"
	}
	pns, err := os.Create(base + ".pns")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer pns.Close()
	pnl, err := os.Create(base + ".pnl")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer pnl.Close()
	pnkp, err := os.Create(base + ".pnkp")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer pnkp.Close()
	pnk, err := os.Create(base + ".pnk")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer pnk.Close()
	return export.WritePNEditor(net, pns, pnl, pnkp, pnk)
}
