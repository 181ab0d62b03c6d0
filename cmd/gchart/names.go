package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/gchart/internal/chart"
	"github.com/dgnsrekt/gchart/internal/colour"
)

func newNamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "names types|colours",
		Short:     "List the chart type or colour names a spec may use",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"types", "colours"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "types":
				for _, name := range chart.TypeNames() {
					code, _ := chart.TypeCode(name)
					writeLine(cmd, "%s\t%s", name, code)
				}
			case "colours", "colors":
				for _, name := range colour.Names() {
					hex, err := colour.Normalize(name)
					if err != nil {
						return err
					}
					writeLine(cmd, "%s\t%s", name, hex)
				}
			default:
				return fmt.Errorf("unknown name list %q (want types or colours)", args[0])
			}
			return nil
		},
	}
}
