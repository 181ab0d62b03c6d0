package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/gchart/internal/locate"
)

func newLocateCmd() *cobra.Command {
	var x, y float64
	cmd := &cobra.Command{
		Use:   "locate shapes.json",
		Short: "Find the chart region under a point",
		Long:  "Locate reads chof=json shape metadata from a file (or - for stdin) and prints the region containing x,y.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				payload []byte
				err     error
			)
			if args[0] == "-" {
				payload, err = io.ReadAll(cmd.InOrStdin())
			} else {
				payload, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			region, ok, err := locate.LocateJSON(payload, x, y)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no region at %g,%g", x, y)
			}
			data, err := json.Marshal(region)
			if err != nil {
				return err
			}
			writeLine(cmd, "%s", data)
			return nil
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "X coordinate in pixels")
	cmd.Flags().Float64Var(&y, "y", 0, "Y coordinate in pixels")
	return cmd
}
