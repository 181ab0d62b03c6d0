package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dgnsrekt/gchart/internal/chart"
	"github.com/dgnsrekt/gchart/internal/dataload"
)

func newImportCmd() *cobra.Command {
	var (
		sheet  string
		format string
		asYAML bool
	)
	cmd := &cobra.Command{
		Use:   "import data.csv|data.xml|data.xlsx",
		Short: "Read series from CSV, XML or an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if format == "" {
				format = path
			}
			f, ok := dataload.DetectFormat(format)
			if !ok {
				return fmt.Errorf("cannot tell the format of %s; use --format", path)
			}
			var series []chart.Series
			if f == dataload.XLSX && sheet != "" {
				fh, err := os.Open(path)
				if err != nil {
					return err
				}
				defer fh.Close()
				series, err = dataload.FromXLSX(fh, sheet)
				if err != nil {
					return err
				}
			} else {
				body, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				if series, err = dataload.Load(f, body); err != nil {
					return err
				}
			}

			out := struct {
				Series []chart.Series `json:"series" yaml:"series"`
			}{series}
			if asYAML {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(out)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Workbook sheet (default: first)")
	cmd.Flags().StringVar(&format, "format", "", "csv, xml or xlsx (default: from file name)")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print YAML, ready to paste into a spec file")
	return cmd
}
