package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/chart"
)

type compileOptions struct {
	jobs     int
	asJSON   bool
	failWarn bool
}

// loadSpec reads a chart spec from a .json file or YAML otherwise.
func loadSpec(path string) (chart.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return chart.Spec{}, err
	}
	var spec chart.Spec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &spec)
	default:
		err = yaml.Unmarshal(data, &spec)
	}
	if err != nil {
		return chart.Spec{}, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

func newCompileCmd(root *rootOptions) *cobra.Command {
	opts := &compileOptions{}
	cmd := &cobra.Command{
		Use:   "compile spec.yaml [spec.json ...]",
		Short: "Compile spec files into chart URLs",
		Long: `Compile reads each spec file (YAML, or JSON by extension) and prints
one line per file: the file name and its URL. Files compile concurrently;
output keeps argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.compiler()
			if err != nil {
				return err
			}
			results, err := compileFiles(c, args, opts.jobs)
			if err != nil {
				return err
			}
			warned := false
			for i, res := range results {
				for _, w := range res.Warnings {
					warned = true
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", args[i], w)
				}
				if opts.asJSON {
					data, err := json.Marshal(res)
					if err != nil {
						return err
					}
					writeLine(cmd, "%s", data)
					continue
				}
				writeLine(cmd, "%s\t%s", args[i], res.URL)
			}
			if warned && opts.failWarn {
				return fmt.Errorf("compile produced warnings")
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 4, "Files compiled in parallel")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print full compile results as JSON lines")
	cmd.Flags().BoolVar(&opts.failWarn, "strict", false, "Exit non-zero when any file compiles with warnings")
	return cmd
}

// compileFiles compiles every file, stopping at the first failure.
func compileFiles(c *assemble.Compiler, paths []string, jobs int) ([]*assemble.Result, error) {
	results := make([]*assemble.Result, len(paths))
	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		g.Go(func() error {
			spec, err := loadSpec(path)
			if err != nil {
				return err
			}
			res, err := c.Compile(spec)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
