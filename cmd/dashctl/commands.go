package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"dashboard-go/internal/models"
	"dashboard-go/internal/palette"
	"dashboard-go/internal/params"
	"dashboard-go/internal/series"
	"dashboard-go/internal/service"
	"dashboard-go/internal/state"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// cli carries flag values shared by every subcommand.
type cli struct {
	out    io.Writer
	in     io.Reader
	pretty bool
}

func newRootCmd(out io.Writer, in io.Reader) *cobra.Command {
	c := &cli{out: out, in: in}

	rootCmd := &cobra.Command{
		Use:   "dashctl",
		Short: "Conform dashboard parameters and build chart datasets",
		Long: `dashctl runs the dashboard's parameter validation and series
pipeline on local files and prints JSON.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVar(&c.pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(c.conformCmd(), c.datasetsCmd(), c.colorCmd())
	return rootCmd
}

func (c *cli) conformCmd() *cobra.Command {
	var (
		schemaPath string
		modelPath  string
		renderer   string
		strict     bool
	)
	cmd := &cobra.Command{
		Use:   "conform",
		Short: "Repair a parameter model against a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.ConformRequest{Renderer: renderer, Strict: strict}
			switch {
			case schemaPath != "":
				schema, err := params.LoadSchemaFile(schemaPath)
				if err != nil {
					return fmt.Errorf("load schema: %w", err)
				}
				req.Params = schema
			case renderer == "":
				return fmt.Errorf("one of --schema or --renderer is required")
			}

			model, err := c.loadModel(modelPath)
			if err != nil {
				return err
			}
			req.Model = model

			resp, err := service.NewChartService(state.New(), 0).Conform(req)
			if err != nil {
				return err
			}
			return c.write(resp)
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (JSON or YAML)")
	cmd.Flags().StringVar(&modelPath, "model", "-", "Model file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&renderer, "renderer", "", "Use a renderer's preset schema instead of --schema")
	cmd.Flags().BoolVar(&strict, "strict", false, "Report validity instead of modification")
	return cmd
}

func (c *cli) datasetsCmd() *cobra.Command {
	var (
		rowsPath  string
		transform string
		hide      []string
		dropZeros bool
		intervals bool
	)
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Build line chart datasets from result rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := series.ParseTransform(transform)
			if err != nil {
				return err
			}
			rows, err := c.loadRows(rowsPath)
			if err != nil {
				return err
			}

			opts := series.Options{Transform: t, Hidden: hide, DropZeros: dropZeros, Intervals: intervals}
			chart, err := series.BuildChart(rows, opts)
			if err != nil {
				return err
			}
			return c.write(chart)
		},
	}
	cmd.Flags().StringVar(&rowsPath, "rows", "-", "Rows file (JSON or YAML list, - for stdin)")
	cmd.Flags().StringVar(&transform, "transform", "none", "Post processing: none, geomean, zscore")
	cmd.Flags().StringArrayVar(&hide, "hide", nil, "Label to hide (repeatable)")
	cmd.Flags().BoolVar(&dropZeros, "drop-zeros", false, "Skip rows where y is 0")
	cmd.Flags().BoolVar(&intervals, "intervals", false, "Attach y_min/y_max whiskers")
	return cmd
}

func (c *cli) colorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color LABEL...",
		Short: "Print the stable color of each label",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]models.ColorResponse, len(args))
			for i, label := range args {
				out[i] = models.ColorResponse{Label: label, Color: palette.ColorForLabel(label)}
			}
			return c.write(out)
		},
	}
}

func (c *cli) open(path string) (io.ReadCloser, params.Format, error) {
	if path == "-" || path == "" {
		return io.NopCloser(c.in), params.FormatJSON, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	return f, params.FormatForPath(path), nil
}

func (c *cli) loadModel(path string) (params.Model, error) {
	r, format, err := c.open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return params.LoadModel(r, format)
}

func (c *cli) loadRows(path string) ([]series.Row, error) {
	r, format, err := c.open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var rows []series.Row
	switch format {
	case params.FormatYAML:
		err = yaml.NewDecoder(r).Decode(&rows)
	default:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		err = dec.Decode(&rows)
	}
	if err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	return rows, nil
}

func (c *cli) write(v any) error {
	enc := json.NewEncoder(c.out)
	if c.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
