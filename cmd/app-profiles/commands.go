package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/app-profiles/pkg/aggregate"
	"github.com/David-Botos/app-profiles/pkg/config"
	"github.com/David-Botos/app-profiles/pkg/converter"
	"github.com/David-Botos/app-profiles/pkg/loader"
	"github.com/David-Botos/app-profiles/pkg/model"
	"github.com/David-Botos/app-profiles/pkg/pipeline"
	"github.com/David-Botos/app-profiles/pkg/report"
)

// app carries what every subcommand needs once setup has run
type app struct {
	out         io.Writer
	envFile     string
	androidPath string
	iosPath     string

	cfg    *config.Config
	logger *zap.Logger
}

// load reads a dataset's file
func (a *app) load(dsCfg *config.DatasetConfig) (*model.Dataset, error) {
	l, err := loader.NewCSVLoader(a.logger)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(dsCfg)
}

// run loads a dataset by name and runs the full pipeline over it
func (a *app) run(ctx context.Context, name string) (*config.DatasetConfig, *pipeline.Result, error) {
	dsCfg, err := a.cfg.Dataset(name)
	if err != nil {
		return nil, nil, err
	}

	ds, err := a.load(dsCfg)
	if err != nil {
		return nil, nil, err
	}

	runner, err := pipeline.NewRunner(a.logger)
	if err != nil {
		return nil, nil, err
	}

	result, err := runner.Run(ctx, ds, dsCfg.Schema)
	if err != nil {
		return nil, nil, err
	}
	return dsCfg, result, nil
}

func createAnalyzeCmd(a *app) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Clean both datasets and report genre shares and popularity",
		RunE: func(cmd *cobra.Command, args []string) error {
			pr := report.NewPrinter(a.out)
			verifier := pipeline.NewVerifier(a.logger)

			for _, dsCfg := range []*config.DatasetConfig{a.cfg.Android, a.cfg.IOS} {
				_, result, err := a.run(cmd.Context(), dsCfg.Name)
				if err != nil {
					return err
				}

				pr.Section(dsCfg.Name)
				pr.Summary(result)
				if verify {
					pr.Verification(verifier.Verify(result))
				}

				pr.Section(dsCfg.Name + ": share of free English apps by " + columnName(result.Cleaned, dsCfg.Schema.Category))
				pr.Table(result.Frequencies)

				pr.Section(dsCfg.Name + ": average " + columnName(result.Cleaned, dsCfg.Schema.Popularity) + " by category")
				pr.Averages(result.Averages)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", true, "re-check the cleaning guarantees on each result")
	return cmd
}

func createExploreCmd(a *app) *cobra.Command {
	var start, end int
	var counts, raw bool

	cmd := &cobra.Command{
		Use:   "explore [dataset]",
		Short: "Print a slice of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dsCfg, err := a.cfg.Dataset(args[0])
			if err != nil {
				return err
			}

			var ds *model.Dataset
			if raw {
				ds, err = a.load(dsCfg)
			} else {
				var result *pipeline.Result
				_, result, err = a.run(cmd.Context(), args[0])
				if result != nil {
					ds = result.Cleaned
				}
			}
			if err != nil {
				return err
			}

			if end < 0 {
				end = start + a.cfg.ExploreRows
			}

			pr := report.NewPrinter(a.out)
			pr.Header(ds)
			pr.Explore(ds, start, end, counts)
			return nil
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "first row to print")
	cmd.Flags().IntVar(&end, "end", -1, "row after the last to print (default start+EXPLORE_ROWS)")
	cmd.Flags().BoolVar(&counts, "counts", true, "print row and column counts")
	cmd.Flags().BoolVar(&raw, "raw", false, "explore the file as loaded instead of the cleaned rows")
	return cmd
}

func createFreqCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "freq [dataset] [column]",
		Short: "Print the frequency table of a column of the cleaned dataset",
		Long:  "Column may be a zero-based index or a header name.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := a.run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			idx, err := resolveColumn(result.Cleaned, args[1])
			if err != nil {
				return err
			}

			report.NewPrinter(a.out).Table(aggregate.Frequency(result.Cleaned.Rows, idx))
			return nil
		},
	}
}

func createAvgCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "avg [dataset]",
		Short: "Print the mean popularity per category of the cleaned dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := a.run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			report.NewPrinter(a.out).Averages(result.Averages)
			return nil
		},
	}
}

func createDuplicatesCmd(a *app) *cobra.Command {
	var examples int

	cmd := &cobra.Command{
		Use:   "duplicates [dataset]",
		Short: "Count apps listed more than once before deduplication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dsCfg, err := a.cfg.Dataset(args[0])
			if err != nil {
				return err
			}

			ds, err := a.load(dsCfg)
			if err != nil {
				return err
			}

			runner, err := pipeline.NewRunner(a.logger)
			if err != nil {
				return err
			}

			schema := dsCfg.Schema
			schema.Deduplicate = true
			result, err := runner.Clean(cmd.Context(), ds, schema)
			if err != nil {
				return err
			}

			report.NewPrinter(a.out).Duplicates(result.Census, examples)
			return nil
		},
	}

	cmd.Flags().IntVar(&examples, "examples", 10, "number of duplicate names to show")
	return cmd
}

func createListCmd(a *app) *cobra.Command {
	var values []string

	cmd := &cobra.Command{
		Use:   "list [dataset] [category]",
		Short: "List name and popularity of the cleaned apps in a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dsCfg, result, err := a.run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			schema := dsCfg.Schema
			rows := aggregate.Select(result.Cleaned.Rows, aggregate.FieldIn(schema.Category, args[1]))
			if len(values) > 0 {
				rows = aggregate.Select(rows, aggregate.FieldIn(schema.Popularity, values...))
			}

			report.NewPrinter(a.out).Listing(rows, schema.Name, schema.Popularity)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&values, "values", nil, "only list apps whose popularity field equals this value (repeatable)")
	return cmd
}

func createMeanCmd(a *app) *cobra.Command {
	var below float64

	cmd := &cobra.Command{
		Use:   "mean [dataset] [category]",
		Short: "Mean popularity of a category, optionally only below a threshold",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dsCfg, result, err := a.run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			schema := dsCfg.Schema
			parse, err := converter.ParserFor(schema.PopularityKind)
			if err != nil {
				return err
			}

			category := args[1]
			mean, err := aggregate.MeanWhere(result.Cleaned.Rows, schema.Popularity, parse,
				func(row model.Record, v float64) bool {
					return row.Field(schema.Category) == category && (below <= 0 || v < below)
				})
			if err != nil {
				return fmt.Errorf("failed to compute mean for %s: %w", category, err)
			}

			fmt.Fprintf(a.out, "%s : %s\n", category, strconv.FormatFloat(mean, 'f', 2, 64))
			return nil
		},
	}

	cmd.Flags().Float64Var(&below, "below", 0, "only include apps with popularity below this value (0 = no limit)")
	return cmd
}

// resolveColumn accepts a zero-based index or a header name
func resolveColumn(ds *model.Dataset, column string) (int, error) {
	if idx, err := strconv.Atoi(column); err == nil {
		if idx < 0 || idx >= len(ds.Header) {
			return 0, fmt.Errorf("column %d out of range (0-%d)", idx, len(ds.Header)-1)
		}
		return idx, nil
	}

	idx := ds.ColumnIndex(column)
	if idx < 0 {
		return 0, fmt.Errorf("unknown column %q", column)
	}
	return idx, nil
}

func columnName(ds *model.Dataset, idx int) string {
	if idx >= 0 && idx < len(ds.Header) {
		return ds.Header[idx]
	}
	return "column " + strconv.Itoa(idx)
}
