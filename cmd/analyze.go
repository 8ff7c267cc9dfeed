package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LumenBytes/vidlens-cli/internal/analysis"
	"github.com/LumenBytes/vidlens-cli/internal/dataset"
	"github.com/LumenBytes/vidlens-cli/internal/utils"
)

var (
	anaGroupBy      []string
	anaMetric       string
	anaCorrelations bool
	anaTop          int
	anaDelimiter    string
	anaOutputPath   string
	anaJSON         bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run the full analysis over a video statistics CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		conf := effectiveConfig()

		delim, err := parseDelimiter(valueOrDefault(anaDelimiter, conf.Delimiter))
		if err != nil {
			return err
		}
		metric, err := analysis.ParseField(valueOrDefault(anaMetric, conf.Metric))
		if err != nil {
			return err
		}
		dims := anaGroupBy
		if len(dims) == 0 {
			dims = []string{conf.GroupBy}
		}

		table, err := dataset.Load(path, delim)
		if err != nil {
			return err
		}
		records, clean, err := dataset.Clean(table)
		if err != nil {
			return err
		}
		if debug {
			fmt.Printf("cleaned %d/%d rows (%d dropped)\n", clean.Kept, len(table.Rows), clean.Dropped)
		}

		rep := analysis.NewReport(table.Name, len(table.Rows), clean)
		rep.Engagement = analysis.Engage(records)

		for _, d := range dims {
			dim, err := analysis.ParseDimension(d)
			if err != nil {
				return err
			}
			results, err := analysis.GroupBy(records, dim, metric)
			if err != nil {
				return err
			}
			rep.Groups = append(rep.Groups, analysis.GroupSection{
				Dimension: dim,
				Field:     metric,
				Results:   results,
			})
		}

		if anaCorrelations {
			pairs := [][2]analysis.Field{
				{analysis.FieldViews, analysis.FieldLikes},
				{analysis.FieldViews, analysis.FieldComments},
				{analysis.FieldLikes, analysis.FieldComments},
			}
			for _, p := range pairs {
				r, err := analysis.Correlate(records, p[0], p[1])
				rep.AddCorrelation(p[0], p[1], r, err)
			}
		}

		if anaTop > 0 {
			rep.TopField = metric
			rep.Top = analysis.TopVideos(records, metric, anaTop)
		}

		var out []byte
		if anaJSON {
			out, err = utils.PrettyJSON(rep)
			if err != nil {
				return err
			}
		} else {
			out = []byte(rep.Markdown())
		}

		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringSliceVar(&anaGroupBy, "group-by", nil, "grouping dimensions: category|channel|month|period (repeatable)")
	analyzeCmd.Flags().StringVar(&anaMetric, "metric", "", "numeric field to aggregate: views|likes|dislikes|comments|duration")
	analyzeCmd.Flags().BoolVar(&anaCorrelations, "correlations", false, "compute Pearson correlations among count fields")
	analyzeCmd.Flags().IntVar(&anaTop, "top", 0, "include the top N videos by the chosen metric")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().BoolVar(&anaJSON, "json", false, "emit the report as JSON instead of Markdown")
}

// parseDelimiter maps a delimiter flag value to a rune.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "", ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s (use ','|';'|'tab')", s)
	}
}

func valueOrDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
