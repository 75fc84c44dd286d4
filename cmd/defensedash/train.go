package main

import (
	"fmt"

	"defense-dash/internal/dashboard"
	"defense-dash/internal/dataset"
	"defense-dash/internal/forest"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	trainRegions []string
	trainGenders []string
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train and evaluate the classifier without the web UI",
	Long: `Load and clean the dataset, optionally narrow it by region and gender,
train the random forest with the dashboard's fixed split and seed, and
print the classification report and confusion matrix.`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringSliceVar(&trainRegions, "region", nil, "regions to keep (default all)")
	trainCmd.Flags().StringSliceVar(&trainGenders, "gender", nil, "genders to keep (default all)")
}

func runTrain(cmd *cobra.Command, args []string) error {
	tbl, err := dataset.Load(cfg.DatasetFile)
	if err != nil {
		return err
	}

	regions, genders := tbl.Regions(), tbl.Genders()
	if cmd.Flags().Changed("region") {
		regions = trainRegions
	}
	if cmd.Flags().Changed("gender") {
		genders = trainGenders
	}
	filtered := dataset.Filter(tbl, regions, genders)

	fit, err := dashboard.Train(filtered, forest.DefaultOptions())
	if err != nil {
		return err
	}
	log.Debug("model trained", zap.Int("train_rows", fit.TrainRows), zap.Int("test_rows", fit.TestRows))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rows: %d cleaned, %d dropped, %d after filters\n", tbl.Len(), tbl.Dropped, filtered.Len())
	fmt.Fprintf(out, "split: %d train, %d test\n\n", fit.TrainRows, fit.TestRows)
	fmt.Fprint(out, fit.Report.String())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Confusion Matrix:")
	fmt.Fprint(out, fit.Report.ConfusionString())
	return nil
}
