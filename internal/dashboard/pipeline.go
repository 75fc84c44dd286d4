// Package dashboard runs the load, clean, filter, chart and train sequence
// behind one dashboard render.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"defense-dash/internal/charts"
	"defense-dash/internal/dataset"
	"defense-dash/internal/forest"

	"go.uber.org/zap"
)

const (
	TestFraction = 0.2
	SplitSeed    = 42
)

// Selection is the user's region/gender filter. Empty slices select nothing.
type Selection struct {
	Regions []string
	Genders []string
}

type Input struct {
	// Selection nil means every region and gender.
	Selection *Selection
	// Probe is the slider feature vector; nil means slider defaults.
	Probe []float64
}

// Fit is a trained model with its held-out evaluation.
type Fit struct {
	Model     *forest.Forest
	TrainRows int
	TestRows  int
	Report    forest.Report
}

type View struct {
	Regions         []string
	Genders         []string
	SelectedRegions []string
	SelectedGenders []string

	CleanedRows  int
	DroppedRows  int
	FilteredRows int

	Charts *charts.Set

	Fit      *Fit
	TrainErr error

	Probe      []float64
	Prediction int
}

// Recommended reports whether the probe was classified as "Yes".
func (v *View) Recommended() bool {
	return v.Fit != nil && v.Prediction == 1
}

type Pipeline struct {
	DatasetPath string
	CleanedPath string
	Forest      forest.Options
	Log         *zap.Logger
}

func New(datasetPath, cleanedPath string, log *zap.Logger) *Pipeline {
	return &Pipeline{
		DatasetPath: datasetPath,
		CleanedPath: cleanedPath,
		Forest:      forest.DefaultOptions(),
		Log:         log,
	}
}

// Run recomputes the whole dashboard. The model is trained from scratch on
// every call. Only a missing or unreadable dataset is returned as an error;
// training problems are reported through View.TrainErr.
func (p *Pipeline) Run(ctx context.Context, in Input) (*View, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tbl, err := dataset.Load(p.DatasetPath)
	if err != nil {
		return nil, err
	}

	if p.CleanedPath != "" {
		if err := dataset.Save(p.CleanedPath, tbl); err != nil {
			p.Log.Warn("failed to write cleaned dataset", zap.String("path", p.CleanedPath), zap.Error(err))
		}
	}

	v := &View{
		Regions:     tbl.Regions(),
		Genders:     tbl.Genders(),
		CleanedRows: tbl.Len(),
		DroppedRows: tbl.Dropped,
		Probe:       in.Probe,
	}
	if v.Probe == nil {
		v.Probe = DefaultProbe()
	}

	if in.Selection == nil {
		v.SelectedRegions, v.SelectedGenders = v.Regions, v.Genders
	} else {
		v.SelectedRegions, v.SelectedGenders = in.Selection.Regions, in.Selection.Genders
	}

	filtered := dataset.Filter(tbl, v.SelectedRegions, v.SelectedGenders)
	v.FilteredRows = filtered.Len()

	if v.Charts, err = charts.Render(filtered); err != nil {
		return nil, fmt.Errorf("render charts: %w", err)
	}

	fit, err := Train(filtered, p.Forest)
	if err != nil {
		v.TrainErr = err
		p.Log.Info("model not trained", zap.Int("filtered_rows", v.FilteredRows), zap.Error(err))
		return v, nil
	}
	v.Fit = fit
	v.Prediction = fit.Model.Predict(v.Probe)

	p.Log.Info("model trained",
		zap.Int("train_rows", fit.TrainRows),
		zap.Int("test_rows", fit.TestRows),
		zap.Float64("accuracy", fit.Report.Accuracy),
		zap.Int("prediction", v.Prediction),
	)
	return v, nil
}

// Train fits a forest on the trainable rows of tbl using a seeded 80/20 split
// and evaluates it on the held-out part.
func Train(tbl *dataset.Table, opts forest.Options) (*Fit, error) {
	x, y := tbl.Trainable().XY()
	if len(x) == 0 {
		return nil, fmt.Errorf("no rows labelled %q or %q: %w", dataset.LabelYes, dataset.LabelNo, forest.ErrNoTrainingData)
	}

	split := forest.NewSplit(len(x), TestFraction, SplitSeed)
	if len(split.Train) == 0 {
		return nil, fmt.Errorf("%d labelled rows leave nothing to train on: %w", len(x), forest.ErrNoTrainingData)
	}

	xTrain, yTrain := forest.Apply(x, y, split.Train)
	xTest, yTest := forest.Apply(x, y, split.Test)

	model, err := forest.Train(xTrain, yTrain, opts)
	if err != nil {
		return nil, err
	}

	return &Fit{
		Model:     model,
		TrainRows: len(xTrain),
		TestRows:  len(xTest),
		Report:    forest.Evaluate(yTest, model.PredictAll(xTest)),
	}, nil
}

// IsNoTrainingData reports whether err means there was nothing to train on.
func IsNoTrainingData(err error) bool {
	return errors.Is(err, forest.ErrNoTrainingData)
}
