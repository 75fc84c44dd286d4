package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"defense-dash/internal/dashboard"
	"defense-dash/internal/dataset"
	"defense-dash/internal/middleware"
	"defense-dash/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// dashboardInput reads filters and slider values from the query string.
// Filters apply only once the filter form was submitted (filtered=1); before
// that every region and gender is selected.
func dashboardInput(c *gin.Context) dashboard.Input {
	in := dashboard.Input{Probe: dashboard.ParseProbe(c.Query)}
	if c.Query("filtered") == "1" {
		in.Selection = &dashboard.Selection{
			Regions: c.QueryArray("region"),
			Genders: c.QueryArray("gender"),
		}
	}
	return in
}

// runDashboard executes the pipeline and writes the error page itself when
// the dataset cannot be loaded. It returns nil in that case.
func (h *Handler) runDashboard(c *gin.Context) *dashboard.View {
	view, err := h.Runner.Run(c.Request.Context(), dashboardInput(c))
	if errors.Is(err, dataset.ErrDatasetNotFound) {
		h.Log.Error("dataset not found", zap.String("path", h.DatasetPath))
		render(c, http.StatusInternalServerError, "dataset_missing.html", gin.H{"path": h.DatasetPath})
		return nil
	}
	if err != nil {
		h.Log.Error("dashboard failed", zap.Error(err))
		render(c, http.StatusInternalServerError, "dataset_missing.html", gin.H{"error": msgInternal})
		return nil
	}

	if view.Fit != nil {
		h.Audit.Record(c.Request.Context(), middleware.CurrentSession(c).CurrentUser, models.ActionTrain,
			fmt.Sprintf("train=%d test=%d accuracy=%.3f", view.Fit.TrainRows, view.Fit.TestRows, view.Fit.Report.Accuracy))
	}
	return view
}

func (h *Handler) Dashboard(c *gin.Context) {
	view := h.runDashboard(c)
	if view == nil {
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"view":    view,
		"sliders": sliderRows(view.Probe),
	})
}

type predictResponse struct {
	Prediction  int       `json:"prediction"`
	Recommended bool      `json:"recommended"`
	Probability float64   `json:"probability"`
	Features    []float64 `json:"features"`
	Error       string    `json:"error,omitempty"`
}

// Predict answers a slider change with the classifier's verdict as JSON.
func (h *Handler) Predict(c *gin.Context) {
	in := dashboardInput(c)
	view, err := h.Runner.Run(c.Request.Context(), in)
	if errors.Is(err, dataset.ErrDatasetNotFound) {
		c.JSON(http.StatusInternalServerError, predictResponse{Features: in.Probe, Error: err.Error()})
		return
	}
	if err != nil {
		h.Log.Error("prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, predictResponse{Features: in.Probe, Error: msgInternal})
		return
	}
	if view.Fit == nil {
		c.JSON(http.StatusUnprocessableEntity, predictResponse{Features: view.Probe, Error: view.TrainErr.Error()})
		return
	}

	c.JSON(http.StatusOK, predictResponse{
		Prediction:  view.Prediction,
		Recommended: view.Recommended(),
		Probability: view.Fit.Model.Proba(view.Probe),
		Features:    view.Probe,
	})
}

type sliderRow struct {
	dashboard.Slider
	Value float64
}

func sliderRows(probe []float64) []sliderRow {
	rows := make([]sliderRow, len(dashboard.Sliders))
	for i, s := range dashboard.Sliders {
		rows[i] = sliderRow{Slider: s, Value: s.Default}
		if i < len(probe) {
			rows[i].Value = probe[i]
		}
	}
	return rows
}
