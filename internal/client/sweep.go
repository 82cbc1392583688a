package client

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Result is the outcome of one sample sent to one model.
type Result struct {
	Model      string
	Sample     string
	Prediction string
	Err        error
}

// Sweep sends every sample to every model, in order, one request at a time.
// A failed request is recorded in its Result and does not stop the sweep.
func Sweep(ctx context.Context, c *Client, models []string, samples []Sample) []Result {
	results := make([]Result, 0, len(models)*len(samples))

	for _, model := range models {
		for _, s := range samples {
			r := Result{Model: model, Sample: s.Name}

			p, err := c.Predict(ctx, model, s.Record)
			if err != nil {
				r.Err = err
			} else {
				r.Prediction = p.Prediction
			}

			results = append(results, r)
		}
	}

	return results
}

// RenderResults writes results as a table followed by request totals.
func RenderResults(w io.Writer, results []Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Model", "Sample", "Prediction", "Error"})

	failed := 0
	for _, r := range results {
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
			failed++
		}
		t.AppendRow(table.Row{r.Model, r.Sample, r.Prediction, errText})
	}

	t.AppendFooter(table.Row{"", "", "Requests", fmt.Sprintf("%d (%d failed)", len(results), failed)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: 60},
	})
	t.Render()
}

// RenderHealth writes the health response as a two-column table.
func RenderHealth(w io.Writer, h *Health) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"status", h.Status},
		{"models_loaded", h.ModelsLoaded},
		{"preprocessors_loaded", h.PreprocessorsLoaded},
	})
	t.Render()
}
