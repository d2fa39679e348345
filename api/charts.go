package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// batteryChartHandler renders a quick HTML line chart of recent battery
// voltage and charge percentage. This is a debugging-only endpoint for
// eyeballing discharge curves without the full UI.
func (s *Server) batteryChartHandler(w http.ResponseWriter, r *http.Request) {
	history, err := s.store.BatteryHistory(defaultHistoryLimit)
	if err != nil {
		http.Error(w, "Failed to retrieve battery history", http.StatusInternalServerError)
		return
	}
	if len(history) == 0 {
		http.Error(w, "No battery readings yet", http.StatusNotFound)
		return
	}

	// History comes newest first; plot oldest to newest.
	labels := make([]string, 0, len(history))
	voltage := make([]opts.LineData, 0, len(history))
	percent := make([]opts.LineData, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		sample := history[i]
		labels = append(labels, sample.ReceivedAt.Format("15:04:05"))
		voltage = append(voltage, opts.LineData{Value: sample.Voltage})
		percent = append(percent, opts.LineData{Value: sample.Percentage})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Battery", Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Robot Battery",
			Subtitle: fmt.Sprintf("last %d readings", len(history)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "volts / percent"}),
	)
	line.SetXAxis(labels).
		AddSeries("voltage", voltage).
		AddSeries("percentage", percent)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		http.Error(w, fmt.Sprintf("Failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
