// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/danielhkuo/sculpture-survey/models"
	"github.com/danielhkuo/sculpture-survey/stats"
)

var ErrNoChartData = errors.New("no chart data")

const (
	chartWidth  = 960
	chartHeight = 540
)

// RenderBarChart draws buckets as a PNG bar chart.
// Returns ErrNoChartData when every bucket is zero.
func RenderBarChart(w io.Writer, title string, buckets []stats.Bucket) error {
	maxCount := 0
	bars := make([]chart.Value, 0, len(buckets))
	for _, b := range buckets {
		maxCount = max(maxCount, b.Count)
		bars = append(bars, chart.Value{Label: b.Label, Value: float64(b.Count)})
	}
	if maxCount == 0 {
		return ErrNoChartData
	}

	ch := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth(len(bars)),
		YAxis: chart.YAxis{
			// Auto range is zero-width when all bars are equal
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("failed to render %q: %w", title, err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func barWidth(n int) int {
	if n <= 0 {
		return 60
	}
	return max(1, min(80, (chartWidth-100)/n-10))
}

// fileSafe keeps letters, digits, '-' and '_'
func fileSafe(key string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, key)
}

// LikertBuckets turns a question's label counts into chart buckets
func LikertBuckets(q stats.QuestionStats) []stats.Bucket {
	out := make([]stats.Bucket, len(models.LikertLabels))
	for i, label := range models.LikertLabels {
		out[i] = stats.Bucket{Label: label}
		if i < len(q.Counts) {
			out[i].Count = q.Counts[i]
		}
	}
	return out
}

// ExportCharts writes age_distribution.png and one question_<key>.png per
// answered question into dir. Charts without data are skipped. Returns the
// written paths.
func ExportCharts(dir string, viewers []models.ViewerRecord, questions []stats.QuestionStats) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart dir %s: %w", dir, err)
	}

	type job struct {
		file    string
		title   string
		buckets []stats.Bucket
	}
	jobs := []job{{"age_distribution.png", "Viewer Age", stats.AgeBuckets(viewers)}}
	for _, q := range questions {
		jobs = append(jobs, job{"question_" + fileSafe(q.Key) + ".png", q.Text, LikertBuckets(q)})
	}

	var written []string
	for _, j := range jobs {
		path := filepath.Join(dir, j.file)
		var buf bytes.Buffer
		err := RenderBarChart(&buf, j.title, j.buckets)
		if errors.Is(err, ErrNoChartData) {
			slog.Debug("chart skipped", "file", j.file, "reason", err)
			continue
		}
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}

	if len(written) == 0 {
		return nil, ErrNoChartData
	}
	slog.Info("charts exported", "dir", dir, "count", len(written))
	return written, nil
}
