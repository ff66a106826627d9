// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package report renders dashboard output: text tables, the analysis summary
and PNG charts.

# Text

  - WriteResponses: name / question / answer table
  - WriteQuestionStats: per-question label counts, mean and median score
  - WriteOverview: response counts and time since the last response
  - WriteAnalysis: average age, standard deviation, number of females
  - SkippedWarnings: one line per survey entry the store could not use

Numbers are printed with two decimals. Counts and times use go-humanize.

# Charts

ExportCharts writes bar charts with go-chart:

	paths, err := report.ExportCharts(cfg.ChartDir, viewers, questionStats)

Files are age_distribution.png and question_<key>.png. A chart with no
nonzero bar is skipped; if nothing was written ErrNoChartData is returned.
*/
package report
