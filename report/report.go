// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/sculpture-survey/models"
	"github.com/danielhkuo/sculpture-survey/stats"
	"github.com/danielhkuo/sculpture-survey/store"
)

// Messages shown by the dashboard and analysis screens
const (
	NoSurveyData = "No survey data available."
	NoViewerData = "No viewers data available."
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// WriteResponses renders the dashboard response table
func WriteResponses(w io.Writer, rows []stats.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, NoSurveyData)
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "Name\tQuestion\tAnswer")
	fmt.Fprintln(tw, "----\t--------\t------")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Question, r.Answer)
	}
	return tw.Flush()
}

// SkippedWarnings returns one user-facing line per unusable survey entry
func SkippedWarnings(skipped []models.SkippedRecord) []string {
	out := make([]string, 0, len(skipped))
	for _, s := range skipped {
		name := s.Name
		if name == "" {
			name = models.UnknownName
		}
		if errors.Is(s.Err, store.ErrTypeMismatch) {
			out = append(out, fmt.Sprintf("Answers for %s are not properly formatted.", name))
			continue
		}
		out = append(out, fmt.Sprintf("Entry %d (%s) could not be read: %v", s.Index+1, name, s.Err))
	}
	return out
}

// WriteOverview prints response counts and how long ago the last one arrived
func WriteOverview(w io.Writer, viewers int, surveys []models.SurveyRecord, now time.Time) error {
	_, err := fmt.Fprintf(w, "%s viewers, %s survey responses\n",
		humanize.Comma(int64(viewers)), humanize.Comma(int64(len(surveys))))
	if err != nil {
		return err
	}

	var last time.Time
	for _, s := range surveys {
		if s.SubmittedAt.After(last) {
			last = s.SubmittedAt
		}
	}
	if last.IsZero() {
		return nil
	}
	_, err = fmt.Fprintf(w, "Last response: %s\n", humanize.RelTime(last, now, "ago", "from now"))
	return err
}

// WriteQuestionStats renders per-question Likert counts with mean and median
func WriteQuestionStats(w io.Writer, qs []stats.QuestionStats) error {
	if len(qs) == 0 {
		return nil
	}

	tw := newTable(w)
	header := []string{"Question", "Responses"}
	for i := range models.LikertLabels {
		header = append(header, fmt.Sprintf("%d", i+1))
	}
	header = append(header, "Mean", "Median")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, q := range qs {
		cols := []string{q.Text, humanize.Comma(int64(q.Responses))}
		for _, c := range q.Counts {
			cols = append(cols, fmt.Sprintf("%d", c))
		}
		cols = append(cols, fmt.Sprintf("%.2f", q.MeanScore), fmt.Sprintf("%.2f", q.MedianScore))
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Legend
	for i, label := range models.LikertLabels {
		sep := ", "
		if i == len(models.LikertLabels)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "%s%s", label, sep); err != nil {
			return err
		}
	}
	return nil
}

// WriteAnalysis renders the admin analysis text
func WriteAnalysis(w io.Writer, sum stats.Summary) error {
	if sum.Count == 0 {
		_, err := fmt.Fprintln(w, NoViewerData)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Average Age: %.2f\n", sum.MeanAge)
	fmt.Fprintf(&b, "Standard Deviation: %.2f\n", sum.StdDevAge)
	fmt.Fprintf(&b, "Number of Females: %d\n", sum.FemaleCount)
	if sum.AgedCount < sum.Count {
		fmt.Fprintf(&b, "Ages not numeric: %d of %d\n", sum.Count-sum.AgedCount, sum.Count)
	}

	sexes := make([]string, 0, len(sum.BySex))
	for sex := range sum.BySex {
		sexes = append(sexes, sex)
	}
	sort.Strings(sexes)
	b.WriteString("By Sex:\n")
	for _, sex := range sexes {
		label := sex
		if label == "" {
			label = "(blank)"
		}
		fmt.Fprintf(&b, "  %s: %d\n", label, sum.BySex[sex])
	}

	_, err := io.WriteString(w, b.String())
	return err
}
