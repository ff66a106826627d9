// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stats aggregates viewer and survey records for the dashboard.

# Viewer Summary

Summarize returns the record count, the mean and population standard
deviation of age, and the number of female viewers:

	sum := stats.Summarize(viewers)
	fmt.Printf("Average Age: %.2f\n", sum.MeanAge)

Ages that are not numbers (found in old files) are left out of the mean and
standard deviation, whose denominator is AgedCount. They still count toward
Count, FemaleCount and BySex. With no numeric ages both values are 0.

# Questionnaire Statistics

SummarizeAnswers scores each Likert label by its prefix (1 = Strongly Agree,
5 = Strongly Disagree) and reports per question:

  - Responses: number of surveys answering it
  - Counts: responses per label
  - MeanScore, MedianScore: over valid labels only

Tabulate flattens surveys into the (name, question, answer) rows shown in the
dashboard table.
*/
package stats
