// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"fmt"
	"sort"

	"github.com/danielhkuo/sculpture-survey/models"
)

// Summary holds the descriptive statistics over viewer records
type Summary struct {
	Count       int
	AgedCount   int
	MeanAge     float64
	StdDevAge   float64
	FemaleCount int
	BySex       map[string]int
}

// Summarize computes count, mean age, population standard deviation of age
// and the number of female viewers. Only numeric ages enter the mean and
// deviation; Count and FemaleCount include every record.
func Summarize(viewers []models.ViewerRecord) Summary {
	sum := Summary{
		Count: len(viewers),
		BySex: make(map[string]int),
	}

	ages := make([]float64, 0, len(viewers))
	for _, v := range viewers {
		if v.Sex == models.SexFemale {
			sum.FemaleCount++
		}
		sum.BySex[string(v.Sex)]++
		if v.Age.Valid {
			ages = append(ages, v.Age.Value)
		}
	}

	sum.AgedCount = len(ages)
	sum.MeanAge = mean(ages)
	sum.StdDevAge = populationStdDev(ages)
	return sum
}

// Bucket is a labelled count used for charts
type Bucket struct {
	Label string
	Count int
}

// oldestDecade is the start of the open-ended "100+" age bucket
const oldestDecade = 100

// AgeBuckets groups numeric ages by decade, from the youngest decade to the
// oldest with empty decades in between kept as zero. Ages of 100 and over
// share a single "100+" bucket.
func AgeBuckets(viewers []models.ViewerRecord) []Bucket {
	var counts [oldestDecade/10 + 1]int
	lo, hi := len(counts), -1
	for _, v := range viewers {
		if !v.Age.Valid || !(v.Age.Value >= 0) {
			continue
		}
		i := len(counts) - 1
		if v.Age.Value < oldestDecade {
			i = int(v.Age.Value) / 10
		}
		counts[i]++
		lo = min(lo, i)
		hi = max(hi, i)
	}
	if hi < 0 {
		return nil
	}

	buckets := make([]Bucket, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		label := fmt.Sprintf("%d-%d", i*10, i*10+9)
		if i == len(counts)-1 {
			label = fmt.Sprintf("%d+", oldestDecade)
		}
		buckets = append(buckets, Bucket{Label: label, Count: counts[i]})
	}
	return buckets
}

// QuestionStats aggregates the answers given to one question
type QuestionStats struct {
	Key       string
	Text      string
	Responses int
	// Counts is indexed like models.LikertLabels
	Counts      []int
	Invalid     int
	MeanScore   float64
	MedianScore float64
}

// SummarizeAnswers computes per-question Likert statistics. Questions follow
// the questionnaire order; keys found only in stored answers come last,
// sorted by key.
func SummarizeAnswers(q models.Questionnaire, surveys []models.SurveyRecord) []QuestionStats {
	keys := make([]string, 0, len(q.Questions))
	known := make(map[string]bool)
	for _, question := range q.Questions {
		keys = append(keys, question.Key)
		known[question.Key] = true
	}

	var extra []string
	for _, s := range surveys {
		for key := range s.Answers {
			if !known[key] {
				known[key] = true
				extra = append(extra, key)
			}
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	out := make([]QuestionStats, 0, len(keys))
	for _, key := range keys {
		qs := QuestionStats{
			Key:    key,
			Text:   q.Text(key),
			Counts: make([]int, len(models.LikertLabels)),
		}

		var scores []float64
		for _, s := range surveys {
			label, ok := s.Answers[key]
			if !ok {
				continue
			}
			qs.Responses++
			score, ok := models.Score(label)
			if !ok {
				qs.Invalid++
				continue
			}
			qs.Counts[score-1]++
			scores = append(scores, float64(score))
		}

		sort.Float64s(scores)
		qs.MeanScore = mean(scores)
		qs.MedianScore = percentile(scores, 0.5)
		out = append(out, qs)
	}

	return out
}

// Row is one line of the dashboard response table
type Row struct {
	Name     string
	Question string
	Answer   string
}

// Tabulate flattens surveys into (name, question, answer) rows in record
// order. Questions follow the questionnaire, then any other keys sorted.
func Tabulate(q models.Questionnaire, surveys []models.SurveyRecord) []Row {
	var rows []Row
	for _, s := range surveys {
		seen := make(map[string]bool, len(s.Answers))
		for _, question := range q.Questions {
			answer, ok := s.Answers[question.Key]
			if !ok {
				continue
			}
			seen[question.Key] = true
			rows = append(rows, Row{Name: s.Name, Question: question.Text, Answer: answer})
		}

		var rest []string
		for key := range s.Answers {
			if !seen[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			rows = append(rows, Row{Name: s.Name, Question: key, Answer: s.Answers[key]})
		}
	}
	return rows
}
