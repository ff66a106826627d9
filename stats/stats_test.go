// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/danielhkuo/sculpture-survey/models"
	"github.com/danielhkuo/sculpture-survey/testutil"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// legacyViewer decodes a viewer from JSON, as read from an old file
func legacyViewer(t *testing.T, data string) models.ViewerRecord {
	t.Helper()
	var v models.ViewerRecord
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		t.Fatalf("Failed to decode viewer: %v", err)
	}
	return v
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil)

	if sum.Count != 0 || sum.AgedCount != 0 || sum.FemaleCount != 0 {
		t.Errorf("Expected zero counts, got %+v", sum)
	}
	if sum.MeanAge != 0 || sum.StdDevAge != 0 {
		t.Errorf("Expected zero mean and stddev, got %v and %v", sum.MeanAge, sum.StdDevAge)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name        string
		ages        []float64
		sexes       []models.Sex
		wantMean    float64
		wantStdDev  float64
		wantFemales int
	}{
		{
			name:        "five decades",
			ages:        []float64{20, 30, 40, 50, 60},
			sexes:       []models.Sex{models.SexFemale, models.SexMale, models.SexFemale, models.SexOther, models.SexMale},
			wantMean:    40,
			wantStdDev:  math.Sqrt(200),
			wantFemales: 2,
		},
		{
			name:        "single viewer",
			ages:        []float64{33},
			sexes:       []models.Sex{models.SexFemale},
			wantMean:    33,
			wantStdDev:  0,
			wantFemales: 1,
		},
		{
			name:        "identical ages",
			ages:        []float64{25, 25, 25},
			sexes:       []models.Sex{models.SexMale, models.SexMale, models.SexMale},
			wantMean:    25,
			wantStdDev:  0,
			wantFemales: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var viewers []models.ViewerRecord
			for i, age := range tt.ages {
				viewers = append(viewers, testutil.NewViewer("v", age, tt.sexes[i]))
			}

			sum := Summarize(viewers)
			if sum.Count != len(tt.ages) {
				t.Errorf("Count = %d, want %d", sum.Count, len(tt.ages))
			}
			if !approxEqual(sum.MeanAge, tt.wantMean) {
				t.Errorf("MeanAge = %v, want %v", sum.MeanAge, tt.wantMean)
			}
			if !approxEqual(sum.StdDevAge, tt.wantStdDev) {
				t.Errorf("StdDevAge = %v, want %v", sum.StdDevAge, tt.wantStdDev)
			}
			if sum.FemaleCount != tt.wantFemales {
				t.Errorf("FemaleCount = %d, want %d", sum.FemaleCount, tt.wantFemales)
			}
		})
	}
}

func TestSummarize_NonNumericAge(t *testing.T) {
	viewers := []models.ViewerRecord{
		testutil.NewViewer("A", 20, models.SexMale),
		testutil.NewViewer("B", 40, models.SexMale),
		legacyViewer(t, `{"name": "C", "age": "twenty", "sex": "Female", "ethnicity": "White", "disabled": "No"}`),
	}

	sum := Summarize(viewers)
	if sum.Count != 3 {
		t.Errorf("Count = %d, want 3", sum.Count)
	}
	if sum.AgedCount != 2 {
		t.Errorf("AgedCount = %d, want 2", sum.AgedCount)
	}
	if !approxEqual(sum.MeanAge, 30) {
		t.Errorf("MeanAge = %v, want 30", sum.MeanAge)
	}
	if !approxEqual(sum.StdDevAge, 10) {
		t.Errorf("StdDevAge = %v, want 10", sum.StdDevAge)
	}
	if sum.FemaleCount != 1 {
		t.Errorf("FemaleCount = %d, want 1", sum.FemaleCount)
	}
}

func TestSummarize_OnlyNonNumericAges(t *testing.T) {
	viewers := []models.ViewerRecord{
		legacyViewer(t, `{"name": "C", "age": "n/a", "sex": "Female", "ethnicity": "White", "disabled": "No"}`),
	}

	sum := Summarize(viewers)
	if sum.Count != 1 || sum.AgedCount != 0 {
		t.Errorf("Expected Count 1 and AgedCount 0, got %+v", sum)
	}
	if sum.MeanAge != 0 || sum.StdDevAge != 0 {
		t.Errorf("Expected zero mean and stddev, got %v and %v", sum.MeanAge, sum.StdDevAge)
	}
}

func TestSummarize_BySex(t *testing.T) {
	viewers := []models.ViewerRecord{
		testutil.NewViewer("A", 20, models.SexMale),
		testutil.NewViewer("B", 21, models.SexFemale),
		testutil.NewViewer("C", 22, models.SexFemale),
		legacyViewer(t, `{"name": "D", "age": 30, "sex": "female", "ethnicity": "White", "disabled": "No"}`),
	}

	sum := Summarize(viewers)
	want := map[string]int{"Male": 1, "Female": 2, "female": 1}
	for sex, n := range want {
		if sum.BySex[sex] != n {
			t.Errorf("BySex[%s] = %d, want %d", sex, sum.BySex[sex], n)
		}
	}
	if sum.FemaleCount != 2 {
		t.Errorf("FemaleCount = %d, want 2", sum.FemaleCount)
	}
}

func TestAgeBuckets(t *testing.T) {
	viewers := []models.ViewerRecord{
		testutil.NewViewer("A", 21, models.SexMale),
		testutil.NewViewer("B", 29, models.SexMale),
		testutil.NewViewer("C", 45, models.SexFemale),
		legacyViewer(t, `{"name": "D", "age": "old", "sex": "Male", "ethnicity": "White", "disabled": "No"}`),
	}

	buckets := AgeBuckets(viewers)
	want := []Bucket{{"20-29", 2}, {"30-39", 0}, {"40-49", 1}}
	if len(buckets) != len(want) {
		t.Fatalf("Expected %d buckets, got %v", len(want), buckets)
	}
	for i := range want {
		if buckets[i] != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, buckets[i], want[i])
		}
	}

	if got := AgeBuckets(nil); got != nil {
		t.Errorf("Expected no buckets for no viewers, got %v", got)
	}
}

func TestAgeBuckets_OldAges(t *testing.T) {
	tests := []struct {
		name string
		ages []float64
		want []Bucket
	}{
		{"centenarian", []float64{95, 104}, []Bucket{{"90-99", 1}, {"100+", 1}}},
		{"huge age", []float64{20, 1e7}, []Bucket{
			{"20-29", 1}, {"30-39", 0}, {"40-49", 0}, {"50-59", 0}, {"60-69", 0},
			{"70-79", 0}, {"80-89", 0}, {"90-99", 0}, {"100+", 1},
		}},
		{"beyond int range", []float64{1e300, 1e300}, []Bucket{{"100+", 2}}},
		{"young", []float64{0.5, 9}, []Bucket{{"0-9", 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var viewers []models.ViewerRecord
			for _, age := range tt.ages {
				viewers = append(viewers, testutil.NewViewer("V", age, models.SexOther))
			}

			got := AgeBuckets(viewers)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d buckets, got %v", len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("bucket %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSummarizeAnswers(t *testing.T) {
	q := models.DefaultQuestionnaire()
	surveys := []models.SurveyRecord{
		{Name: "A", Answers: models.Answers{"q1": models.StronglyAgree, "q2": models.Agree, "q3": models.Disagree}},
		{Name: "B", Answers: models.Answers{"q1": models.Agree, "q2": models.Agree}},
		{Name: "C", Answers: models.Answers{"q1": models.NeitherAgree, "q9": "yes"}},
	}

	got := SummarizeAnswers(q, surveys)
	if len(got) != 4 {
		t.Fatalf("Expected 4 questions, got %d", len(got))
	}

	q1 := got[0]
	if q1.Key != "q1" || q1.Text != "Enjoyed the sculpture?" {
		t.Errorf("Unexpected first question %s %q", q1.Key, q1.Text)
	}
	if q1.Responses != 3 {
		t.Errorf("q1 Responses = %d, want 3", q1.Responses)
	}
	if !approxEqual(q1.MeanScore, 2) || !approxEqual(q1.MedianScore, 2) {
		t.Errorf("q1 mean/median = %v/%v, want 2/2", q1.MeanScore, q1.MedianScore)
	}
	if q1.Counts[0] != 1 || q1.Counts[1] != 1 || q1.Counts[2] != 1 {
		t.Errorf("q1 Counts = %v", q1.Counts)
	}

	q3 := got[2]
	if q3.Responses != 1 || !approxEqual(q3.MeanScore, 4) {
		t.Errorf("q3 = %+v, want one response scoring 4", q3)
	}

	extra := got[3]
	if extra.Key != "q9" || extra.Text != "q9" {
		t.Errorf("Expected unknown key q9 last, got %s %q", extra.Key, extra.Text)
	}
	if extra.Invalid != 1 || extra.MeanScore != 0 {
		t.Errorf("q9 = %+v, want one invalid answer", extra)
	}
}

func TestTabulate(t *testing.T) {
	q := models.DefaultQuestionnaire()
	surveys := []models.SurveyRecord{
		{Name: "A", Answers: models.Answers{"q2": models.Agree, "q1": models.StronglyAgree}},
		{Name: "B", Answers: models.Answers{"zz": models.Disagree, "q3": models.Agree}},
	}

	rows := Tabulate(q, surveys)
	want := []Row{
		{"A", "Enjoyed the sculpture?", models.StronglyAgree},
		{"A", "Were curious as to how it worked?", models.Agree},
		{"B", "Wanted to know more about science as a result?", models.Agree},
		{"B", "zz", models.Disagree},
	}
	if len(rows) != len(want) {
		t.Fatalf("Expected %d rows, got %v", len(want), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty", nil, 0.5, 0},
		{"single", []float64{3}, 0.5, 3},
		{"odd median", []float64{1, 2, 5}, 0.5, 2},
		{"even median", []float64{1, 2, 4, 5}, 0.5, 3},
		{"max", []float64{1, 2, 4, 5}, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentile(tt.sorted, tt.p); !approxEqual(got, tt.want) {
				t.Errorf("percentile() = %v, want %v", got, tt.want)
			}
		})
	}
}
