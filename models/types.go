package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Sex values accepted by the intake form
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
	SexOther  Sex = "Other"
)

// Disabled status values accepted by the intake form
type Disabled string

const (
	DisabledYes Disabled = "Yes"
	DisabledNo  Disabled = "No"
)

// Likert labels, in scale order. The label prefix is the score (1..5).
const (
	StronglyAgree    = "1. Strongly Agree"
	Agree            = "2. Agree"
	NeitherAgree     = "3. Neither Agree"
	Disagree         = "4. Disagree"
	StronglyDisagree = "5. Strongly Disagree"
)

// LikertLabels lists the only valid questionnaire answer values
var LikertLabels = []string{StronglyAgree, Agree, NeitherAgree, Disagree, StronglyDisagree}

var (
	SexValues      = []Sex{SexMale, SexFemale, SexOther}
	DisabledValues = []Disabled{DisabledYes, DisabledNo}
)

// UnknownName is shown for survey records stored without a name
const UnknownName = "Unknown"

// Domain types

// ViewerRecord is one respondent's demographic intake entry.
// ID and SubmittedAt are assigned by the store on append; legacy files lack them.
type ViewerRecord struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name" jsonschema:"required,minLength=1"`
	Age         Age       `json:"age" jsonschema:"required"`
	Sex         Sex       `json:"sex" jsonschema:"required,enum=Male,enum=Female,enum=Other"`
	Ethnicity   string    `json:"ethnicity" jsonschema:"required,minLength=1"`
	Disabled    Disabled  `json:"disabled" jsonschema:"required,enum=Yes,enum=No"`
	SubmittedAt time.Time `json:"submitted_at,omitzero"`
}

// Answers maps question key (q1, q2, ...) to a Likert label
type Answers map[string]string

// SurveyRecord is one respondent's questionnaire answers
type SurveyRecord struct {
	ViewerID    string    `json:"viewer_id,omitempty"`
	Name        string    `json:"name" jsonschema:"required"`
	Answers     Answers   `json:"answers" jsonschema:"required"`
	SubmittedAt time.Time `json:"submitted_at,omitzero"`
}

// SurveyLoad is the result of reading every stored survey response
type SurveyLoad struct {
	Records []SurveyRecord
	Skipped []SkippedRecord
	// Legacy is set when the file held more than one concatenated JSON array
	Legacy bool
}

// SkippedRecord describes a stored survey entry that could not be used
type SkippedRecord struct {
	Index int
	Name  string
	Err   error
}

// Age holds a viewer's age. Legacy files may contain non-numeric values;
// those are kept verbatim so a rewrite does not lose them.
type Age struct {
	Value float64
	Valid bool
	raw   json.RawMessage
}

// NewAge returns a numeric age
func NewAge(v float64) Age {
	return Age{Value: v, Valid: true}
}

func (a Age) MarshalJSON() ([]byte, error) {
	if a.Valid {
		return json.Marshal(a.Value)
	}
	if len(a.raw) > 0 {
		return a.raw, nil
	}
	return []byte("null"), nil
}

func (a *Age) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil && !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = Age{Value: v, Valid: true}
		return nil
	}
	*a = Age{raw: append(json.RawMessage(nil), data...)}
	return nil
}

func (a Age) String() string {
	if a.Valid {
		return strconv.FormatFloat(a.Value, 'f', -1, 64)
	}
	return string(a.raw)
}

// Score returns the 1..5 score of a Likert label
func Score(label string) (int, bool) {
	for i, l := range LikertLabels {
		if l == label {
			return i + 1, true
		}
	}
	return 0, false
}

// IsLikertLabel reports whether s is one of the five answer labels
func IsLikertLabel(s string) bool {
	_, ok := Score(s)
	return ok
}
