// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the survey records, the questionnaire, and their validation.

# Records

  - ViewerRecord: demographic intake (name, age, sex, ethnicity, disabled)
  - SurveyRecord: questionnaire answers bound to a viewer by viewer_id
  - Answers: question key -> Likert label

Records are stored as JSON arrays. ID, viewer_id, and submitted_at are assigned
by the store; files written before they existed are still readable.

# Age

Age keeps numeric ages as float64. A non-numeric value found in an old file is
kept verbatim (Valid == false) and rewritten unchanged:

	var a models.Age
	_ = json.Unmarshal([]byte(`"forty"`), &a) // a.Valid == false

# Likert Labels

The five answer labels, in scale order:

	StronglyAgree    = "1. Strongly Agree"
	Agree            = "2. Agree"
	NeitherAgree     = "3. Neither Agree"
	Disagree         = "4. Disagree"
	StronglyDisagree = "5. Strongly Disagree"

Score returns the numeric prefix (1..5) of a label.

# Questionnaire

DefaultQuestionnaire holds the three sculpture questions. LoadQuestionnaire
reads a replacement from YAML:

	questions:
	  - key: q1
	    text: Enjoyed the sculpture?
	ethnicities: [White, Black, Chinese, Asian, Others]

# Schemas

FileSchemas publishes JSON Schemas for both data files.
*/
package models
