package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Question is one Likert item
type Question struct {
	Key  string `yaml:"key"`
	Text string `yaml:"text"`
}

// Questionnaire describes the intake options and the questions asked
type Questionnaire struct {
	Questions   []Question `yaml:"questions"`
	Ethnicities []string   `yaml:"ethnicities"`
}

// DefaultQuestionnaire returns the built-in sculpture questionnaire
func DefaultQuestionnaire() Questionnaire {
	return Questionnaire{
		Questions: []Question{
			{Key: "q1", Text: "Enjoyed the sculpture?"},
			{Key: "q2", Text: "Were curious as to how it worked?"},
			{Key: "q3", Text: "Wanted to know more about science as a result?"},
		},
		Ethnicities: []string{"White", "Black", "Chinese", "Asian", "Others"},
	}
}

// LoadQuestionnaire reads a questionnaire from a YAML file.
// Missing ethnicities fall back to the defaults.
func LoadQuestionnaire(filename string) (Questionnaire, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Questionnaire{}, fmt.Errorf("failed to read questionnaire %s: %w", filename, err)
	}

	var q Questionnaire
	if err := yaml.Unmarshal(data, &q); err != nil {
		return Questionnaire{}, fmt.Errorf("failed to parse questionnaire YAML: %w", err)
	}
	if len(q.Ethnicities) == 0 {
		q.Ethnicities = DefaultQuestionnaire().Ethnicities
	}

	if err := q.Validate(); err != nil {
		return Questionnaire{}, fmt.Errorf("invalid questionnaire %s: %w", filename, err)
	}
	return q, nil
}

// Validate checks that questions exist with unique keys and text
func (q Questionnaire) Validate() error {
	if len(q.Questions) == 0 {
		return errors.New("at least one question is required")
	}
	seen := make(map[string]bool, len(q.Questions))
	for i, question := range q.Questions {
		if question.Key == "" {
			return fmt.Errorf("question %d must have a key", i+1)
		}
		if question.Text == "" {
			return fmt.Errorf("question %q must have text", question.Key)
		}
		if seen[question.Key] {
			return fmt.Errorf("duplicate question key %q", question.Key)
		}
		seen[question.Key] = true
	}
	for _, e := range q.Ethnicities {
		if e == "" {
			return errors.New("ethnicity options must not be empty")
		}
	}
	return nil
}

// Text returns the question text for key, or the key itself
func (q Questionnaire) Text(key string) string {
	for _, question := range q.Questions {
		if question.Key == key {
			return question.Text
		}
	}
	return key
}

// Missing returns the keys of questions without an answer, in order
func (q Questionnaire) Missing(answers Answers) []string {
	var missing []string
	for _, question := range q.Questions {
		if answers[question.Key] == "" {
			missing = append(missing, question.Key)
		}
	}
	return missing
}
