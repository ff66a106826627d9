// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/danielhkuo/sculpture-survey/models"
)

// IntakeForm holds the raw intake fields as typed
type IntakeForm struct {
	Name      string
	Age       string
	Sex       string
	Ethnicity string
	Disabled  string
}

// Record validates the form and converts it to a viewer record
func (f IntakeForm) Record() (models.ViewerRecord, error) {
	for _, field := range []string{f.Name, f.Age, f.Sex, f.Ethnicity, f.Disabled} {
		if strings.TrimSpace(field) == "" {
			return models.ViewerRecord{}, models.ErrIncomplete
		}
	}

	age, err := strconv.ParseFloat(strings.TrimSpace(f.Age), 64)
	if err != nil {
		return models.ViewerRecord{}, models.ErrInvalidAge
	}

	v := models.ViewerRecord{
		Name:      strings.TrimSpace(f.Name),
		Age:       models.NewAge(age),
		Sex:       models.Sex(f.Sex),
		Ethnicity: strings.TrimSpace(f.Ethnicity),
		Disabled:  models.Disabled(f.Disabled),
	}
	if err := v.Validate(); err != nil {
		return models.ViewerRecord{}, err
	}
	return v, nil
}

// IntakeMessage is the user-facing text for an intake validation error
func IntakeMessage(err error) string {
	if errors.Is(err, models.ErrInvalidAge) {
		return "Please enter the age in integers."
	}
	return "Please fill out all fields."
}

// QuestionnaireForm collects one answer per question
type QuestionnaireForm struct {
	Answers models.Answers
}

func NewQuestionnaireForm() *QuestionnaireForm {
	return &QuestionnaireForm{Answers: models.Answers{}}
}

// Set records label for key; an empty label clears the answer
func (f *QuestionnaireForm) Set(key, label string) {
	if label == "" {
		delete(f.Answers, key)
		return
	}
	f.Answers[key] = label
}

// Submit checks that every question of q has an answer
func (f *QuestionnaireForm) Submit(q models.Questionnaire) (models.Answers, error) {
	if missing := q.Missing(f.Answers); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrNoAnswers, strings.Join(missing, ", "))
	}
	if err := f.Answers.Validate(); err != nil {
		return nil, err
	}
	return f.Answers.Clone(), nil
}

// LoginForm holds the admin login attempt
type LoginForm struct {
	User     string
	Password string
}
