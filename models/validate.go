// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

var (
	ErrIncomplete    = errors.New("please fill out all fields")
	ErrInvalidAge    = errors.New("please enter the age in integers")
	ErrInvalidAnswer = errors.New("answer is not a Likert label")
	ErrNoAnswers     = errors.New("please answer all questions before submitting")
)

// Validate checks presence and type of every viewer field
func (v ViewerRecord) Validate() error {
	if strings.TrimSpace(v.Name) == "" || strings.TrimSpace(v.Ethnicity) == "" {
		return ErrIncomplete
	}
	if v.Sex == "" || v.Disabled == "" {
		return ErrIncomplete
	}
	if !v.Age.Valid || !(v.Age.Value > 0) || math.IsInf(v.Age.Value, 0) {
		return ErrInvalidAge
	}
	if !slices.Contains(SexValues, v.Sex) {
		return fmt.Errorf("%w: sex %q", ErrIncomplete, v.Sex)
	}
	if !slices.Contains(DisabledValues, v.Disabled) {
		return fmt.Errorf("%w: disabled %q", ErrIncomplete, v.Disabled)
	}
	return nil
}

// Validate checks that answers is non-empty and only holds Likert labels
func (a Answers) Validate() error {
	if len(a) == 0 {
		return ErrNoAnswers
	}
	for key, label := range a {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("%w: empty question key", ErrInvalidAnswer)
		}
		if !IsLikertLabel(label) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidAnswer, key, label)
		}
	}
	return nil
}

// Clone returns a copy so stored records never alias caller maps
func (a Answers) Clone() Answers {
	if a == nil {
		return nil
	}
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
