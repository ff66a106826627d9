// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danielhkuo/sculpture-survey/models"
)

// ErrClosed is returned when the input ends
var ErrClosed = errors.New("session closed")

// Screen names
const (
	Landing       = "landing"
	Intake        = "intake"
	Questionnaire = "questionnaire"
	Login         = "login"
	Dashboard     = "dashboard"
	Analysis      = "analysis"
	Export        = "export"
	Exit          = "exit"
)

// Screen runs one step of the flow and returns the name of the next screen
type Screen func(ctx context.Context, s *Session) (string, error)

// Level of a notification
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Session is the state of one terminal run.
// Viewer is the record stored by the last intake; Admin is set after login.
type Session struct {
	in  *bufio.Reader
	out io.Writer

	Viewer *models.ViewerRecord
	Admin  bool
}

// New creates a session reading answers from in and printing to out
func New(in io.Reader, out io.Writer) *Session {
	return &Session{in: bufio.NewReader(in), out: out}
}

// Out is where screens print
func (s *Session) Out() io.Writer {
	return s.out
}

func (s *Session) Printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) Println(args ...any) {
	fmt.Fprintln(s.out, args...)
}

// Notify prints a notification the user must see before continuing
func (s *Session) Notify(level Level, title, msg string) {
	fmt.Fprintf(s.out, "[%s] %s: %s\n", level, title, msg)
}

// Ask prints prompt and returns the trimmed line typed in reply
func (s *Session) Ask(prompt string) (string, error) {
	fmt.Fprintf(s.out, "%s: ", prompt)

	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrClosed
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Choose prints numbered options and returns the index picked.
// A blank reply returns -1 so optional fields can be left empty.
// Replies may be the option number or its text (case-insensitive).
func (s *Session) Choose(prompt string, options []string) (int, error) {
	for i, opt := range options {
		fmt.Fprintf(s.out, "  %d) %s\n", i+1, opt)
	}

	for {
		reply, err := s.Ask(prompt)
		if err != nil {
			return -1, err
		}
		if reply == "" {
			return -1, nil
		}
		if n, err := strconv.Atoi(reply); err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		for i, opt := range options {
			if strings.EqualFold(reply, opt) {
				return i, nil
			}
		}
		fmt.Fprintf(s.out, "Please pick 1-%d.\n", len(options))
	}
}

// Menu is Choose without the blank option: it repeats until a pick is made
func (s *Session) Menu(prompt string, options []string) (int, error) {
	for {
		i, err := s.Choose(prompt, options)
		if err != nil || i >= 0 {
			return i, err
		}
	}
}
