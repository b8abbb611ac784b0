// Package validate parses and checks interactive input.
package validate

import (
	"fmt"
	"strconv"
	"strings"
)

// Temperature bounds, both exclusive.
const (
	MinTemperature = 35.0
	MaxTemperature = 42.0
)

// ValidationError describes input that must be asked for again.
type ValidationError struct {
	Input   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidf(input, format string, args ...any) error {
	return &ValidationError{Input: input, Message: fmt.Sprintf(format, args...)}
}

// Parse runs parse on the trimmed input and checks the result with accept.
// A parse failure reports parseMsg, a rejected value reports rangeMsg.
func Parse[T any](input string, parse func(string) (T, error), accept func(T) bool, parseMsg, rangeMsg string) (T, error) {
	var zero T
	s := strings.TrimSpace(input)
	v, err := parse(s)
	if err != nil {
		return zero, invalidf(input, "%s", parseMsg)
	}
	if accept != nil && !accept(v) {
		return zero, invalidf(input, "%s", rangeMsg)
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// Temperature accepts a decimal strictly between 35.0 and 42.0 and returns
// the trimmed text as typed.
func Temperature(input string) (string, error) {
	_, err := Parse(input, parseFloat, func(t float64) bool {
		return t > MinTemperature && t < MaxTemperature
	}, "Temperature must be a number", "Temperature has not a valid value")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// parseMagnitude parses an optionally signed integer and drops the sign.
func parseMagnitude(s string) (uint64, error) {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	return strconv.ParseUint(s, 10, 63)
}

// Dose accepts an integer and returns its absolute value as text.
func Dose(input string) (string, error) {
	n, err := Parse(input, parseMagnitude, nil, "Dose must be a number", "")
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(n, 10), nil
}

// PatientName accepts a non-empty name usable as part of a file name.
func PatientName(input string) (string, error) {
	name := strings.TrimSpace(input)
	if name == "" {
		return "", invalidf(input, "Patient name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", invalidf(input, "Patient name must not contain path separators")
	}
	return name, nil
}

// Selection accepts an integer in [1, n].
func Selection(input string, n int) (int, error) {
	return Parse(input, strconv.Atoi, func(i int) bool {
		return i >= 1 && i <= n
	}, "Number track must be a positive number", "Please, choose a valid track")
}
