package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	KindParse Kind = iota + 1
	KindOutOfRange
)

var (
	ErrNotANumber = errors.New("not a number")
	ErrOutOfRange = errors.New("selection out of range")
)

// InputError describes a rejected line of user input.
type InputError struct {
	Field   string
	Input   string
	Kind    Kind
	Message string
}

func (e InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e InputError) Unwrap() error {
	switch e.Kind {
	case KindParse:
		return ErrNotANumber
	case KindOutOfRange:
		return ErrOutOfRange
	}
	return nil
}

// ParseChoice parses one line of input as an integer.
func ParseChoice(field, line string) (int, error) {
	trimmed := strings.TrimSpace(line)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, InputError{
			Field:   field,
			Input:   trimmed,
			Kind:    KindParse,
			Message: fmt.Sprintf("%q is not a number", trimmed),
		}
	}
	return n, nil
}

// CheckRange verifies min <= n <= max.
func CheckRange(field string, n, min, max int) error {
	if n < min || n > max {
		return InputError{
			Field:   field,
			Input:   strconv.Itoa(n),
			Kind:    KindOutOfRange,
			Message: fmt.Sprintf("must be between %d and %d", min, max),
		}
	}
	return nil
}

// ParseSelection parses a 1-based index into a list of size count.
func ParseSelection(field, line string, count int) (int, error) {
	n, err := ParseChoice(field, line)
	if err != nil {
		return 0, err
	}
	if err := CheckRange(field, n, 1, count); err != nil {
		return 0, err
	}
	return n, nil
}
