// Package validation checks people rows before they reach storage.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/offthegrid/offthegrid/internal/models"
)

// MaxTextLength bounds name and hobby, in runes
const MaxTextLength = 255

var (
	ErrInvalidPerson    = errors.New("invalid person")
	ErrEmptyField       = errors.New("field is empty")
	ErrFieldTooLong     = errors.New("field too long")
	ErrNotNormalized    = errors.New("field is not NFC normalized")
	ErrInvalidUnicode   = errors.New("field contains invalid unicode")
	ErrInvalidCharacter = errors.New("field contains control or format characters")
	ErrAgeOutOfRange    = errors.New("age out of range")
)

// Blocked Unicode categories
var blockedCategories = []*unicode.RangeTable{
	unicode.Cc, // Control characters
	unicode.Cf, // Format characters (zero-width, etc.)
	unicode.Cs, // Surrogate characters
	unicode.Co, // Private use characters
}

// FieldError reports which field of which row failed
type FieldError struct {
	Index int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("person %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *FieldError) Unwrap() []error {
	return []error{ErrInvalidPerson, e.Err}
}

// ValidateText checks a single text field: non-blank, bounded, valid UTF-8
// in NFC form and free of control characters.
func ValidateText(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrEmptyField
	}
	if !utf8.ValidString(value) {
		return ErrInvalidUnicode
	}
	if utf8.RuneCountInString(value) > MaxTextLength {
		return ErrFieldTooLong
	}
	if !norm.NFC.IsNormalString(value) {
		return ErrNotNormalized
	}
	for _, r := range value {
		if unicode.IsOneOf(blockedCategories, r) {
			return ErrInvalidCharacter
		}
	}
	return nil
}

// ValidatePerson checks one row; index is reported in the error
func ValidatePerson(index int, p models.Person) error {
	if err := ValidateText(p.Name); err != nil {
		return &FieldError{Index: index, Field: "name", Err: err}
	}
	if !p.InAgeRange() {
		return &FieldError{
			Index: index,
			Field: "age",
			Err:   fmt.Errorf("%w: %d not in [%d, %d]", ErrAgeOutOfRange, p.Age, models.MinAge, models.MaxAge),
		}
	}
	if err := ValidateText(p.Hobby); err != nil {
		return &FieldError{Index: index, Field: "hobby", Err: err}
	}
	return nil
}

// ValidatePeople returns the first invalid row of batch, or nil
func ValidatePeople(batch []models.Person) error {
	for i, p := range batch {
		if err := ValidatePerson(i, p); err != nil {
			return err
		}
	}
	return nil
}
