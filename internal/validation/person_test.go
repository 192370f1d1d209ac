package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offthegrid/offthegrid/internal/models"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "latin name", input: "Jane Doe"},
		{name: "cyrillic name", input: "Иван Петров"},
		{name: "accented NFC", input: "Zo\u00eb"},
		{name: "empty", input: "", wantErr: ErrEmptyField},
		{name: "blank", input: "   ", wantErr: ErrEmptyField},
		{name: "too long", input: strings.Repeat("a", MaxTextLength+1), wantErr: ErrFieldTooLong},
		{name: "max length", input: strings.Repeat("\u00fc", MaxTextLength)},
		{name: "decomposed", input: "Zoe\u0308", wantErr: ErrNotNormalized},
		{name: "invalid utf8", input: "a\xffb", wantErr: ErrInvalidUnicode},
		{name: "null byte", input: "Jane\x00", wantErr: ErrInvalidCharacter},
		{name: "zero width space", input: "Ja\u200bne", wantErr: ErrInvalidCharacter},
		{name: "private use", input: "Jane\ue000", wantErr: ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidatePerson(t *testing.T) {
	valid := models.Person{Name: "Jane Doe", Age: 30, Hobby: "Books"}
	assert.NoError(t, ValidatePerson(0, valid))

	tests := []struct {
		name    string
		mutate  func(*models.Person)
		field   string
		wantErr error
	}{
		{name: "empty name", mutate: func(p *models.Person) { p.Name = "" }, field: "name", wantErr: ErrEmptyField},
		{name: "too young", mutate: func(p *models.Person) { p.Age = models.MinAge - 1 }, field: "age", wantErr: ErrAgeOutOfRange},
		{name: "too old", mutate: func(p *models.Person) { p.Age = models.MaxAge + 1 }, field: "age", wantErr: ErrAgeOutOfRange},
		{name: "empty hobby", mutate: func(p *models.Person) { p.Hobby = " " }, field: "hobby", wantErr: ErrEmptyField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			err := ValidatePerson(4, p)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidPerson)

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, 4, fieldErr.Index)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestValidatePeople(t *testing.T) {
	batch := []models.Person{
		{Name: "A", Age: 20, Hobby: "Toys"},
		{Name: "B", Age: 16, Hobby: "Games"},
		{Name: "C", Age: 89, Hobby: "Music"},
	}
	assert.NoError(t, ValidatePeople(batch))
	assert.NoError(t, ValidatePeople(nil))

	batch[2].Age = 90
	err := ValidatePeople(batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "person 2: age")
}
