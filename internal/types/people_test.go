package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListPeopleParamsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListPeopleParams
		want ListPeopleParams
	}{
		{name: "defaults", in: ListPeopleParams{}, want: ListPeopleParams{Limit: 20}},
		{name: "kept", in: ListPeopleParams{Limit: 50, Offset: 10}, want: ListPeopleParams{Limit: 50, Offset: 10}},
		{name: "limit clamped", in: ListPeopleParams{Limit: 5000}, want: ListPeopleParams{Limit: 1000}},
		{name: "negative offset", in: ListPeopleParams{Limit: 5, Offset: -3}, want: ListPeopleParams{Limit: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
