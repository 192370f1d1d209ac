package models

import "testing"

func TestPersonInAgeRange(t *testing.T) {
	tests := []struct {
		age  int
		want bool
	}{
		{age: 15, want: false},
		{age: MinAge, want: true},
		{age: 40, want: true},
		{age: MaxAge, want: true},
		{age: 90, want: false},
	}

	for _, tt := range tests {
		p := Person{Name: "Jane Doe", Age: tt.age, Hobby: "Books"}
		if got := p.InAgeRange(); got != tt.want {
			t.Errorf("Person{Age: %d}.InAgeRange() = %v, want %v", tt.age, got, tt.want)
		}
	}
}

func TestPersonZeroID(t *testing.T) {
	var p Person
	if p.ID != 0 {
		t.Errorf("Expected unsaved person to have ID 0, got %d", p.ID)
	}
}
