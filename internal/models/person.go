// Package models defines the entities persisted by offthegrid.
package models

// Age bounds used when generating people. Storage does not enforce them.
const (
	MinAge = 16
	MaxAge = 89
)

// PeopleTable is the table backing Person.
const PeopleTable = "people"

// Person is a synthetic demo record. ID is zero until storage assigns it.
type Person struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Hobby string `json:"hobby"`
}

// InAgeRange reports whether the person's age lies within [MinAge, MaxAge].
func (p Person) InAgeRange() bool {
	return p.Age >= MinAge && p.Age <= MaxAge
}
