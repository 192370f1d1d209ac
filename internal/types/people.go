// Package types provides shared parameter and result types
package types

// ListPeopleParams represents parameters for ListPeople
type ListPeopleParams struct {
	Limit  int
	Offset int
}

// Normalize clamps the page to sane bounds: limit in [1, 1000], offset >= 0.
func (p ListPeopleParams) Normalize() ListPeopleParams {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 1000 {
		p.Limit = 1000
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
