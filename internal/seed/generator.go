package seed

import (
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/offthegrid/offthegrid/internal/models"
)

// Hobbies is the fixed category vocabulary generated people draw from
var Hobbies = []string{
	"Automotive", "Baby", "Beauty", "Books", "Clothing", "Computers",
	"Electronics", "Games", "Garden", "Grocery", "Health", "Home",
	"Industrial", "Jewelry", "Kids", "Movies", "Music", "Outdoors",
	"Shoes", "Sports", "Tools", "Toys",
}

// Generator produces synthetic people from an injectable random source.
// It is not safe for concurrent use.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator builds a generator drawing from src
func NewGenerator(src rand.Source) *Generator {
	return &Generator{faker: gofakeit.NewFaker(src, false)}
}

// NewSeededGenerator builds a reproducible generator; seed 0 seeds from the clock
func NewSeededGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewGenerator(rand.NewPCG(seed, seed))
}

// Person generates one person without an ID
func (g *Generator) Person() models.Person {
	return models.Person{
		Name:  g.faker.Name(),
		Age:   g.faker.Number(models.MinAge, models.MaxAge),
		Hobby: g.faker.RandomString(Hobbies),
	}
}

// People generates n people; n <= 0 yields an empty slice
func (g *Generator) People(n int) []models.Person {
	if n <= 0 {
		return []models.Person{}
	}
	people := make([]models.Person, n)
	for i := range people {
		people[i] = g.Person()
	}
	return people
}
