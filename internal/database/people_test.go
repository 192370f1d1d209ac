package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/offthegrid/offthegrid/internal/models"
	"github.com/offthegrid/offthegrid/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePeople(n int) []models.Person {
	people := make([]models.Person, n)
	for i := range people {
		people[i] = models.Person{
			Name:  fmt.Sprintf("Person %d", i),
			Age:   models.MinAge + i%(models.MaxAge-models.MinAge+1),
			Hobby: "Books",
		}
	}
	return people
}

func TestCountAndHasPeopleEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewPeopleRepository(setupTestDatabase(t), nil)

	count, err := repo.CountPeople(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	has, err := repo.HasPeople(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestInsertPeople(t *testing.T) {
	ctx := context.Background()
	repo := NewPeopleRepository(setupTestDatabase(t), nil)

	written, err := repo.InsertPeople(ctx, samplePeople(3))
	require.NoError(t, err)
	assert.Equal(t, int64(3), written)

	count, err := repo.CountPeople(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	has, err := repo.HasPeople(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	people, err := repo.ListPeople(ctx, types.ListPeopleParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, "Person 0", people[0].Name)
	assert.Equal(t, models.MinAge, people[0].Age)
	assert.Equal(t, "Books", people[0].Hobby)
}

func TestInsertPeopleIgnoresCallerIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewPeopleRepository(setupTestDatabase(t), nil)

	people := samplePeople(2)
	people[0].ID = 500
	people[1].ID = 500

	_, err := repo.InsertPeople(ctx, people)
	require.NoError(t, err)

	stored, err := repo.ListPeople(ctx, types.ListPeopleParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, int64(1), stored[0].ID)
	assert.Equal(t, int64(2), stored[1].ID)
}

func TestInsertPeopleEmpty(t *testing.T) {
	repo := NewPeopleRepository(setupTestDatabase(t), nil)

	written, err := repo.InsertPeople(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, written)
}

func TestInsertPeopleSpansStatements(t *testing.T) {
	ctx := context.Background()
	repo := NewPeopleRepository(setupTestDatabase(t), nil)

	n := maxRowsPerStatement*2 + 17
	written, err := repo.InsertPeople(ctx, samplePeople(n))
	require.NoError(t, err)
	assert.Equal(t, int64(n), written)

	count, err := repo.CountPeople(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)
}

func TestInsertPeopleAssignsUniqueIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewPeopleRepository(setupTestDatabase(t), nil)

	for i := 0; i < 3; i++ {
		_, err := repo.InsertPeople(ctx, samplePeople(100))
		require.NoError(t, err)
	}

	people, err := repo.ListPeople(ctx, types.ListPeopleParams{Limit: 1000})
	require.NoError(t, err)
	require.Len(t, people, 300)

	seen := make(map[int64]bool, len(people))
	for i, p := range people {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		if i > 0 {
			assert.Greater(t, p.ID, people[i-1].ID)
		}
	}
}

func TestInsertPeopleRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	db := setupTestDatabase(t)
	repo := NewPeopleRepository(db, nil)

	cctx, cancel := context.WithCancel(ctx)
	cancel()

	_, err := repo.InsertPeople(cctx, samplePeople(5))
	require.Error(t, err)

	count, err := repo.CountPeople(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetPersonByID(t *testing.T) {
	ctx := context.Background()
	repo := NewPeopleRepository(setupTestDatabase(t), nil)

	_, err := repo.InsertPeople(ctx, samplePeople(2))
	require.NoError(t, err)

	person, err := repo.GetPersonByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), person.ID)
	assert.Equal(t, "Person 1", person.Name)

	_, err = repo.GetPersonByID(ctx, 99)
	assert.True(t, errors.Is(err, ErrPersonNotFound))
}

func TestListPeoplePagination(t *testing.T) {
	ctx := context.Background()
	repo := NewPeopleRepository(setupTestDatabase(t), nil)

	_, err := repo.InsertPeople(ctx, samplePeople(25))
	require.NoError(t, err)

	page, err := repo.ListPeople(ctx, types.ListPeopleParams{Limit: 10, Offset: 20})
	require.NoError(t, err)
	require.Len(t, page, 5)
	assert.Equal(t, int64(21), page[0].ID)

	defaults, err := repo.ListPeople(ctx, types.ListPeopleParams{})
	require.NoError(t, err)
	assert.Len(t, defaults, 20)
}

func TestAgeRange(t *testing.T) {
	ctx := context.Background()
	repo := NewPeopleRepository(setupTestDatabase(t), nil)

	youngest, oldest, err := repo.AgeRange(ctx)
	require.NoError(t, err)
	assert.Zero(t, youngest)
	assert.Zero(t, oldest)

	_, err = repo.InsertPeople(ctx, []models.Person{
		{Name: "A", Age: 30, Hobby: "Toys"},
		{Name: "B", Age: 17, Hobby: "Games"},
		{Name: "C", Age: 88, Hobby: "Music"},
	})
	require.NoError(t, err)

	youngest, oldest, err = repo.AgeRange(ctx)
	require.NoError(t, err)
	assert.Equal(t, 17, youngest)
	assert.Equal(t, 88, oldest)
}

func TestCountPeopleWithoutSchema(t *testing.T) {
	repo := NewPeopleRepository(openTestDB(t), nil)

	_, err := repo.CountPeople(context.Background())
	assert.Error(t, err)
}

func TestBuildInsertPostgresPlaceholders(t *testing.T) {
	repo := &PeopleRepository{db: &DB{target: Target{Dialect: Postgres}}}

	query, args := repo.buildInsert(samplePeople(2))
	assert.Equal(t, "INSERT INTO people (name, age, hobby) VALUES ($1, $2, $3), ($4, $5, $6)", query)
	assert.Len(t, args, 6)
}
