// Package seed fills an empty people table with synthetic rows in fixed-size batches.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/offthegrid/offthegrid/internal/database"
	"github.com/offthegrid/offthegrid/internal/logging"
	"github.com/offthegrid/offthegrid/internal/models"
	"github.com/offthegrid/offthegrid/internal/validation"
)

const (
	DefaultCount     = 1000
	DefaultBatchSize = 100
)

// ErrInvalidCount is returned for a negative target row count
var ErrInvalidCount = errors.New("seed count must not be negative")

// Store is the storage the seeder writes through
type Store interface {
	CountPeople(ctx context.Context) (int64, error)
	InsertPeople(ctx context.Context, people []models.Person) (int64, error)
}

// Source produces the people written for each chunk; *Generator is the default
type Source interface {
	People(n int) []models.Person
}

// Chunk is one batch of the seed plan
type Chunk struct {
	Index int
	Size  int
}

// Plan splits total rows into ceil(total/batchSize) chunks; only the last may be short.
// A non-positive batchSize falls back to DefaultBatchSize.
func Plan(total, batchSize int) []Chunk {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if total <= 0 {
		return nil
	}

	chunks := make([]Chunk, 0, (total+batchSize-1)/batchSize)
	for offset, index := 0, 0; offset < total; offset, index = offset+batchSize, index+1 {
		chunks = append(chunks, Chunk{Index: index, Size: min(batchSize, total-offset)})
	}
	return chunks
}

// Result reports what Initialize did.
//
// Skipped is set only when the table already held rows. A zero count on an
// empty table yields Skipped == false with no batches.
type Result struct {
	Skipped  bool
	Existing int64
	Inserted int64
	Batches  int
	Duration time.Duration
}

// Option configures a Seeder
type Option func(*Seeder)

// WithBatchSize sets the number of rows generated and committed per batch
func WithBatchSize(n int) Option {
	return func(s *Seeder) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// Seeder runs the one-shot seed of the people table
type Seeder struct {
	store     Store
	gen       Source
	logger    *logging.Logger
	batchSize int
}

// New creates a seeder writing generated people to store
func New(store Store, gen Source, logger *logging.Logger, opts ...Option) *Seeder {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Seeder{
		store:     store,
		gen:       gen,
		logger:    logger.WithComponent("seed"),
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize inserts exactly count generated people if and only if the table
// is empty. Each batch is committed on its own; the first failing batch
// aborts the run and earlier batches stay committed.
func (s *Seeder) Initialize(ctx context.Context, count int) (Result, error) {
	if count < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	existing, err := s.store.CountPeople(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("check existing people: %w", err)
	}
	if existing > 0 {
		s.logger.Seed("database already initialized", logging.FieldExisting, existing)
		return Result{Skipped: true, Existing: existing}, nil
	}

	chunks := Plan(count, s.batchSize)
	if len(chunks) == 0 {
		s.logger.Seed("no rows requested", logging.FieldTotal, count)
		return Result{}, nil
	}

	s.logger.Seed("chunks to initialize",
		logging.FieldChunkCount, len(chunks),
		logging.FieldTotal, count,
	)

	start := time.Now()
	var result Result
	for _, chunk := range chunks {
		s.logger.Seed("generating rows of people",
			logging.FieldChunkIndex, chunk.Index,
			logging.FieldChunkSize, chunk.Size,
		)

		written, err := s.insertChunk(ctx, chunk)
		if err != nil {
			s.logger.WithError(err).Error("seed: chunk failed",
				logging.FieldChunkIndex, chunk.Index,
				logging.FieldErrorKind, database.ErrorKind(err),
				logging.FieldRows, result.Inserted,
			)
			result.Duration = time.Since(start)
			return result, fmt.Errorf("seed chunk %d of %d: %w", chunk.Index, len(chunks), err)
		}

		result.Inserted += written
		result.Batches++
	}
	result.Duration = time.Since(start)

	s.logger.Seed("database initialized",
		logging.FieldRows, result.Inserted,
		logging.FieldChunkCount, result.Batches,
		logging.FieldDurationMs, result.Duration.Milliseconds(),
	)
	return result, nil
}

// insertChunk generates one chunk, checks it and writes it in one transaction
func (s *Seeder) insertChunk(ctx context.Context, chunk Chunk) (int64, error) {
	people := s.gen.People(chunk.Size)
	if err := validation.ValidatePeople(people); err != nil {
		return 0, fmt.Errorf("generated invalid row: %w", err)
	}
	return s.store.InsertPeople(ctx, people)
}
