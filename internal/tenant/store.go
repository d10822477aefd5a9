package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orghub_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrInvalidIdentifier is returned when a caller addresses a partition with a
// string that is not a normalizer-produced identifier.
var ErrInvalidIdentifier = errors.New("invalid partition identifier")

// schemaName is the Postgres schema all tenant partitions live in,
// separate from the directory tables in public.
const schemaName = "tenant"

// copyBatchSize bounds how many documents are read per round-trip during a
// partition copy.
const copyBatchSize = 500

// Store manages tenant partitions. A partition is a table in the tenant
// schema holding opaque JSONB documents; the store never interprets document
// contents.
type Store struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewStore creates a partition store on the shared connection pool.
func NewStore(pool *pgxpool.Pool, log *logger.Logger) *Store {
	return &Store{pool: pool, log: log}
}

func tableFor(partitionID string) (string, error) {
	if !ValidIdentifier(partitionID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, partitionID)
	}
	return pgx.Identifier{schemaName, partitionID}.Sanitize(), nil
}

// Create provisions an empty partition. Creating an already existing
// partition is a no-op, so provisioning retries are safe.
func (s *Store) Create(ctx context.Context, partitionID string) error {
	table, err := tableFor(partitionID)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS %s (
      id uuid PRIMARY KEY,
      doc jsonb NOT NULL,
      created_at timestamptz NOT NULL DEFAULT now()
    )
  `, table))
	if err != nil {
		return err
	}

	s.log.PartitionEvent("created", partitionID)
	return nil
}

// Drop destroys a partition and every document in it. Dropping a partition
// that does not exist is a no-op.
func (s *Store) Drop(ctx context.Context, partitionID string) error {
	table, err := tableFor(partitionID)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
		return err
	}

	s.log.PartitionEvent("dropped", partitionID)
	return nil
}

// Exists reports whether the partition is present.
func (s *Store) Exists(ctx context.Context, partitionID string) (bool, error) {
	if !ValidIdentifier(partitionID) {
		return false, fmt.Errorf("%w: %q", ErrInvalidIdentifier, partitionID)
	}

	var regclass *string
	err := s.pool.QueryRow(ctx,
		`SELECT to_regclass($1)::text`, schemaName+"."+partitionID,
	).Scan(&regclass)
	if err != nil {
		return false, err
	}
	return regclass != nil, nil
}

// Count returns the number of documents in the partition.
func (s *Store) Count(ctx context.Context, partitionID string) (int64, error) {
	table, err := tableFor(partitionID)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, table)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Copy streams every document from one partition into another, assigning each
// a fresh id. The destination must already exist. The source is never
// modified: an interruption mid-copy leaves both partitions intact, and the
// caller only drops the source after Copy returns without error.
func (s *Store) Copy(ctx context.Context, fromID, toID string) (int64, error) {
	fromTable, err := tableFor(fromID)
	if err != nil {
		return 0, err
	}
	toTable, err := tableFor(toID)
	if err != nil {
		return 0, err
	}

	insertSQL := fmt.Sprintf(`INSERT INTO %s (id, doc, created_at) VALUES ($1, $2, $3)`, toTable)
	selectSQL := fmt.Sprintf(`SELECT doc, created_at FROM %s ORDER BY created_at, id LIMIT %d OFFSET $1`, fromTable, copyBatchSize)

	var copied int64
	for offset := int64(0); ; offset += copyBatchSize {
		docs, createdAts, err := s.fetchBatch(ctx, selectSQL, offset)
		if err != nil {
			return copied, err
		}
		if len(docs) == 0 {
			break
		}

		batch := &pgx.Batch{}
		for i := range docs {
			batch.Queue(insertSQL, uuid.New(), docs[i], createdAts[i])
		}
		results := s.pool.SendBatch(ctx, batch)
		for range docs {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return copied, err
			}
		}
		if err := results.Close(); err != nil {
			return copied, err
		}
		copied += int64(len(docs))

		if len(docs) < copyBatchSize {
			break
		}
	}

	s.log.PartitionEvent("copied", fromID+" -> "+toID)
	return copied, nil
}

func (s *Store) fetchBatch(ctx context.Context, selectSQL string, offset int64) ([][]byte, []time.Time, error) {
	rows, err := s.pool.Query(ctx, selectSQL, offset)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var docs [][]byte
	var createdAts []time.Time
	for rows.Next() {
		var doc []byte
		var createdAt time.Time
		if err := rows.Scan(&doc, &createdAt); err != nil {
			return nil, nil, err
		}
		docs = append(docs, doc)
		createdAts = append(createdAts, createdAt)
	}
	return docs, createdAts, rows.Err()
}
