// Package docstore keeps revisions of raw documents in SQLite.
package docstore

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/iw2rmb/inkwell/content"
)

var ErrNotFound = errors.New("document not found")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS revisions (
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	rev         INTEGER NOT NULL,
	digest      TEXT NOT NULL,
	raw         TEXT NOT NULL,
	created_at  INTEGER NOT NULL,
	PRIMARY KEY (document_id, rev)
);`

// Document describes a stored document and its head revision.
type Document struct {
	ID        string
	Title     string
	Rev       int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
	now func() time.Time
}

// Open opens or creates the database at path. ":memory:" opens a private
// in-memory database.
func Open(path string, log *zap.SugaredLogger) (*Store, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	for _, stmt := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		schema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init %s: %w", path, err)
		}
	}
	return &Store{db: db, log: log, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Create stores c as revision 1 of a new document and returns its id.
func (s *Store) Create(ctx context.Context, title string, c *content.Content) (string, error) {
	raw, digest, err := encode(c)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	now := s.now().UnixMilli()

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		query, args, err := sq.
			Insert("documents").
			Columns("id", "title", "created_at", "updated_at").
			Values(id, title, now, now).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
		return insertRevision(ctx, tx, id, 1, digest, raw, now)
	})
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	s.log.Debugw("document created", "id", id, "title", title)
	return id, nil
}

// Save appends c as a new revision of id. When c encodes to the same bytes
// as the head revision nothing is written and saved is false.
func (s *Store) Save(ctx context.Context, id string, c *content.Content) (rev int, saved bool, err error) {
	raw, digest, err := encode(c)
	if err != nil {
		return 0, false, err
	}
	now := s.now().UnixMilli()

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		head, headDigest, err := headRevision(ctx, tx, id)
		if err != nil {
			return err
		}
		if headDigest == digest {
			rev = head
			return nil
		}
		rev, saved = head+1, true
		if err := insertRevision(ctx, tx, id, rev, digest, raw, now); err != nil {
			return err
		}
		query, args, err := sq.
			Update("documents").
			Set("updated_at", now).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return 0, false, fmt.Errorf("save document %s: %w", id, err)
	}
	if saved {
		s.log.Debugw("document saved", "id", id, "rev", rev)
	} else {
		s.log.Debugw("document unchanged", "id", id, "rev", rev)
	}
	return rev, saved, nil
}

// Load returns the head revision of id.
func (s *Store) Load(ctx context.Context, id string) (*content.Content, Document, error) {
	query, args, err := sq.
		Select("d.id", "d.title", "d.created_at", "d.updated_at", "r.rev", "r.raw").
		From("documents d").
		Join("revisions r ON r.document_id = d.id").
		Where(sq.Eq{"d.id": id}).
		OrderBy("r.rev DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, Document{}, err
	}

	var (
		doc              Document
		created, updated int64
		raw              string
	)
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&doc.ID, &doc.Title, &created, &updated, &doc.Rev, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, Document{}, fmt.Errorf("load %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, Document{}, fmt.Errorf("load %s: %w", id, err)
	}
	doc.CreatedAt, doc.UpdatedAt = time.UnixMilli(created), time.UnixMilli(updated)

	c, err := content.Unmarshal([]byte(raw))
	if err != nil {
		return nil, Document{}, fmt.Errorf("load %s rev %d: %w", id, doc.Rev, err)
	}
	return c, doc, nil
}

// List returns all documents, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Document, error) {
	query, args, err := sq.
		Select("d.id", "d.title", "d.created_at", "d.updated_at", "COALESCE(MAX(r.rev), 0)").
		From("documents d").
		LeftJoin("revisions r ON r.document_id = d.id").
		GroupBy("d.id").
		OrderBy("d.updated_at DESC", "d.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			doc              Document
			created, updated int64
		)
		if err := rows.Scan(&doc.ID, &doc.Title, &created, &updated, &doc.Rev); err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		doc.CreatedAt, doc.UpdatedAt = time.UnixMilli(created), time.UnixMilli(updated)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func headRevision(ctx context.Context, tx *sql.Tx, id string) (int, string, error) {
	query, args, err := sq.
		Select("r.rev", "r.digest").
		From("documents d").
		LeftJoin("revisions r ON r.document_id = d.id").
		Where(sq.Eq{"d.id": id}).
		OrderBy("r.rev DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return 0, "", err
	}
	var (
		rev    sql.NullInt64
		digest sql.NullString
	)
	err = tx.QueryRowContext(ctx, query, args...).Scan(&rev, &digest)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", ErrNotFound
	}
	if err != nil {
		return 0, "", err
	}
	return int(rev.Int64), digest.String, nil
}

func insertRevision(ctx context.Context, tx *sql.Tx, id string, rev int, digest, raw string, now int64) error {
	query, args, err := sq.
		Insert("revisions").
		Columns("document_id", "rev", "digest", "raw", "created_at").
		Values(id, rev, digest, raw, now).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

func encode(c *content.Content) (raw, digest string, err error) {
	data, err := c.MarshalJSON()
	if err != nil {
		return "", "", fmt.Errorf("encode content: %w", err)
	}
	sum := blake3.Sum256(data)
	return string(data), hex.EncodeToString(sum[:]), nil
}
