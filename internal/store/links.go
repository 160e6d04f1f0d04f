package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Link represents a row in the links table. PostedBy is assigned at creation
// and never changes; no code path updates the column afterwards.
type Link struct {
	ID          string    `db:"id"`
	Description string    `db:"description"`
	URL         string    `db:"url"`
	PostedBy    string    `db:"posted_by"`
	CreatedAt   time.Time `db:"created_at"`
}

type LinkStore struct {
	db *sqlx.DB
}

func NewLinkStore(db *sqlx.DB) *LinkStore {
	return &LinkStore{db: db}
}

func (s *LinkStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts a new link owned by ownerID.
func (s *LinkStore) Create(ctx context.Context, ownerID, description, url string) (*Link, error) {
	l := &Link{
		ID:          uuid.New().String(),
		Description: description,
		URL:         url,
		PostedBy:    ownerID,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO links (id, description, url, posted_by, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), l.ID, l.Description, l.URL, l.PostedBy, l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetByID returns the link matching id, or ErrNotFound.
func (s *LinkStore) GetByID(ctx context.Context, id string) (*Link, error) {
	var l Link
	err := s.db.GetContext(ctx, &l, s.q(`SELECT * FROM links WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateOwned modifies a link's description and url in a single conditional
// write scoped to the requester's ownership. The WHERE clause carries the
// ownership check so the database applies it atomically; there is no
// read-then-write window. Zero affected rows means the link does not exist
// or belongs to someone else, and which of the two is not disclosed.
func (s *LinkStore) UpdateOwned(ctx context.Context, requesterID, id, description, url string) (*Link, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE links SET description = ?, url = ? WHERE id = ? AND posted_by = ?
	`), description, url, id, requesterID)
	if err != nil {
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFoundOrForbidden
	}
	return s.GetByID(ctx, id)
}

// DeleteOwned removes a link with the same ownership scoping as UpdateOwned.
func (s *LinkStore) DeleteOwned(ctx context.Context, requesterID, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM links WHERE id = ? AND posted_by = ?
	`), id, requesterID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

// Feed returns the links matching q's filter within its pagination window,
// plus the total count of matches ignoring the window. The count and the
// page share the same filter clause so they can never drift apart.
func (s *LinkStore) Feed(ctx context.Context, q FeedQuery) ([]*Link, int, error) {
	where, whereArgs := q.whereClause()

	var count int
	if err := s.db.GetContext(ctx, &count, s.q(`SELECT COUNT(*) FROM links`+where), whereArgs...); err != nil {
		return nil, 0, err
	}

	limit, limitArgs := q.limitClause()
	query := `SELECT * FROM links` + where + q.orderClause() + limit
	args := append(whereArgs, limitArgs...)

	links := []*Link{}
	if err := s.db.SelectContext(ctx, &links, s.q(query), args...); err != nil {
		return nil, 0, err
	}
	return links, count, nil
}
