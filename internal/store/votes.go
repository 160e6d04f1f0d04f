package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// VoteStore manages the votes relation between users and links. The
// composite primary key deduplicates votes and the foreign keys guarantee a
// vote only ever references existing rows; the store just translates the
// constraint violations into sentinels.
type VoteStore struct {
	db *sqlx.DB
}

func NewVoteStore(db *sqlx.DB) *VoteStore {
	return &VoteStore{db: db}
}

func (s *VoteStore) q(query string) string { return s.db.Rebind(query) }

// Add records userID's vote on linkID. Returns ErrAlreadyVoted on a repeat
// vote and ErrNotFound when the link does not exist.
func (s *VoteStore) Add(ctx context.Context, linkID, userID string) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO votes (link_id, user_id, created_at) VALUES (?, ?, ?)
	`), linkID, userID, time.Now().UTC())
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrAlreadyVoted
		}
		if isForeignKeyError(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Voters returns the users who voted on linkID. Order is not significant.
func (s *VoteStore) Voters(ctx context.Context, linkID string) ([]*User, error) {
	var users []*User
	err := s.db.SelectContext(ctx, &users, s.q(`
		SELECT u.* FROM users u
		INNER JOIN votes v ON v.user_id = u.id
		WHERE v.link_id = ?
	`), linkID)
	if err != nil {
		return nil, err
	}
	return users, nil
}
