package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"voting-service/internal/domain/vote"
	"voting-service/internal/platform/database"
)

// VoteRepo opens a dedicated connection for every call and closes it before
// returning.
type VoteRepo struct {
	db database.Acquirer
}

func NewVoteRepo(db database.Acquirer) *VoteRepo {
	return &VoteRepo{db: db}
}

func (r *VoteRepo) Create(ctx context.Context, v *vote.Vote) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer database.Release(conn)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin vote transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
        INSERT INTO votes (choice)
        VALUES ($1)
        RETURNING id
    `, v.Choice).Scan(&v.ID)
	if err != nil {
		if isNotNullViolation(err) {
			return vote.ErrChoiceRequired
		}
		return fmt.Errorf("insert vote: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit vote: %w", err)
	}
	return nil
}

func (r *VoteRepo) CountByChoice(ctx context.Context) (vote.Results, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer database.Release(conn)

	rows, err := conn.Query(ctx, `
        SELECT choice, COUNT(id)
        FROM votes
        GROUP BY choice
    `)
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}
	defer rows.Close()

	res := make(vote.Results)
	for rows.Next() {
		var choice string
		var c int64
		if err := rows.Scan(&choice, &c); err != nil {
			return nil, fmt.Errorf("scan vote count: %w", err)
		}
		res[choice] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}

	return res, nil
}

func isNotNullViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23502"
	}
	return false
}
