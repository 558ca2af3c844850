package sqlite

import (
	"context"
	"time"

	"github.com/kidzegeye/akoma-backend/internal/domain"
)

type sessionsRepo struct {
	q querier
}

const sessionColumns = `id, user_id, token_hash, refresh_hash, expires_at, created_at`

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sessions (user_id, token_hash, refresh_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.UserID, s.TokenHash, s.RefreshHash,
		s.ExpiresAt.UnixMilli(), time.Now().UnixMilli(),
	)
	return err
}

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, userID int64, hash string) (domain.Session, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+sessionColumns+` FROM sessions
		WHERE user_id = ? AND token_hash = ?
		ORDER BY expires_at DESC LIMIT 1`,
		userID, hash,
	)
	return scanSession(row)
}

func (r *sessionsRepo) GetSessionByRefreshHash(ctx context.Context, userID int64, hash string) (domain.Session, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+sessionColumns+` FROM sessions
		WHERE user_id = ? AND refresh_hash = ?
		ORDER BY expires_at DESC LIMIT 1`,
		userID, hash,
	)
	return scanSession(row)
}

func (r *sessionsRepo) DeleteUserSessions(ctx context.Context, userID int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}

func (r *sessionsRepo) DeleteSessionsExpiredBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, cutoff.UnixMilli())
	return err
}

func scanSession(s scanner) (domain.Session, error) {
	var sess domain.Session
	var expiresAt, createdAt int64
	err := s.Scan(
		&sess.ID, &sess.UserID, &sess.TokenHash, &sess.RefreshHash,
		&expiresAt, &createdAt,
	)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	sess.ExpiresAt = time.UnixMilli(expiresAt)
	sess.CreatedAt = time.UnixMilli(createdAt)
	return sess, nil
}
