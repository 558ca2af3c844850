package sqlite

import (
	"context"
	"time"

	"github.com/kidzegeye/akoma-backend/internal/domain"
	"github.com/kidzegeye/akoma-backend/internal/store"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, username, password_hash, first_name, last_name, email,
	phone_number, region, national_id, business_name, industry, address,
	created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	now := time.Now().UnixMilli()
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, first_name, last_name,
			email, phone_number, region, national_id, business_name, industry,
			address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.FirstName, u.LastName,
		u.Email, u.PhoneNumber, u.Region, u.NationalID, u.BusinessName,
		u.Industry, u.Address, now, now,
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID int64, p domain.Profile) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET
			first_name = ?, last_name = ?, email = ?, phone_number = ?,
			region = ?, national_id = ?, business_name = ?, industry = ?,
			address = ?, updated_at = ?
		WHERE id = ?`,
		p.FirstName, p.LastName, p.Email, p.PhoneNumber,
		p.Region, p.NationalID, p.BusinessName, p.Industry,
		p.Address, time.Now().UnixMilli(), userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	var createdAt, updatedAt int64
	err := s.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Email, &u.PhoneNumber, &u.Region, &u.NationalID, &u.BusinessName,
		&u.Industry, &u.Address, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = time.UnixMilli(createdAt)
	u.UpdatedAt = time.UnixMilli(updatedAt)
	return u, nil
}

func requireRowAffected(res interface{ RowsAffected() (int64, error) }) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
