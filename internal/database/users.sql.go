package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, username, first_name, last_name, password_hash, role::text, token_version, created_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.Role,
		&u.TokenVersion,
		&u.CreatedAt,
	)
	return u, err
}

func collectUsers(rows pgx.Rows) ([]User, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (User, error) {
		return scanUser(row)
	})
}

const checkUsersTableExists = `
SELECT EXISTS (
    SELECT 1 FROM information_schema.tables
    WHERE table_schema = 'public' AND table_name = 'users'
)`

func (q *Queries) CheckUsersTableExists(ctx context.Context) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, checkUsersTableExists).Scan(&exists)
	return exists, err
}

const createUser = `
INSERT INTO users (email, username, first_name, last_name, password_hash, role)
VALUES ($1, $2, $3, $4, $5, $6::role)
RETURNING ` + userColumns

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	role := arg.Role
	if role == "" {
		role = RoleUser
	}
	row := q.db.QueryRow(ctx, createUser,
		arg.Email,
		arg.Username,
		arg.FirstName,
		arg.LastName,
		arg.PasswordHash,
		string(role),
	)
	return scanUser(row)
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserByID, id))
}

const getUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserByEmail, email))
}

const listUsers = `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`

func (q *Queries) ListUsers(ctx context.Context, arg ListUsersParams) ([]User, error) {
	rows, err := q.db.Query(ctx, listUsers, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

const countUsers = `SELECT count(*) FROM users`

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countUsers).Scan(&count)
	return count, err
}

const updateUserPassword = `
UPDATE users
SET password_hash = $2, token_version = token_version + 1
WHERE id = $1`

func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	tag, err := q.db.Exec(ctx, updateUserPassword, arg.ID, arg.PasswordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const bumpTokenVersion = `
UPDATE users SET token_version = token_version + 1
WHERE id = $1
RETURNING token_version`

func (q *Queries) BumpTokenVersion(ctx context.Context, id int64) (int32, error) {
	var version int32
	err := q.db.QueryRow(ctx, bumpTokenVersion, id).Scan(&version)
	return version, err
}

const getAdminCount = `SELECT count(*) FROM users WHERE role = 'admin'`

func (q *Queries) GetAdminCount(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, getAdminCount).Scan(&count)
	return count, err
}
