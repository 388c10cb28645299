package database

import (
	"context"
)

const insertSubscription = `INSERT INTO subscriptions (user_id, author_id) VALUES ($1, $2)`

func (q *Queries) InsertSubscription(ctx context.Context, arg SubscriptionParams) error {
	_, err := q.db.Exec(ctx, insertSubscription, arg.UserID, arg.AuthorID)
	return err
}

const deleteSubscription = `DELETE FROM subscriptions WHERE user_id = $1 AND author_id = $2`

func (q *Queries) DeleteSubscription(ctx context.Context, arg SubscriptionParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteSubscription, arg.UserID, arg.AuthorID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const subscriptionExists = `
SELECT EXISTS (SELECT 1 FROM subscriptions WHERE user_id = $1 AND author_id = $2)`

func (q *Queries) SubscriptionExists(ctx context.Context, arg SubscriptionParams) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, subscriptionExists, arg.UserID, arg.AuthorID).Scan(&exists)
	return exists, err
}

const listSubscribedAuthors = `
SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash,
       u.role::text, u.token_version, u.created_at
FROM subscriptions s
JOIN users u ON u.id = s.author_id
WHERE s.user_id = $1
ORDER BY s.created_at DESC, s.id DESC
LIMIT $2 OFFSET $3`

func (q *Queries) ListSubscribedAuthors(ctx context.Context, arg ListSubscribedAuthorsParams) ([]User, error) {
	rows, err := q.db.Query(ctx, listSubscribedAuthors, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

const countSubscribedAuthors = `SELECT count(*) FROM subscriptions WHERE user_id = $1`

func (q *Queries) CountSubscribedAuthors(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countSubscribedAuthors, userID).Scan(&count)
	return count, err
}
