package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
)

func (r *repository) AppendMessage(ctx context.Context, requestUid, senderName, content string) (model.Message, error) {
	q, args, err := qb.Insert(messageTableName).
		Columns("message_uid", "request_uid", "sender_name", "content").
		Values(uuid.New(), requestUid, senderName, content).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Message{}, err
	}
	var msg model.Message
	if err := r.db.GetContext(ctx, &msg, q, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return model.Message{}, errs.ErrNotFound
		}
		return model.Message{}, err
	}
	return msg, nil
}

func (r *repository) ListMessages(ctx context.Context, requestUid string) ([]model.Message, error) {
	q, args, err := qb.Select("id", "message_uid", "request_uid", "sender_name", "content", "created_at").
		From(messageTableName).
		Where(sq.Eq{"request_uid": requestUid}).
		OrderBy("created_at asc", "id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Message
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertReadCursor never moves a cursor backwards: concurrent markRead calls
// converge on the greatest timestamp. The cursor is stamped with the database
// clock, the same clock that stamps message.created_at.
func (r *repository) UpsertReadCursor(ctx context.Context, requestUid, userName string) (model.ReadCursor, error) {
	const q = `
	insert into read_cursor (request_uid, user_name, last_read_at)
	values ($1, $2, now())
	on conflict (request_uid, user_name)
	do update set last_read_at = greatest(read_cursor.last_read_at, excluded.last_read_at)
	returning request_uid, user_name, last_read_at
`
	var cur model.ReadCursor
	if err := r.db.GetContext(ctx, &cur, q, requestUid, userName); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return model.ReadCursor{}, errs.ErrNotFound
		}
		return model.ReadCursor{}, err
	}
	return cur, nil
}

func (r *repository) UnreadCount(ctx context.Context, requestUid, userName string) (int, error) {
	const q = `
	select count(*) from message m
	left join read_cursor rc on rc.request_uid = m.request_uid and rc.user_name = $2
	where m.request_uid = $1 and m.sender_name <> $2
	  and m.created_at > coalesce(rc.last_read_at, 'epoch'::timestamptz)
`
	var count int
	if err := r.db.QueryRowContext(ctx, q, requestUid, userName).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) TotalUnread(ctx context.Context, userName string) (model.TotalUnread, error) {
	const q = `
	select m.request_uid, count(*) as cnt
	from message m
	join borrow_request br on br.request_uid = m.request_uid
	left join read_cursor rc on rc.request_uid = m.request_uid and rc.user_name = $1
	where (br.owner_name = $1 or br.borrower_name = $1)
	  and m.sender_name <> $1
	  and m.created_at > coalesce(rc.last_read_at, 'epoch'::timestamptz)
	group by m.request_uid
`
	var items []model.UnreadCount
	if err := r.db.SelectContext(ctx, &items, q, userName); err != nil {
		return model.TotalUnread{}, err
	}
	total := model.TotalUnread{Requests: items}
	for _, it := range items {
		total.Total += it.Count
	}
	return total, nil
}

// AppendNotification inserts idempotently on the (request, type, recipient)
// dedup key. A duplicate delivery reports created=false with no error.
func (r *repository) AppendNotification(ctx context.Context, n model.Notification) (bool, error) {
	q, args, err := qb.Insert(notificationTableName).
		Columns("notification_uid", "recipient_name", "ntype", "request_uid", "book_uid", "payload").
		Values(uuid.New(), n.RecipientName, n.Type, n.RequestUid, n.BookUid, n.Payload).
		ToSql()
	if err != nil {
		return false, err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *repository) ListNotifications(ctx context.Context, recipientName string) ([]model.Notification, error) {
	q, args, err := qb.Select("id", "notification_uid", "recipient_name", "ntype", "request_uid", "book_uid", "payload", "created_at", "read_at").
		From(notificationTableName).
		Where(sq.Eq{"recipient_name": recipientName}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Notification
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) MarkNotificationRead(ctx context.Context, notificationUid, recipientName string) error {
	const q = `
	update notification set read_at = coalesce(read_at, now())
	where notification_uid = $1 and recipient_name = $2
`
	res, err := r.db.ExecContext(ctx, q, notificationUid, recipientName)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) AppendActivity(ctx context.Context, a model.Activity) error {
	q, args, err := qb.Insert(activityTableName).
		Columns("community_uid", "atype", "actor_name", "metadata").
		Values(a.CommunityUid, a.Type, a.ActorName, a.Metadata).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		r.log.Error("AppendActivity", zap.String("q", q), zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) ListActivity(ctx context.Context, communityUid string) ([]model.Activity, error) {
	b := qb.Select("id", "community_uid", "atype", "actor_name", "metadata", "created_at").
		From(activityTableName).
		OrderBy("created_at desc").
		Limit(100)
	if communityUid != "" {
		b = b.Where(sq.Eq{"community_uid": communityUid})
	}
	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Activity
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}
