package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Outbox is a committed transition awaiting publication. Rows share the
// transaction of the state change that produced them, so a transition is
// durable iff its outbox row is.
type Outbox struct {
	ID          int64      `db:"id"`
	RequestUid  string     `db:"request_uid"`
	BookUid     string     `db:"book_uid"`
	FromStatus  string     `db:"from_status"`
	ToStatus    string     `db:"to_status"`
	ActorName   string     `db:"actor_name"`
	Counterpart string     `db:"counterpart"`
	DueDate     *time.Time `db:"due_date"`
	Message     *string    `db:"message"`
	OccurredAt  time.Time  `db:"occurred_at"`
	PublishedAt *time.Time `db:"published_at"`
}

func insertOutbox(ctx context.Context, tx *sqlx.Tx, ev Outbox) error {
	const q = `
	insert into transition_outbox
	    (request_uid, book_uid, from_status, to_status, actor_name, counterpart, due_date, message, occurred_at)
	values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := tx.ExecContext(ctx, q,
		ev.RequestUid, ev.BookUid, ev.FromStatus, ev.ToStatus,
		ev.ActorName, ev.Counterpart, ev.DueDate, ev.Message, ev.OccurredAt)
	return err
}

// FetchUnpublished returns pending rows in insertion order. Insertion order
// subsumes per-request version order, which the dispatcher must preserve.
func (r *repository) FetchUnpublished(ctx context.Context, limit int) ([]Outbox, error) {
	const q = `
	select id, request_uid, book_uid, from_status, to_status, actor_name, counterpart,
	       due_date, message, occurred_at, published_at
	from transition_outbox
	where published_at is null
	order by id
	limit $1
`
	var items []Outbox
	if err := r.db.SelectContext(ctx, &items, q, limit); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) MarkPublished(ctx context.Context, id int64) error {
	const q = `update transition_outbox set published_at = now() where id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
