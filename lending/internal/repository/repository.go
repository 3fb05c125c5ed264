package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
)

type Repository interface {
	CreateRequest(ctx context.Context, bookUid, ownerName, borrowerName string) (model.BorrowRequest, error)
	GetRequest(ctx context.Context, requestUid string) (model.BorrowRequest, error)
	ListIncoming(ctx context.Context, ownerName string) ([]model.BorrowRequest, error)
	ListOutgoing(ctx context.Context, borrowerName string) ([]model.BorrowRequest, error)
	HasLiveLoanForBook(ctx context.Context, bookUid, exceptRequestUid string) (bool, error)
	UpdateRequest(ctx context.Context, req model.BorrowRequest, expectedVersion int, ev Outbox) (model.BorrowRequest, error)

	AppendMessage(ctx context.Context, requestUid, senderName, content string) (model.Message, error)
	ListMessages(ctx context.Context, requestUid string) ([]model.Message, error)
	UpsertReadCursor(ctx context.Context, requestUid, userName string) (model.ReadCursor, error)
	UnreadCount(ctx context.Context, requestUid, userName string) (int, error)
	TotalUnread(ctx context.Context, userName string) (model.TotalUnread, error)

	AppendNotification(ctx context.Context, n model.Notification) (bool, error)
	ListNotifications(ctx context.Context, recipientName string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationUid, recipientName string) error
	AppendActivity(ctx context.Context, a model.Activity) error
	ListActivity(ctx context.Context, communityUid string) ([]model.Activity, error)

	FetchUnpublished(ctx context.Context, limit int) ([]Outbox, error)
	MarkPublished(ctx context.Context, id int64) error
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	requestTableName      = `borrow_request`
	messageTableName      = `message`
	readCursorTableName   = `read_cursor`
	notificationTableName = `notification`
	activityTableName     = `activity`
	outboxTableName       = `transition_outbox`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var requestColumns = []string{
	"id", "request_uid", "book_uid", "owner_name", "borrower_name", "status",
	"due_date", "handover_method", "handover_address", "handover_datetime",
	"handover_instructions", "handover_tracking", "return_method", "return_address",
	"return_datetime", "return_instructions", "return_tracking",
	"created_at", "updated_at", "version",
}

func (r *repository) CreateRequest(ctx context.Context, bookUid, ownerName, borrowerName string) (model.BorrowRequest, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	q, args, err := qb.Insert(requestTableName).
		Columns("request_uid", "book_uid", "owner_name", "borrower_name", "status").
		Values(uuid.New(), bookUid, ownerName, borrowerName, model.StatusPending).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.BorrowRequest{}, err
	}
	var req model.BorrowRequest
	if err := tx.GetContext(ctx, &req, q, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.BorrowRequest{}, errs.ErrAlreadyRequested
		}
		r.log.Error("CreateRequest", zap.String("q", q), zap.Any("args", args))
		return model.BorrowRequest{}, err
	}

	if err := insertOutbox(ctx, tx, Outbox{
		RequestUid:  req.RequestUid,
		BookUid:     req.BookUid,
		FromStatus:  "",
		ToStatus:    string(model.StatusPending),
		ActorName:   borrowerName,
		Counterpart: ownerName,
		OccurredAt:  req.CreatedAt,
	}); err != nil {
		return model.BorrowRequest{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.BorrowRequest{}, err
	}
	return req, nil
}

func (r *repository) GetRequest(ctx context.Context, requestUid string) (model.BorrowRequest, error) {
	q, args, err := qb.Select(requestColumns...).
		From(requestTableName).
		Where(sq.Eq{"request_uid": requestUid}).
		ToSql()
	if err != nil {
		return model.BorrowRequest{}, err
	}
	var req model.BorrowRequest
	if err := r.db.GetContext(ctx, &req, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BorrowRequest{}, errs.ErrNotFound
		}
		return model.BorrowRequest{}, err
	}
	return req, nil
}

func (r *repository) ListIncoming(ctx context.Context, ownerName string) ([]model.BorrowRequest, error) {
	return r.listBy(ctx, sq.Eq{"owner_name": ownerName})
}

func (r *repository) ListOutgoing(ctx context.Context, borrowerName string) ([]model.BorrowRequest, error) {
	return r.listBy(ctx, sq.Eq{"borrower_name": borrowerName})
}

func (r *repository) listBy(ctx context.Context, cond sq.Eq) ([]model.BorrowRequest, error) {
	q, args, err := qb.Select(requestColumns...).
		From(requestTableName).
		Where(cond).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.BorrowRequest
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) HasLiveLoanForBook(ctx context.Context, bookUid, exceptRequestUid string) (bool, error) {
	const q = `
	select exists(
		select 1 from borrow_request
		where book_uid = $1 and request_uid <> $2
		  and status in ('APPROVED', 'BORROWED', 'RETURN_INITIATED'))
`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, bookUid, exceptRequestUid).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateRequest commits the mutated row iff (status, version) are unchanged
// since the caller read them, and appends the transition to the outbox in the
// same transaction. A lost race yields ConflictError with the actual version.
func (r *repository) UpdateRequest(ctx context.Context, req model.BorrowRequest, expectedVersion int, ev Outbox) (model.BorrowRequest, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	const q = `
	update borrow_request
	set status = $1, due_date = $2,
	    handover_method = $3, handover_address = $4, handover_datetime = $5,
	    handover_instructions = $6, handover_tracking = $7,
	    return_method = $8, return_address = $9, return_datetime = $10,
	    return_instructions = $11, return_tracking = $12,
	    updated_at = now(), version = version + 1
	where request_uid = $13 and version = $14 and status = $15
	returning *
`
	var updated model.BorrowRequest
	err = tx.GetContext(ctx, &updated, q,
		req.Status, req.DueDate,
		req.HandoverMethod, req.HandoverAddress, req.HandoverDatetime,
		req.HandoverInstructions, req.HandoverTracking,
		req.ReturnMethod, req.ReturnAddress, req.ReturnDatetime,
		req.ReturnInstructions, req.ReturnTracking,
		req.RequestUid, expectedVersion, ev.FromStatus,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BorrowRequest{}, r.conflictFor(ctx, req.RequestUid, expectedVersion)
		}
		return model.BorrowRequest{}, err
	}

	ev.RequestUid = updated.RequestUid
	ev.BookUid = updated.BookUid
	ev.OccurredAt = updated.UpdatedAt
	if err := insertOutbox(ctx, tx, ev); err != nil {
		return model.BorrowRequest{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.BorrowRequest{}, err
	}
	return updated, nil
}

func (r *repository) conflictFor(ctx context.Context, requestUid string, expectedVersion int) error {
	current, err := r.GetRequest(ctx, requestUid)
	if err != nil {
		return err
	}
	return &errs.ConflictError{ExpectedVersion: expectedVersion, ActualVersion: current.Version}
}
