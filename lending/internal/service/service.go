package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/handover"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/pkg/kafka"
)

// Catalog is the external book collaborator. Only create consults it.
type Catalog interface {
	BookBorrowable(ctx context.Context, bookUid string) (ownerName string, err error)
}

// Enqueuer publishes advisory events; failures are logged, never propagated.
type Enqueuer interface {
	Enqueue(topic string, v any) error
}

type Service struct {
	log      *zap.Logger
	repo     repository.Repository
	handover *handover.Coordinator
	catalog  Catalog
	queue    Enqueuer
}

func NewService(repo repository.Repository, catalog Catalog, queue Enqueuer, log *zap.Logger) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		handover: handover.New(),
		catalog:  catalog,
		queue:    queue,
	}
}

func (s *Service) CreateRequest(ctx context.Context, req model.CreateRequest) (model.BorrowRequest, error) {
	ownerName, err := s.catalog.BookBorrowable(ctx, req.BookUid)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	if ownerName == req.BorrowerName {
		return model.BorrowRequest{}, errs.ErrUnauthorized
	}
	return s.repo.CreateRequest(ctx, req.BookUid, ownerName, req.BorrowerName)
}

func (s *Service) Approve(ctx context.Context, actorName, requestUid string, req model.ApproveRequest) (model.BorrowRequest, error) {
	cur, err := s.authorize(ctx, actorName, requestUid, model.OpApprove, req.Version)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	if !req.DueDate.After(time.Now()) {
		return model.BorrowRequest{}, errs.NewValidationError("dueDate")
	}
	details, err := s.handover.ValidateHandover(req.HandoverMethod, req.HandoverDetails)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	taken, err := s.repo.HasLiveLoanForBook(ctx, cur.BookUid, cur.RequestUid)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	if taken {
		return model.BorrowRequest{}, errs.ErrAlreadyRequested
	}

	next := cur
	next.Status = model.StatusApproved
	due := req.DueDate.Time
	next.DueDate = &due
	method := string(req.HandoverMethod)
	next.HandoverMethod = &method
	next.HandoverAddress = strPtr(details.Address)
	next.HandoverDatetime = details.Datetime
	next.HandoverInstructions = strPtr(details.Instructions)

	return s.commit(ctx, cur, next, actorName, repository.Outbox{DueDate: &due})
}

func (s *Service) Deny(ctx context.Context, actorName, requestUid string, req model.DenyRequest) (model.BorrowRequest, error) {
	cur, err := s.authorize(ctx, actorName, requestUid, model.OpDeny, req.Version)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	next := cur
	next.Status = model.StatusDenied
	ev := repository.Outbox{}
	if req.Message != "" {
		ev.Message = &req.Message
	}
	return s.commit(ctx, cur, next, actorName, ev)
}

func (s *Service) MarkHandoverComplete(ctx context.Context, actorName, requestUid string, version int) (model.BorrowRequest, error) {
	cur, err := s.authorize(ctx, actorName, requestUid, model.OpMarkHandoverComplete, version)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	next := cur
	next.Status = model.StatusBorrowed
	return s.commit(ctx, cur, next, actorName, repository.Outbox{})
}

// AddTracking sets the shipment tracking id without a status change.
func (s *Service) AddTracking(ctx context.Context, actorName, requestUid string, req model.TrackingRequest) (model.BorrowRequest, error) {
	cur, err := s.repo.GetRequest(ctx, requestUid)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	if cur.RoleOf(actorName) != model.RoleOwner {
		return model.BorrowRequest{}, errs.ErrUnauthorized
	}
	if cur.Status != model.StatusApproved {
		return model.BorrowRequest{}, &errs.InvalidTransitionError{From: string(cur.Status), To: string(model.StatusApproved)}
	}
	if cur.HandoverMethod == nil || *cur.HandoverMethod != string(model.HandoverShip) {
		return model.BorrowRequest{}, errs.NewValidationError("handoverMethod")
	}
	if cur.Version != req.Version {
		return model.BorrowRequest{}, &errs.ConflictError{ExpectedVersion: req.Version, ActualVersion: cur.Version}
	}

	next := cur
	next.HandoverTracking = &req.Tracking
	return s.repo.UpdateRequest(ctx, next, req.Version, repository.Outbox{
		FromStatus:  string(cur.Status),
		ToStatus:    string(cur.Status),
		ActorName:   actorName,
		Counterpart: cur.Counterpart(actorName),
	})
}

func (s *Service) InitiateReturn(ctx context.Context, actorName, requestUid string, req model.InitiateReturnRequest) (model.BorrowRequest, error) {
	cur, err := s.authorize(ctx, actorName, requestUid, model.OpInitiateReturn, req.Version)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	details, err := s.handover.ValidateReturn(req.ReturnMethod, req.ReturnDetails)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	next := cur
	next.Status = model.StatusReturnInitiated
	method := string(req.ReturnMethod)
	next.ReturnMethod = &method
	next.ReturnAddress = strPtr(details.Address)
	next.ReturnDatetime = details.Datetime
	next.ReturnInstructions = strPtr(details.Instructions)
	next.ReturnTracking = strPtr(details.Tracking)

	return s.commit(ctx, cur, next, actorName, repository.Outbox{})
}

func (s *Service) ConfirmReturn(ctx context.Context, actorName, requestUid string, version int) (model.BorrowRequest, error) {
	cur, err := s.authorize(ctx, actorName, requestUid, model.OpConfirmReturn, version)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	next := cur
	next.Status = model.StatusReturned
	return s.commit(ctx, cur, next, actorName, repository.Outbox{})
}

func (s *Service) GetRequest(ctx context.Context, userName, requestUid string) (model.BorrowRequest, error) {
	req, err := s.repo.GetRequest(ctx, requestUid)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	if req.RoleOf(userName) == model.RoleNone {
		return model.BorrowRequest{}, errs.ErrUnauthorized
	}
	return req, nil
}

func (s *Service) ListIncoming(ctx context.Context, ownerName string) ([]model.BorrowRequest, error) {
	return s.repo.ListIncoming(ctx, ownerName)
}

func (s *Service) ListOutgoing(ctx context.Context, borrowerName string) ([]model.BorrowRequest, error) {
	return s.repo.ListOutgoing(ctx, borrowerName)
}

func (s *Service) ListNotifications(ctx context.Context, recipientName string) ([]model.Notification, error) {
	return s.repo.ListNotifications(ctx, recipientName)
}

func (s *Service) MarkNotificationRead(ctx context.Context, notificationUid, recipientName string) error {
	return s.repo.MarkNotificationRead(ctx, notificationUid, recipientName)
}

func (s *Service) ListActivity(ctx context.Context, communityUid string) ([]model.Activity, error) {
	return s.repo.ListActivity(ctx, communityUid)
}

// authorize resolves the caller's role from the stored row, then checks the
// transition table against the current status, then the optimistic version.
// Order matters: a stale retry against a moved request reads as
// InvalidTransition, not Conflict.
func (s *Service) authorize(ctx context.Context, actorName, requestUid string, op model.Operation, version int) (model.BorrowRequest, error) {
	cur, err := s.repo.GetRequest(ctx, requestUid)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	tr := model.Transitions[op]
	if cur.RoleOf(actorName) != tr.Actor {
		return model.BorrowRequest{}, errs.ErrUnauthorized
	}
	if cur.Status != tr.From {
		return model.BorrowRequest{}, &errs.InvalidTransitionError{From: string(cur.Status), To: string(tr.To)}
	}
	if cur.Version != version {
		return model.BorrowRequest{}, &errs.ConflictError{ExpectedVersion: version, ActualVersion: cur.Version}
	}
	return cur, nil
}

func (s *Service) commit(ctx context.Context, cur, next model.BorrowRequest, actorName string, ev repository.Outbox) (model.BorrowRequest, error) {
	ev.FromStatus = string(cur.Status)
	ev.ToStatus = string(next.Status)
	ev.ActorName = actorName
	ev.Counterpart = cur.Counterpart(actorName)
	return s.repo.UpdateRequest(ctx, next, cur.Version, ev)
}

func (s *Service) enqueueActivity(event kafka.ActivityEvent) {
	if err := s.queue.Enqueue(kafka.ActivityTopic, event); err != nil {
		s.log.Warn("enqueue activity", zap.String("type", event.EventType), zap.Error(err))
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
