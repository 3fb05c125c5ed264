// Package fanout holds the consumers of committed transition events: the
// notification fan-out, the activity recorder and the outbox dispatcher that
// feeds them. Everything here is advisory; a failure never reaches the caller
// of the lifecycle operation that produced the event.
package fanout

import (
	"context"
	"time"

	"go.uber.org/zap"

	cb "github.com/Astemirdum/lending-service/pkg/circuit_breaker"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/pkg/kafka"
)

type transitionKey struct {
	from model.Status
	to   model.Status
}

// notificationRoutes maps a transition to the notification type addressed to
// the counterpart of the actor.
var notificationRoutes = map[transitionKey]model.NotificationType{
	{from: "", to: model.StatusPending}:                           model.NotificationRequestReceived,
	{from: model.StatusPending, to: model.StatusApproved}:         model.NotificationRequestApproved,
	{from: model.StatusPending, to: model.StatusDenied}:           model.NotificationRequestDenied,
	{from: model.StatusApproved, to: model.StatusBorrowed}:        model.NotificationHandoverComplete,
	{from: model.StatusBorrowed, to: model.StatusReturnInitiated}: model.NotificationReturnInitiated,
	{from: model.StatusReturnInitiated, to: model.StatusReturned}: model.NotificationReturnConfirmed,
}

type Notifier struct {
	repo    repository.Repository
	log     *zap.Logger
	breaker cb.CircuitBreaker
}

func NewNotifier(repo repository.Repository, log *zap.Logger) *Notifier {
	return &Notifier{
		repo:    repo,
		log:     log.Named("notifier"),
		breaker: cb.New(50, 15*time.Second, 0.5, 5),
	}
}

const (
	notifyAttempts = 3
	notifyBackoff  = time.Second
)

// HandleTransition writes the counterpart's notification for one committed
// transition. The (request, type, recipient) dedup key absorbs re-delivery;
// persistent write failure is logged and swallowed, never bubbled back into
// the lifecycle.
func (n *Notifier) HandleTransition(ctx context.Context, event kafka.TransitionEvent) error {
	ntype, ok := notificationRoutes[transitionKey{
		from: model.Status(event.FromStatus),
		to:   model.Status(event.ToStatus),
	}]
	if !ok {
		return nil
	}

	notification := model.Notification{
		RecipientName: event.CounterpartName,
		Type:          ntype,
		RequestUid:    event.RequestUid,
		BookUid:       event.BookUid,
		Payload:       payloadFor(event),
	}

	var lastErr error
	for attempt := 0; attempt < notifyAttempts; attempt++ {
		created, err := func() (created bool, err error) {
			err = n.breaker.Call(func() error {
				created, err = n.repo.AppendNotification(ctx, notification)
				return err
			})
			return created, err
		}()
		if err == nil {
			if !created {
				n.log.Debug("notification deduplicated",
					zap.String("requestUid", event.RequestUid), zap.String("type", string(ntype)))
			}
			return nil
		}
		lastErr = err
		if attempt == notifyAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(notifyBackoff):
		}
	}
	n.log.Error("notification write failed, giving up",
		zap.String("requestUid", event.RequestUid),
		zap.String("type", string(ntype)),
		zap.Error(lastErr))
	return nil
}

func payloadFor(event kafka.TransitionEvent) model.JSONMap {
	payload := model.JSONMap{
		"actorName": event.ActorName,
	}
	if event.DueDate != "" {
		payload["dueDate"] = event.DueDate
	}
	if event.Message != "" {
		payload["message"] = event.Message
	}
	return payload
}
