package fanout

import (
	"context"

	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/pkg/kafka"
)

// Recorder appends audit records for transitions and collaborator events.
// The feed is derived and non-authoritative: a failed append is logged once
// and dropped.
type Recorder struct {
	repo repository.Repository
	log  *zap.Logger
}

func NewRecorder(repo repository.Repository, log *zap.Logger) *Recorder {
	return &Recorder{
		repo: repo,
		log:  log.Named("recorder"),
	}
}

var activityTypes = map[transitionKey]string{
	{from: "", to: model.StatusPending}:                           "request_created",
	{from: model.StatusPending, to: model.StatusApproved}:         "request_approved",
	{from: model.StatusPending, to: model.StatusDenied}:           "request_denied",
	{from: model.StatusApproved, to: model.StatusBorrowed}:        "book_borrowed",
	{from: model.StatusBorrowed, to: model.StatusReturnInitiated}: "return_initiated",
	{from: model.StatusReturnInitiated, to: model.StatusReturned}: "book_returned",
}

func (r *Recorder) HandleTransition(ctx context.Context, event kafka.TransitionEvent) error {
	atype, ok := activityTypes[transitionKey{
		from: model.Status(event.FromStatus),
		to:   model.Status(event.ToStatus),
	}]
	if !ok {
		return nil
	}
	a := model.Activity{
		Type:      atype,
		ActorName: event.ActorName,
		Metadata: model.JSONMap{
			"requestUid": event.RequestUid,
			"bookUid":    event.BookUid,
		},
	}
	if err := r.repo.AppendActivity(ctx, a); err != nil {
		r.log.Warn("activity append failed", zap.String("type", atype), zap.Error(err))
	}
	return nil
}

// HandleActivityEvent records message/review events published by collaborators.
func (r *Recorder) HandleActivityEvent(ctx context.Context, event kafka.ActivityEvent) error {
	metadata := model.JSONMap{}
	for k, v := range event.Metadata {
		metadata[k] = v
	}
	a := model.Activity{
		Type:      event.EventType,
		ActorName: event.ActorName,
		Metadata:  metadata,
	}
	if event.CommunityUid != "" {
		communityUid := event.CommunityUid
		a.CommunityUid = &communityUid
	}
	if err := r.repo.AppendActivity(ctx, a); err != nil {
		r.log.Warn("activity append failed", zap.String("type", event.EventType), zap.Error(err))
	}
	return nil
}
