package service

import (
	"context"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/pkg/kafka"
)

// Unread tracking: no per-recipient state is written on send; counts are
// derived from message timestamps against the reader's cursor.

func (s *Service) SendMessage(ctx context.Context, senderName, requestUid string, req model.SendMessageRequest) (model.Message, error) {
	cur, err := s.repo.GetRequest(ctx, requestUid)
	if err != nil {
		return model.Message{}, err
	}
	if cur.RoleOf(senderName) == model.RoleNone {
		return model.Message{}, errs.ErrUnauthorized
	}
	msg, err := s.repo.AppendMessage(ctx, requestUid, senderName, req.Content)
	if err != nil {
		return model.Message{}, err
	}
	s.enqueueActivity(kafka.ActivityEvent{
		EventType:  "message_sent",
		ActorName:  senderName,
		Metadata:   map[string]string{"requestUid": requestUid},
		OccurredAt: msg.CreatedAt,
	})
	return msg, nil
}

func (s *Service) ListMessages(ctx context.Context, userName, requestUid string) ([]model.Message, error) {
	cur, err := s.repo.GetRequest(ctx, requestUid)
	if err != nil {
		return nil, err
	}
	if cur.RoleOf(userName) == model.RoleNone {
		return nil, errs.ErrUnauthorized
	}
	return s.repo.ListMessages(ctx, requestUid)
}

// MarkRead is idempotent: the cursor only moves forward, so repeated or
// concurrent calls converge on the latest timestamp. The store stamps the
// cursor so it shares a clock with message timestamps.
func (s *Service) MarkRead(ctx context.Context, userName, requestUid string) (model.ReadCursor, error) {
	cur, err := s.repo.GetRequest(ctx, requestUid)
	if err != nil {
		return model.ReadCursor{}, err
	}
	if cur.RoleOf(userName) == model.RoleNone {
		return model.ReadCursor{}, errs.ErrUnauthorized
	}
	return s.repo.UpsertReadCursor(ctx, requestUid, userName)
}

func (s *Service) GetUnreadCount(ctx context.Context, userName, requestUid string) (model.UnreadCount, error) {
	cur, err := s.repo.GetRequest(ctx, requestUid)
	if err != nil {
		return model.UnreadCount{}, err
	}
	if cur.RoleOf(userName) == model.RoleNone {
		return model.UnreadCount{}, errs.ErrUnauthorized
	}
	count, err := s.repo.UnreadCount(ctx, requestUid, userName)
	if err != nil {
		return model.UnreadCount{}, err
	}
	return model.UnreadCount{RequestUid: requestUid, Count: count}, nil
}

func (s *Service) GetTotalUnread(ctx context.Context, userName string) (model.TotalUnread, error) {
	return s.repo.TotalUnread(ctx, userName)
}
