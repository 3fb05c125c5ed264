package handler

import (
	"context"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LendingService interface {
	CreateRequest(ctx context.Context, req model.CreateRequest) (model.BorrowRequest, error)
	Approve(ctx context.Context, actorName, requestUid string, req model.ApproveRequest) (model.BorrowRequest, error)
	Deny(ctx context.Context, actorName, requestUid string, req model.DenyRequest) (model.BorrowRequest, error)
	MarkHandoverComplete(ctx context.Context, actorName, requestUid string, version int) (model.BorrowRequest, error)
	AddTracking(ctx context.Context, actorName, requestUid string, req model.TrackingRequest) (model.BorrowRequest, error)
	InitiateReturn(ctx context.Context, actorName, requestUid string, req model.InitiateReturnRequest) (model.BorrowRequest, error)
	ConfirmReturn(ctx context.Context, actorName, requestUid string, version int) (model.BorrowRequest, error)

	GetRequest(ctx context.Context, userName, requestUid string) (model.BorrowRequest, error)
	ListIncoming(ctx context.Context, ownerName string) ([]model.BorrowRequest, error)
	ListOutgoing(ctx context.Context, borrowerName string) ([]model.BorrowRequest, error)

	SendMessage(ctx context.Context, senderName, requestUid string, req model.SendMessageRequest) (model.Message, error)
	ListMessages(ctx context.Context, userName, requestUid string) ([]model.Message, error)
	MarkRead(ctx context.Context, userName, requestUid string) (model.ReadCursor, error)
	GetUnreadCount(ctx context.Context, userName, requestUid string) (model.UnreadCount, error)
	GetTotalUnread(ctx context.Context, userName string) (model.TotalUnread, error)

	ListNotifications(ctx context.Context, recipientName string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationUid, recipientName string) error
	ListActivity(ctx context.Context, communityUid string) ([]model.Activity, error)
}

var _ LendingService = (*service.Service)(nil)
