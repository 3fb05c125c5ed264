package model

type CreateRequest struct {
	BookUid      string `json:"bookUid" validate:"required,uuid"`
	BorrowerName string `json:"-" validate:"required"`
}

type ApproveRequest struct {
	Version         int            `json:"version" validate:"required,min=1"`
	DueDate         Date           `json:"dueDate" validate:"required"`
	HandoverMethod  HandoverMethod `json:"handoverMethod" validate:"required,oneof=SHIP MEETUP PICKUP"`
	HandoverDetails Details        `json:"handoverDetails"`
}

type DenyRequest struct {
	Version int    `json:"version" validate:"required,min=1"`
	Message string `json:"message"`
}

type VersionedRequest struct {
	Version int `json:"version" validate:"required,min=1"`
}

type TrackingRequest struct {
	Version  int    `json:"version" validate:"required,min=1"`
	Tracking string `json:"tracking" validate:"required"`
}

type InitiateReturnRequest struct {
	Version       int          `json:"version" validate:"required,min=1"`
	ReturnMethod  ReturnMethod `json:"returnMethod" validate:"required,oneof=SHIP MEETUP DROPOFF"`
	ReturnDetails Details      `json:"returnDetails"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type UnreadCount struct {
	RequestUid string `json:"requestUid" db:"request_uid"`
	Count      int    `json:"count" db:"cnt"`
}

type TotalUnread struct {
	Total    int           `json:"total"`
	Requests []UnreadCount `json:"requests"`
}
