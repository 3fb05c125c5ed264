package model

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"
)

type Status string

const (
	StatusPending         Status = "PENDING"
	StatusApproved        Status = "APPROVED"
	StatusBorrowed        Status = "BORROWED"
	StatusReturnInitiated Status = "RETURN_INITIATED"
	StatusReturned        Status = "RETURNED"
	StatusDenied          Status = "DENIED"
)

// Terminal statuses admit no further operation.
func (s Status) Terminal() bool {
	return s == StatusReturned || s == StatusDenied
}

type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleBorrower Role = "BORROWER"
	RoleNone     Role = "NONE"
)

type Operation string

const (
	OpApprove              Operation = "approve"
	OpDeny                 Operation = "deny"
	OpMarkHandoverComplete Operation = "markHandoverComplete"
	OpInitiateReturn       Operation = "initiateReturn"
	OpConfirmReturn        Operation = "confirmReturn"
)

type Transition struct {
	From  Status
	To    Status
	Actor Role
}

// Transitions is the only place that decides legality of a status change.
var Transitions = map[Operation]Transition{
	OpApprove:              {From: StatusPending, To: StatusApproved, Actor: RoleOwner},
	OpDeny:                 {From: StatusPending, To: StatusDenied, Actor: RoleOwner},
	OpMarkHandoverComplete: {From: StatusApproved, To: StatusBorrowed, Actor: RoleOwner},
	OpInitiateReturn:       {From: StatusBorrowed, To: StatusReturnInitiated, Actor: RoleBorrower},
	OpConfirmReturn:        {From: StatusReturnInitiated, To: StatusReturned, Actor: RoleOwner},
}

type HandoverMethod string

const (
	HandoverShip   HandoverMethod = "SHIP"
	HandoverMeetup HandoverMethod = "MEETUP"
	HandoverPickup HandoverMethod = "PICKUP"
)

type ReturnMethod string

const (
	ReturnShip    ReturnMethod = "SHIP"
	ReturnMeetup  ReturnMethod = "MEETUP"
	ReturnDropoff ReturnMethod = "DROPOFF"
)

// Details is the negotiated payload for a handover or a return.
type Details struct {
	Address      string     `json:"address,omitempty"`
	Datetime     *time.Time `json:"datetime,omitempty"`
	Instructions string     `json:"instructions,omitempty"`
	Tracking     string     `json:"tracking,omitempty"`
}

type BorrowRequest struct {
	ID                   int        `json:"-" db:"id"`
	RequestUid           string     `json:"requestUid" db:"request_uid"`
	BookUid              string     `json:"bookUid" db:"book_uid"`
	OwnerName            string     `json:"ownerName" db:"owner_name"`
	BorrowerName         string     `json:"borrowerName" db:"borrower_name"`
	Status               Status     `json:"status" db:"status"`
	DueDate              *time.Time `json:"dueDate,omitempty" db:"due_date"`
	HandoverMethod       *string    `json:"handoverMethod,omitempty" db:"handover_method"`
	HandoverAddress      *string    `json:"handoverAddress,omitempty" db:"handover_address"`
	HandoverDatetime     *time.Time `json:"handoverDatetime,omitempty" db:"handover_datetime"`
	HandoverInstructions *string    `json:"handoverInstructions,omitempty" db:"handover_instructions"`
	HandoverTracking     *string    `json:"handoverTracking,omitempty" db:"handover_tracking"`
	ReturnMethod         *string    `json:"returnMethod,omitempty" db:"return_method"`
	ReturnAddress        *string    `json:"returnAddress,omitempty" db:"return_address"`
	ReturnDatetime       *time.Time `json:"returnDatetime,omitempty" db:"return_datetime"`
	ReturnInstructions   *string    `json:"returnInstructions,omitempty" db:"return_instructions"`
	ReturnTracking       *string    `json:"returnTracking,omitempty" db:"return_tracking"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time  `json:"updatedAt" db:"updated_at"`
	Version              int        `json:"version" db:"version"`
}

// RoleOf classifies a user against the request row. Caller-supplied role
// claims are never consulted.
func (r BorrowRequest) RoleOf(userName string) Role {
	switch userName {
	case r.OwnerName:
		return RoleOwner
	case r.BorrowerName:
		return RoleBorrower
	default:
		return RoleNone
	}
}

func (r BorrowRequest) Counterpart(userName string) string {
	if userName == r.OwnerName {
		return r.BorrowerName
	}
	return r.OwnerName
}

type Message struct {
	ID         int       `json:"-" db:"id"`
	MessageUid string    `json:"messageUid" db:"message_uid"`
	RequestUid string    `json:"requestUid" db:"request_uid"`
	SenderName string    `json:"senderName" db:"sender_name"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type ReadCursor struct {
	RequestUid string    `json:"requestUid" db:"request_uid"`
	UserName   string    `json:"userName" db:"user_name"`
	LastReadAt time.Time `json:"lastReadAt" db:"last_read_at"`
}

type NotificationType string

const (
	NotificationRequestReceived  NotificationType = "request_received"
	NotificationRequestApproved  NotificationType = "request_approved"
	NotificationRequestDenied    NotificationType = "request_denied"
	NotificationHandoverComplete NotificationType = "handover_complete"
	NotificationReturnInitiated  NotificationType = "return_initiated"
	NotificationReturnConfirmed  NotificationType = "return_confirmed"
)

type Notification struct {
	ID              int              `json:"-" db:"id"`
	NotificationUid string           `json:"notificationUid" db:"notification_uid"`
	RecipientName   string           `json:"recipientName" db:"recipient_name"`
	Type            NotificationType `json:"type" db:"ntype"`
	RequestUid      string           `json:"requestUid" db:"request_uid"`
	BookUid         string           `json:"bookUid" db:"book_uid"`
	Payload         JSONMap          `json:"payload,omitempty" db:"payload"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
	ReadAt          *time.Time       `json:"readAt,omitempty" db:"read_at"`
}

type Activity struct {
	ID           int       `json:"-" db:"id"`
	CommunityUid *string   `json:"communityUid,omitempty" db:"community_uid"`
	Type         string    `json:"type" db:"atype"`
	ActorName    string    `json:"actorName" db:"actor_name"`
	Metadata     JSONMap   `json:"metadata,omitempty" db:"metadata"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// JSONMap round-trips a jsonb column through sqlx.
type JSONMap map[string]string

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return nil
}

// Date accepts bare "2006-01-02" payloads alongside RFC3339.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}
