package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/handler"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/pkg/auth"
	mw "github.com/Astemirdum/lending-service/pkg/middleware"
	"github.com/Astemirdum/lending-service/pkg/pubsub"
	"github.com/Astemirdum/lending-service/pkg/validate"

	service_mocks "github.com/Astemirdum/lending-service/lending/internal/handler/mocks"
)

const (
	testRequestUid = "6f2f0e9f-33a4-4b8e-9d5e-0f1c2a3b4c5d"
	testBookUid    = "83575e12-7ce0-48ee-9931-51919ff3c9ee"
)

func testRouter(svc handler.LendingService) *echo.Echo {
	h := handler.New(svc, pubsub.NewBroker(), zap.NewExample().Named("test"))
	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1", mw.AuthContext)
	api.POST("/requests", h.CreateRequest)
	api.GET("/requests/:requestUid", h.GetRequest)
	api.POST("/requests/:requestUid/approve", h.Approve)
	api.POST("/requests/:requestUid/messages", h.SendMessage)
	api.GET("/unread", h.GetTotalUnread)
	return e
}

func pendingFixture() model.BorrowRequest {
	return model.BorrowRequest{
		RequestUid:   testRequestUid,
		BookUid:      testBookUid,
		OwnerName:    "alice",
		BorrowerName: "bob",
		Status:       model.StatusPending,
		CreatedAt:    time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		Version:      1,
	}
}

func TestHandler_CreateRequest(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLendingService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		body         string
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					CreateRequest(gomock.Any(), model.CreateRequest{BookUid: testBookUid, BorrowerName: "bob"}).
					Return(pendingFixture(), nil)
			},
			body: fmt.Sprintf(`{"bookUid":%q}`, testBookUid),
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: fmt.Sprintf(`{"requestUid":%q,"bookUid":%q,"ownerName":"alice","borrowerName":"bob","status":"PENDING","createdAt":"2026-04-01T10:00:00Z","updatedAt":"2026-04-01T10:00:00Z","version":1}`, testRequestUid, testBookUid),
			},
		},
		{
			name:         "err. bookUid not a uuid",
			mockBehavior: func(r *service_mocks.MockLendingService) {},
			body:         `{"bookUid":"not-a-uuid"}`,
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. book unavailable",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					CreateRequest(gomock.Any(), gomock.Any()).
					Return(model.BorrowRequest{}, errs.ErrBookUnavailable)
			},
			body: fmt.Sprintf(`{"bookUid":%q}`, testBookUid),
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"book is not currently borrowable"}`,
			},
		},
		{
			name: "err. duplicate live request",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					CreateRequest(gomock.Any(), gomock.Any()).
					Return(model.BorrowRequest{}, errs.ErrAlreadyRequested)
			},
			body: fmt.Sprintf(`{"bookUid":%q}`, testBookUid),
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"an active request for this book already exists"}`,
			},
		},
		{
			name: "err. catalog down",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					CreateRequest(gomock.Any(), gomock.Any()).
					Return(model.BorrowRequest{}, &errs.DependencyFailure{Dependency: "catalog", Err: errors.New("connection refused")})
			},
			body: fmt.Sprintf(`{"bookUid":%q}`, testBookUid),
			response: response{
				expectedCode: http.StatusBadGateway,
				expectedBody: `{"message":"dependency catalog failed: connection refused"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLendingService(c)
			tt.mockBehavior(svc)
			e := testRouter(svc)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/requests", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			r.Header.Set(auth.XUserNameHeader, "bob")
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_Approve(t *testing.T) {
	t.Parallel()
	approveBody := `{"version":1,"dueDate":"2026-04-15","handoverMethod":"PICKUP","handoverDetails":{"address":"221B Baker St"}}`
	approveReq := model.ApproveRequest{
		Version:         1,
		DueDate:         model.Date{Time: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)},
		HandoverMethod:  model.HandoverPickup,
		HandoverDetails: model.Details{Address: "221B Baker St"},
	}
	approvedFixture := func() model.BorrowRequest {
		req := pendingFixture()
		req.Status = model.StatusApproved
		due := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
		req.DueDate = &due
		method := "PICKUP"
		req.HandoverMethod = &method
		addr := "221B Baker St"
		req.HandoverAddress = &addr
		req.UpdatedAt = time.Date(2026, 4, 1, 11, 0, 0, 0, time.UTC)
		req.Version = 2
		return req
	}

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLendingService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		userName     string
		body         string
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					Approve(gomock.Any(), "alice", testRequestUid, approveReq).
					Return(approvedFixture(), nil)
			},
			userName: "alice",
			body:     approveBody,
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: fmt.Sprintf(`{"requestUid":%q,"bookUid":%q,"ownerName":"alice","borrowerName":"bob","status":"APPROVED","dueDate":"2026-04-15T00:00:00Z","handoverMethod":"PICKUP","handoverAddress":"221B Baker St","createdAt":"2026-04-01T10:00:00Z","updatedAt":"2026-04-01T11:00:00Z","version":2}`, testRequestUid, testBookUid),
			},
		},
		{
			name:         "err. version missing",
			mockBehavior: func(r *service_mocks.MockLendingService) {},
			userName:     "alice",
			body:         `{"dueDate":"2026-04-15","handoverMethod":"PICKUP"}`,
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. borrower cannot approve",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					Approve(gomock.Any(), "bob", testRequestUid, approveReq).
					Return(model.BorrowRequest{}, errs.ErrUnauthorized)
			},
			userName: "bob",
			body:     approveBody,
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"actor is not allowed to perform this transition"}`,
			},
		},
		{
			name: "err. ship without address",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					Approve(gomock.Any(), "alice", testRequestUid, gomock.Any()).
					Return(model.BorrowRequest{}, errs.NewValidationError("address"))
			},
			userName: "alice",
			body:     `{"version":1,"dueDate":"2026-04-15","handoverMethod":"SHIP"}`,
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"field":"address","message":"validation failed: field \"address\" is required"}`,
			},
		},
		{
			name: "err. already moved",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					Approve(gomock.Any(), "alice", testRequestUid, approveReq).
					Return(model.BorrowRequest{}, &errs.InvalidTransitionError{From: "DENIED", To: "APPROVED"})
			},
			userName: "alice",
			body:     approveBody,
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"from":"DENIED","message":"invalid transition from DENIED to APPROVED","to":"APPROVED"}`,
			},
		},
		{
			name: "err. version conflict",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					Approve(gomock.Any(), "alice", testRequestUid, approveReq).
					Return(model.BorrowRequest{}, &errs.ConflictError{ExpectedVersion: 1, ActualVersion: 3})
			},
			userName: "alice",
			body:     approveBody,
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"actualVersion":3,"expectedVersion":1,"message":"version conflict: expected 1, actual 3"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLendingService(c)
			tt.mockBehavior(svc)
			e := testRouter(svc)

			r := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/requests/%s/approve", testRequestUid), strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			r.Header.Set(auth.XUserNameHeader, tt.userName)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_GetRequest(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLendingService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		userName     string
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					GetRequest(gomock.Any(), "bob", testRequestUid).
					Return(pendingFixture(), nil)
			},
			userName: "bob",
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: fmt.Sprintf(`{"requestUid":%q,"bookUid":%q,"ownerName":"alice","borrowerName":"bob","status":"PENDING","createdAt":"2026-04-01T10:00:00Z","updatedAt":"2026-04-01T10:00:00Z","version":1}`, testRequestUid, testBookUid),
			},
		},
		{
			name: "err. not found",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					GetRequest(gomock.Any(), "bob", testRequestUid).
					Return(model.BorrowRequest{}, errs.ErrNotFound)
			},
			userName: "bob",
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
		{
			name: "err. stranger",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					GetRequest(gomock.Any(), "mallory", testRequestUid).
					Return(model.BorrowRequest{}, errs.ErrUnauthorized)
			},
			userName: "mallory",
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"actor is not allowed to perform this transition"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLendingService(c)
			tt.mockBehavior(svc)
			e := testRouter(svc)

			r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/requests/%s", testRequestUid), http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			r.Header.Set(auth.XUserNameHeader, tt.userName)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_SendMessage(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockLendingService(c)
	svc.EXPECT().
		SendMessage(gomock.Any(), "bob", testRequestUid, model.SendMessageRequest{Content: "when can I pick it up?"}).
		Return(model.Message{
			MessageUid: "9a1b2c3d-4e5f-4a6b-8c7d-0e1f2a3b4c5d",
			RequestUid: testRequestUid,
			SenderName: "bob",
			Content:    "when can I pick it up?",
			CreatedAt:  time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		}, nil)
	e := testRouter(svc)

	r := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/requests/%s/messages", testRequestUid),
		strings.NewReader(`{"content":"when can I pick it up?"}`))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	r.Header.Set(auth.XUserNameHeader, "bob")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t,
		fmt.Sprintf(`{"messageUid":"9a1b2c3d-4e5f-4a6b-8c7d-0e1f2a3b4c5d","requestUid":%q,"senderName":"bob","content":"when can I pick it up?","createdAt":"2026-04-01T10:00:00Z"}`, testRequestUid),
		strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_GetTotalUnread(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockLendingService(c)
	svc.EXPECT().
		GetTotalUnread(gomock.Any(), "alice").
		Return(model.TotalUnread{
			Total:    3,
			Requests: []model.UnreadCount{{RequestUid: testRequestUid, Count: 3}},
		}, nil)
	e := testRouter(svc)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/unread", http.NoBody)
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	r.Header.Set(auth.XUserNameHeader, "alice")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		fmt.Sprintf(`{"total":3,"requests":[{"requestUid":%q,"count":3}]}`, testRequestUid),
		strings.Trim(w.Body.String(), "\n"))
}
