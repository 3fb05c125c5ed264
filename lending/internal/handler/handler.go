package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/pkg/auth"
	mw "github.com/Astemirdum/lending-service/pkg/middleware"
	"github.com/Astemirdum/lending-service/pkg/pubsub"
	"github.com/Astemirdum/lending-service/pkg/validate"
)

type Handler struct {
	lendingSvc LendingService
	broker     *pubsub.Broker
	log        *zap.Logger
}

func New(lendingSvc LendingService, broker *pubsub.Broker, log *zap.Logger) *Handler {
	return &Handler{
		lendingSvc: lendingSvc,
		broker:     broker,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", mw.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig()),
		middleware.RequestID(),
		mw.NewRateLimiter(apiRPS),
		mw.Auth(),
	)

	api.POST("/requests", h.CreateRequest)
	api.GET("/requests/incoming", h.ListIncoming)
	api.GET("/requests/outgoing", h.ListOutgoing)
	api.GET("/requests/:requestUid", h.GetRequest)
	api.POST("/requests/:requestUid/approve", h.Approve)
	api.POST("/requests/:requestUid/deny", h.Deny)
	api.POST("/requests/:requestUid/handover/complete", h.MarkHandoverComplete)
	api.POST("/requests/:requestUid/handover/tracking", h.AddTracking)
	api.POST("/requests/:requestUid/return", h.InitiateReturn)
	api.POST("/requests/:requestUid/return/confirm", h.ConfirmReturn)

	api.POST("/requests/:requestUid/messages", h.SendMessage)
	api.GET("/requests/:requestUid/messages", h.ListMessages)
	api.POST("/requests/:requestUid/read", h.MarkRead)
	api.GET("/requests/:requestUid/unread", h.GetUnreadCount)
	api.GET("/unread", h.GetTotalUnread)

	api.GET("/notifications", h.ListNotifications)
	api.POST("/notifications/:notificationUid/read", h.MarkNotificationRead)
	api.GET("/activity", h.ListActivity)

	api.GET("/requests/:requestUid/events", h.StreamEvents)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CreateRequest(c echo.Context) error {
	userName, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	var req model.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.BorrowerName = userName
	if err := c.Validate(req); err != nil {
		return err
	}
	resp, err := h.lendingSvc.CreateRequest(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Approve(c echo.Context) error {
	var req model.ApproveRequest
	return h.mutate(c, &req, func(c echo.Context, actor, uid string) (model.BorrowRequest, error) {
		return h.lendingSvc.Approve(c.Request().Context(), actor, uid, req)
	})
}

func (h *Handler) Deny(c echo.Context) error {
	var req model.DenyRequest
	return h.mutate(c, &req, func(c echo.Context, actor, uid string) (model.BorrowRequest, error) {
		return h.lendingSvc.Deny(c.Request().Context(), actor, uid, req)
	})
}

func (h *Handler) MarkHandoverComplete(c echo.Context) error {
	var req model.VersionedRequest
	return h.mutate(c, &req, func(c echo.Context, actor, uid string) (model.BorrowRequest, error) {
		return h.lendingSvc.MarkHandoverComplete(c.Request().Context(), actor, uid, req.Version)
	})
}

func (h *Handler) AddTracking(c echo.Context) error {
	var req model.TrackingRequest
	return h.mutate(c, &req, func(c echo.Context, actor, uid string) (model.BorrowRequest, error) {
		return h.lendingSvc.AddTracking(c.Request().Context(), actor, uid, req)
	})
}

func (h *Handler) InitiateReturn(c echo.Context) error {
	var req model.InitiateReturnRequest
	return h.mutate(c, &req, func(c echo.Context, actor, uid string) (model.BorrowRequest, error) {
		return h.lendingSvc.InitiateReturn(c.Request().Context(), actor, uid, req)
	})
}

func (h *Handler) ConfirmReturn(c echo.Context) error {
	var req model.VersionedRequest
	return h.mutate(c, &req, func(c echo.Context, actor, uid string) (model.BorrowRequest, error) {
		return h.lendingSvc.ConfirmReturn(c.Request().Context(), actor, uid, req.Version)
	})
}

// mutate binds and validates a lifecycle request body, then runs the operation.
func (h *Handler) mutate(c echo.Context, req any, op func(c echo.Context, actor, uid string) (model.BorrowRequest, error)) error {
	userName, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	requestUid := c.Param("requestUid")
	if requestUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "requestUid is empty")
	}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	resp, err := op(c, userName, requestUid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetRequest(c echo.Context) error {
	userName, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	resp, err := h.lendingSvc.GetRequest(c.Request().Context(), userName, c.Param("requestUid"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListIncoming(c echo.Context) error {
	userName, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	items, err := h.lendingSvc.ListIncoming(c.Request().Context(), userName)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListOutgoing(c echo.Context) error {
	userName, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	items, err := h.lendingSvc.ListOutgoing(c.Request().Context(), userName)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) SendMessage(c echo.Context) error {
	userName, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	var req model.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	msg, err := h.lendingSvc.SendMessage(c.Request().Context(), userName, c.Param("requestUid"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, msg)
}

func (h *Handler) ListMessages(c echo.Context) error {
	userName, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	items, err := h.lendingSvc.ListMessages(c.Request().Context(), userName, c.Param("requestUid"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) MarkRead(c echo.Context) error {
	userName, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	cursor, err := h.lendingSvc.MarkRead(c.Request().Context(), userName, c.Param("requestUid"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cursor)
}

func (h *Handler) GetUnreadCount(c echo.Context) error {
	userName, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	count, err := h.lendingSvc.GetUnreadCount(c.Request().Context(), userName, c.Param("requestUid"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, count)
}

func (h *Handler) GetTotalUnread(c echo.Context) error {
	userName, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	total, err := h.lendingSvc.GetTotalUnread(c.Request().Context(), userName)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, total)
}

func (h *Handler) ListNotifications(c echo.Context) error {
	userName, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	items, err := h.lendingSvc.ListNotifications(c.Request().Context(), userName)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) MarkNotificationRead(c echo.Context) error {
	userName, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	if err := h.lendingSvc.MarkNotificationRead(c.Request().Context(), c.Param("notificationUid"), userName); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) ListActivity(c echo.Context) error {
	items, err := h.lendingSvc.ListActivity(c.Request().Context(), c.QueryParam("communityUid"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// StreamEvents pushes transition events for one request over SSE. Delivery is
// advisory: clients reconcile against GET /requests/:requestUid.
func (h *Handler) StreamEvents(c echo.Context) error {
	userName, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	requestUid := c.Param("requestUid")
	if _, err := h.lendingSvc.GetRequest(c.Request().Context(), userName, requestUid); err != nil {
		return httpError(err)
	}

	events, cancel := h.broker.Subscribe(requestUid)
	defer cancel()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

func httpError(err error) *echo.HTTPError {
	var (
		validationErr *errs.ValidationError
		transitionErr *errs.InvalidTransitionError
		conflictErr   *errs.ConflictError
		depErr        *errs.DependencyFailure
	)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.As(err, &validationErr):
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
			"message": validationErr.Error(),
			"field":   validationErr.Field,
		})
	case errors.As(err, &transitionErr):
		return echo.NewHTTPError(http.StatusConflict, echo.Map{
			"message": transitionErr.Error(),
			"from":    transitionErr.From,
			"to":      transitionErr.To,
		})
	case errors.As(err, &conflictErr):
		return echo.NewHTTPError(http.StatusConflict, echo.Map{
			"message":         conflictErr.Error(),
			"expectedVersion": conflictErr.ExpectedVersion,
			"actualVersion":   conflictErr.ActualVersion,
		})
	case errors.Is(err, errs.ErrAlreadyRequested):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrBookUnavailable):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &depErr):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
