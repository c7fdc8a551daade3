// Package http exposes the order lifecycle over a JSON API.
// It coordinates between HTTP handlers and application use cases; actor
// identity arrives in headers, authentication itself lives upstream.
package http

import (
	"errors"
	"net/http"
	"time"

	"dentlab/internal/core/application/usecases/commands"
	"dentlab/internal/core/application/usecases/queries"
	"dentlab/internal/core/domain/model/actor"
	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"
	"dentlab/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Headers carrying the acting user. Filled in by the upstream auth proxy.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

// Server handles the HTTP API for order management.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler

	// Query handlers
	getOrdersForClinicHandler queries.GetOrdersForClinicQueryHandler
	getActiveOrdersHandler    queries.GetActiveOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	getOrdersForClinicHandler queries.GetOrdersForClinicQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		transitionOrderHandler:    transitionOrderHandler,
		getOrdersForClinicHandler: getOrdersForClinicHandler,
		getActiveOrdersHandler:    getActiveOrdersHandler,
	}
}

// RegisterRoutes attaches the API endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/v1/orders", s.CreateOrder)
	e.POST("/api/v1/orders/:id/status", s.ChangeOrderStatus)
	e.GET("/api/v1/orders", s.ListOrders)
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	DoctorID    string `json:"doctorId"`
	ClinicID    string `json:"clinicId"`
	PatientName string `json:"patientName"`
}

// ChangeOrderStatusRequest is the body of POST /api/v1/orders/:id/status.
type ChangeOrderStatusRequest struct {
	Target string `json:"target"`
}

// OrderResponse is the JSON representation of one order.
type OrderResponse struct {
	ID              string     `json:"id"`
	Number          string     `json:"number"`
	DoctorID        string     `json:"doctorId"`
	ClinicID        string     `json:"clinicId"`
	CreatedByID     string     `json:"createdById"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	MaterialsSentAt *time.Time `json:"materialsSentAt,omitempty"`
	InfoRequestedAt *time.Time `json:"infoRequestedAt,omitempty"`
	StartedAt       *time.Time `json:"startedAt,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
}

// OrderListItem is one row of the GET /api/v1/orders listing.
type OrderListItem struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	DoctorID  string    `json:"doctorId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new draft order.
// Only clinic-side roles may create orders; the acting user becomes the
// order's author.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actorID, actorRole, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if !actorRole.IsClinicSide() {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "only clinic staff may create orders",
		})
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	doctorID, err := kernel.UUIDFromString(req.DoctorID)
	if err != nil {
		return badRequest(ctx, "invalid doctor id")
	}
	clinicID, err := kernel.UUIDFromString(req.ClinicID)
	if err != nil {
		return badRequest(ctx, "invalid clinic id")
	}

	cmd, err := commands.NewCreateOrderCommand(doctorID, clinicID, actorID, req.PatientName)
	if err != nil {
		return badRequest(ctx, "invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrAllocationExhausted) {
			return ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Code:    http.StatusServiceUnavailable,
				Message: "could not allocate an order number, retry later",
			})
		}
		return internalError(ctx, "failed to create order")
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - moves an order
// through its lifecycle on behalf of the acting user.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actorID, actorRole, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req ChangeOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, "invalid target status")
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, actorID, actorRole)
	if err != nil {
		return badRequest(ctx, "invalid transition request: "+err.Error())
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return transitionError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// ListOrders handles GET /api/v1/orders.
// With a clinicId query parameter it lists that clinic's orders newest first;
// without it, the active lab work queue.
func (s *Server) ListOrders(ctx echo.Context) error {
	requestCtx := ctx.Request().Context()

	if rawClinicID := ctx.QueryParam("clinicId"); rawClinicID != "" {
		clinicID, err := kernel.UUIDFromString(rawClinicID)
		if err != nil {
			return badRequest(ctx, "invalid clinic id")
		}

		query, err := queries.NewGetOrdersForClinicQuery(clinicID)
		if err != nil {
			return badRequest(ctx, "invalid clinic id")
		}

		orders, err := s.getOrdersForClinicHandler.Handle(requestCtx, query)
		if err != nil {
			return internalError(ctx, "failed to list orders")
		}

		response := make([]OrderListItem, len(orders))
		for i, row := range orders {
			response[i] = OrderListItem{
				ID:        row.ID.String(),
				Number:    row.Number.String(),
				DoctorID:  row.DoctorID.String(),
				Status:    row.Status.String(),
				CreatedAt: row.CreatedAt,
			}
		}
		return ctx.JSON(http.StatusOK, response)
	}

	orders, err := s.getActiveOrdersHandler.Handle(requestCtx, queries.NewGetActiveOrdersQuery())
	if err != nil {
		return internalError(ctx, "failed to list orders")
	}

	response := make([]OrderListItem, len(orders))
	for i, row := range orders {
		response[i] = OrderListItem{
			ID:        row.ID.String(),
			Number:    row.Number.String(),
			DoctorID:  row.DoctorID.String(),
			Status:    row.Status.String(),
			CreatedAt: row.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// actorFromHeaders resolves the acting user from the request headers.
func actorFromHeaders(ctx echo.Context) (kernel.UUID, actor.Role, error) {
	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
	if err != nil {
		return kernel.UUID{}, actor.Unknown, errors.New("missing or invalid " + HeaderActorID + " header")
	}

	actorRole, err := actor.RoleFromString(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return kernel.UUID{}, actor.Unknown, errors.New("missing or invalid " + HeaderActorRole + " header")
	}

	return actorID, actorRole, nil
}

// transitionError maps transition failures onto HTTP status codes:
// unknown order is 404, a role denial is 403, an impossible state change or
// a lost race is 409.
func transitionError(ctx echo.Context, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "order not found",
		})
	}

	var denial *order.InvalidTransitionError
	if errors.As(err, &denial) {
		if denial.Reason == order.DeniedRoleNotPermitted {
			return ctx.JSON(http.StatusForbidden, ErrorResponse{
				Code:    http.StatusForbidden,
				Message: denial.Error(),
			})
		}
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: denial.Error(),
		})
	}

	if errors.Is(err, errs.ErrConcurrentModification) {
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "order was modified concurrently, reload and retry",
		})
	}

	return internalError(ctx, "failed to change order status")
}

func toOrderResponse(aggregate *order.Order) OrderResponse {
	timestamps := aggregate.LifecycleTimestamps()
	return OrderResponse{
		ID:              aggregate.ID().String(),
		Number:          aggregate.Number().String(),
		DoctorID:        aggregate.DoctorID().String(),
		ClinicID:        aggregate.ClinicID().String(),
		CreatedByID:     aggregate.CreatedByID().String(),
		Status:          aggregate.Status().String(),
		CreatedAt:       aggregate.CreatedAt(),
		SubmittedAt:     timestamps.SubmittedAt,
		MaterialsSentAt: timestamps.MaterialsSentAt,
		InfoRequestedAt: timestamps.InfoRequestedAt,
		StartedAt:       timestamps.StartedAt,
		CompletedAt:     timestamps.CompletedAt,
		CancelledAt:     timestamps.CancelledAt,
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
