// Package http exposes the workflow and solvent operations over a REST API.
// Handlers translate between JSON payloads and the application's commands and
// queries; domain failures are mapped onto HTTP status codes by error kind.
package http

import (
	"errors"
	"net/http"

	"platetrack/internal/core/application/usecases/commands"
	"platetrack/internal/core/application/usecases/queries"
	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/core/domain/model/ledger"
	"platetrack/internal/core/domain/model/order"
	"platetrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler           commands.CreateOrderCommandHandler
	updateSubProcessHandler      commands.UpdateSubProcessCommandHandler
	completePrepressHandler      commands.CompletePrepressCommandHandler
	setOrderStatusHandler        commands.SetOrderStatusCommandHandler
	refillSolventHandler         commands.RefillSolventCommandHandler
	updateSolventSettingsHandler commands.UpdateSolventSettingsCommandHandler
	recordSolventUsageHandler    commands.RecordSolventUsageCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getSolventStatusHandler queries.GetSolventStatusQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateSubProcessHandler commands.UpdateSubProcessCommandHandler,
	completePrepressHandler commands.CompletePrepressCommandHandler,
	setOrderStatusHandler commands.SetOrderStatusCommandHandler,
	refillSolventHandler commands.RefillSolventCommandHandler,
	updateSolventSettingsHandler commands.UpdateSolventSettingsCommandHandler,
	recordSolventUsageHandler commands.RecordSolventUsageCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getSolventStatusHandler queries.GetSolventStatusQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		updateSubProcessHandler:      updateSubProcessHandler,
		completePrepressHandler:      completePrepressHandler,
		setOrderStatusHandler:        setOrderStatusHandler,
		refillSolventHandler:         refillSolventHandler,
		updateSolventSettingsHandler: updateSolventSettingsHandler,
		recordSolventUsageHandler:    recordSolventUsageHandler,
		getOrderHandler:              getOrderHandler,
		getSolventStatusHandler:      getSolventStatusHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:orderId", s.GetOrder)
	v1.PUT("/orders/:orderId/sub-processes/:name", s.UpdateSubProcess)
	v1.PUT("/orders/:orderId/prepress/complete", s.CompletePrepress)
	v1.PUT("/orders/:orderId/status", s.SetOrderStatus)
	v1.GET("/solvent/status", s.GetSolventStatus)
	v1.POST("/solvent/refill", s.RefillSolvent)
	v1.PUT("/solvent/settings", s.UpdateSolventSettings)
	v1.POST("/solvent/usage", s.RecordSolventUsage)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new production order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	if req.OrderID != "" {
		parsed, err := kernel.UUIDFromString(req.OrderID)
		if err != nil {
			return badRequest(ctx, "Invalid order id: "+err.Error())
		}
		orderID = parsed
	}

	var dimensions *order.Dimensions
	if req.Dimensions != nil {
		dims, err := order.NewDimensions(
			req.Dimensions.Width,
			req.Dimensions.Height,
			req.Dimensions.WidthRepeatCount,
			req.Dimensions.HeightRepeatCount,
		)
		if err != nil {
			return badRequest(ctx, "Invalid dimensions: "+err.Error())
		}
		dimensions = &dims
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, order.TemplateID(req.TemplateID), dimensions)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queryOrderToResponse(view))
}

// UpdateSubProcess handles PUT /api/v1/orders/:orderId/sub-processes/:name.
// Completing the washout sub-process may additionally meter solvent usage; the
// response then carries the usage event and any non-blocking warning.
func (s *Server) UpdateSubProcess(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateSubProcessRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.SubProcessStatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateSubProcessCommand(orderID, ctx.Param("name"), status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.updateSubProcessHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	resp := orderToResponse(result.Order)
	resp.UsageEvent = usageEventToResponse(result.UsageEvent)
	resp.Warning = result.Warning

	return ctx.JSON(http.StatusOK, resp)
}

// CompletePrepress handles PUT /api/v1/orders/:orderId/prepress/complete.
func (s *Server) CompletePrepress(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCompletePrepressCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.completePrepressHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// SetOrderStatus handles PUT /api/v1/orders/:orderId/status.
func (s *Server) SetOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req SetOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewSetOrderStatusCommand(orderID, target)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.setOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// GetSolventStatus handles GET /api/v1/solvent/status.
func (s *Server) GetSolventStatus(ctx echo.Context) error {
	query := queries.NewGetSolventStatusQuery()

	view, err := s.getSolventStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, solventStatusToResponse(view))
}

// RefillSolvent handles POST /api/v1/solvent/refill.
func (s *Server) RefillSolvent(ctx echo.Context) error {
	var req RefillSolventRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRefillSolventCommand(req.Barrels)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.refillSolventHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ledgerToResponse(updated))
}

// UpdateSolventSettings handles PUT /api/v1/solvent/settings.
func (s *Server) UpdateSolventSettings(ctx echo.Context) error {
	var req SolventSettingsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	patch := ledger.SettingsPatch{
		CostPerBarrel:          req.CostPerBarrel,
		RecyclingCostPerBarrel: req.RecyclingCostPerBarrel,
		CostPerSquareMeter:     req.CostPerSquareMeter,
		LitersPerSquareMeter:   req.LitersPerSquareMeter,
		RecyclingRate:          req.RecyclingRate,
	}

	cmd, err := commands.NewUpdateSolventSettingsCommand(patch)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.updateSolventSettingsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ledgerToResponse(updated))
}

// RecordSolventUsage handles POST /api/v1/solvent/usage - the manual
// correction path for consumption that the washout trigger could not meter.
func (s *Server) RecordSolventUsage(ctx echo.Context) error {
	var req RecordUsageRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewRecordSolventUsageCommand(orderID, req.AreaM2)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.recordSolventUsageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	resp := usageEventToResponse(result.UsageEvent)
	resp.Warning = result.Warning

	return ctx.JSON(http.StatusCreated, resp)
}

// badRequest writes a 400 error payload.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorJSON maps an application error onto the API's status codes:
// validation failures are 400, missing objects 404, state and concurrency
// conflicts 409, everything else 500.
func errorJSON(ctx echo.Context, err error) error {
	code := statusCodeFor(err)
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrDuplicateUsage),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrPrepressIncomplete):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, ledger.ErrInvalidQuantity),
		errors.Is(err, ledger.ErrInvalidSetting),
		errors.Is(err, order.ErrInvalidGeometry),
		errors.Is(err, order.ErrUnknownSubProcess),
		errors.Is(err, order.ErrUnknownSubProcessStatus),
		errors.Is(err, order.ErrUnknownWorkflowTemplate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
