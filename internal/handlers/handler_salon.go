package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/dto"
	"github.com/glowslot/salon_ledger/internal/middleware"
)

// salonHandler handles HTTP requests related to salons and their staff.
type salonHandler struct {
	salonService portssvc.SalonSvcFacade
}

// newSalonHandler creates a new salonHandler.
func newSalonHandler(ss portssvc.SalonSvcFacade) *salonHandler {
	return &salonHandler{salonService: ss}
}

// registerSalonRoutes registers routes for salon provisioning and staff
// enrollment.
func registerSalonRoutes(rg *gin.RouterGroup, salonService portssvc.SalonSvcFacade) {
	h := newSalonHandler(salonService)

	rg.POST("/salons", h.createSalon)

	salon := rg.Group("/salons/:salon_id")
	{
		salon.GET("", h.getSalon)
		salon.POST("/employees", h.addEmployee)
		salon.GET("/employees", h.listEmployees)
	}
}

// createSalon provisions a salon owned by the authenticated user.
func (h *salonHandler) createSalon(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	salon, err := h.salonService.CreateSalon(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create salon", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create salon"})
		}
		return
	}

	logger.Info("Salon created", slog.String("salon_id", salon.SalonID))
	c.JSON(http.StatusCreated, dto.ToSalonResponse(salon))
}

// getSalon retrieves a salon by ID.
func (h *salonHandler) getSalon(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	salon, err := h.salonService.GetSalon(c.Request.Context(), salonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Salon not found"})
			return
		}
		logger.Error("Failed to get salon", slog.String("error", err.Error()), slog.String("salon_id", salonID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get salon"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSalonResponse(salon))
}

// addEmployee enrolls a user into the salon with compensation terms.
func (h *salonHandler) addEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	var req dto.AddEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	employee, err := h.salonService.AddEmployee(c.Request.Context(), salonID, req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "User is already enrolled in this salon"})
		default:
			logger.Error("Failed to enroll employee", slog.String("error", err.Error()), slog.String("salon_id", salonID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to enroll employee"})
		}
		return
	}

	logger.Info("Employee enrolled", slog.String("salon_employee_id", employee.SalonEmployeeID),
		slog.String("salon_id", salonID))
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// listEmployees retrieves the salon's active employees.
func (h *salonHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	employees, err := h.salonService.ListEmployees(c.Request.Context(), salonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Salon not found"})
			return
		}
		logger.Error("Failed to list employees", slog.String("error", err.Error()), slog.String("salon_id", salonID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list employees"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListEmployeeResponse(employees))
}
