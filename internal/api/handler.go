package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"CashCycle/internal/model"
	"CashCycle/internal/service"
)

// Handler exposes the service facade over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers all endpoints on the router.
func SetupRoutes(r *gin.Engine, svc *service.Service) {
	h := NewHandler(svc)
	r.GET("/", h.Root)
	r.GET("/network-status", h.NetworkStatus)
	r.POST("/predict", h.Predict)
	r.POST("/simulate/advance", h.AdvanceDay)
	r.POST("/simulate/reset", h.Reset)
	r.POST("/simulate/event", h.InjectEvent)
	r.POST("/config", h.UpdateConfig)
	r.GET("/atm/:id", h.MachineDetail)
}

// Root is the liveness endpoint.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "System Operational",
		"service": "CashCycle Ops Command Center",
	})
}

// NetworkStatus returns high-level fleet stats and chart history.
func (h *Handler) NetworkStatus(c *gin.Context) {
	status, err := h.svc.Status()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

// Predict generates a forecast and rebalancing schedule under the current
// configuration.
func (h *Handler) Predict(c *gin.Context) {
	fc, err := h.svc.Forecast()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, fc)
}

// AdvanceDay advances the simulation clock by one day.
func (h *Handler) AdvanceDay(c *gin.Context) {
	date, err := h.svc.AdvanceDay()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Simulation Advanced",
		"new_date": date.Format("2006-01-02"),
	})
}

// Reset regenerates the simulation history from scratch.
func (h *Handler) Reset(c *gin.Context) {
	if err := h.svc.Reset(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Simulation Reset"})
}

type eventRequest struct {
	Type string `json:"type" binding:"required"`
}

// InjectEvent schedules a shock event (FESTIVAL, STORM) for the next day.
func (h *Handler) InjectEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.InjectEvent(req.Type); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Event '" + req.Type + "' scheduled for next simulation step.",
	})
}

type configRequest struct {
	RiskTolerance     *model.RiskTolerance `json:"risk_tolerance"`
	MinCashThreshold  *int64               `json:"min_cash_threshold"`
	MaxCashThreshold  *int64               `json:"max_cash_threshold"`
	CostPerTrip       *int64               `json:"cost_per_trip"`
	InterestRateDaily *float64             `json:"interest_rate_daily"`
}

// UpdateConfig updates the operational thresholds. A risk-tolerance change
// overwrites both thresholds from the profile table.
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg, err := h.svc.UpdateConfig(service.ConfigUpdate{
		RiskTolerance:     req.RiskTolerance,
		MinCashThreshold:  req.MinCashThreshold,
		MaxCashThreshold:  req.MaxCashThreshold,
		CostPerTrip:       req.CostPerTrip,
		InterestRateDaily: req.InterestRateDaily,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Config Updated", "config": cfg})
}

// MachineDetail returns detailed data for a specific machine.
func (h *Handler) MachineDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid machine id"})
		return
	}
	detail, err := h.svc.MachineDetail(id)
	if err != nil {
		if errors.Is(err, service.ErrMachineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}
