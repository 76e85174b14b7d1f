package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"vitametron/api/application"
	"vitametron/api/domain/entity"
)

type ConsumptionHandler struct {
	uc *application.ComputeConsumptionUseCase
}

func NewConsumptionHandler(uc *application.ComputeConsumptionUseCase) *ConsumptionHandler {
	return &ConsumptionHandler{uc: uc}
}

type consumptionSessionRequest struct {
	RPE             float64 `json:"rpe,omitempty"`
	HasRPE          bool    `json:"has_rpe,omitempty"`
	DurationMinutes float64 `json:"duration_minutes,omitempty"`
	HasDuration     bool    `json:"has_duration,omitempty"`
	Label           string  `json:"label,omitempty"`
	HasLabel        bool    `json:"has_label,omitempty"`
	AU              float64 `json:"au,omitempty"`
	HasAU           bool    `json:"has_au,omitempty"`
}

type consumptionParamsOverride struct {
	PerSessionCap *float64 `json:"per_session_cap,omitempty"`
	PerDayCap     *float64 `json:"per_day_cap,omitempty"`
}

type computeConsumptionRequest struct {
	UserID             string                      `json:"user_id"`
	Date               string                      `json:"date,omitempty"`
	Sessions           []consumptionSessionRequest `json:"sessions"`
	BaseReadinessScore *int                        `json:"base_readiness_score,omitempty"`
	ParamsOverride     *consumptionParamsOverride  `json:"params_override,omitempty"`
}

func (h *ConsumptionHandler) Compute(c echo.Context) error {
	var req computeConsumptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
	}

	// date is only needed to look up a persisted result; when the caller
	// supplies base_readiness_score directly it may be omitted (Scenario F).
	var date time.Time
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date format"})
		}
		date = d
	} else if req.BaseReadinessScore == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "date is required unless base_readiness_score is supplied"})
	}

	sessions := make([]entity.ConsumptionSession, len(req.Sessions))
	for i, s := range req.Sessions {
		sessions[i] = entity.ConsumptionSession{
			RPE: s.RPE, HasRPE: s.HasRPE,
			DurationMinutes: s.DurationMinutes, HasDuration: s.HasDuration,
			Label: s.Label, HasLabel: s.HasLabel,
			AU: s.AU, HasAU: s.HasAU,
		}
	}

	var params entity.ConsumptionParams
	if req.ParamsOverride != nil {
		params.PerSessionCap = req.ParamsOverride.PerSessionCap
		params.PerDayCap = req.ParamsOverride.PerDayCap
	}

	result, err := h.uc.Compute(c.Request().Context(), req.UserID, date, sessions, req.BaseReadinessScore, params)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "no readiness result for that day"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *ConsumptionHandler) Register(g *echo.Group) {
	g.POST("/readiness/consumption", h.Compute)
}
