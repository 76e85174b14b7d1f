package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"vitametron/api/application"
	"vitametron/api/domain/entity"
)

type BaselineHandler struct {
	uc *application.BaselineUseCase
}

func NewBaselineHandler(uc *application.BaselineUseCase) *BaselineHandler {
	return &BaselineHandler{uc: uc}
}

func (h *BaselineHandler) Get(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	profile := entity.UserProfile{SleepNeed: c.QueryParam("sleep_need"), HRVAge: c.QueryParam("hrv_age")}
	b, err := h.uc.GetOrCompute(c.Request().Context(), userID, profile, time.Now().UTC())
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, b)
}

type sleepRecordRequest struct {
	Date             string  `json:"date"`
	TotalSleepHours  float64 `json:"total_sleep_hours"`
	Efficiency       float64 `json:"efficiency"`
	RestorativeRatio float64 `json:"restorative_ratio,omitempty"`
	HasRestorative   bool    `json:"has_restorative,omitempty"`
}

type hrvRecordRequest struct {
	Date  string  `json:"date"`
	RMSSD float64 `json:"rmssd"`
}

type updateBaselineRequest struct {
	SleepRecords []sleepRecordRequest `json:"sleep_records"`
	HRVRecords   []hrvRecordRequest   `json:"hrv_records"`
	Profile      struct {
		SleepNeed string `json:"sleep_need,omitempty"`
		HRVAge    string `json:"hrv_age,omitempty"`
	} `json:"profile,omitempty"`
}

func (h *BaselineHandler) Update(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	var req updateBaselineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
	}

	sleep := make([]entity.SleepHistoryRecord, len(req.SleepRecords))
	for i, r := range req.SleepRecords {
		date, err := parseDate(r.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid sleep_records date"})
		}
		sleep[i] = entity.SleepHistoryRecord{
			Date: date, TotalSleepHours: r.TotalSleepHours, Efficiency: r.Efficiency,
			RestorativeRatio: r.RestorativeRatio, HasRestorative: r.HasRestorative,
		}
	}

	hrv := make([]entity.HRVRecord, len(req.HRVRecords))
	for i, r := range req.HRVRecords {
		date, err := parseDate(r.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid hrv_records date"})
		}
		hrv[i] = entity.HRVRecord{Date: date, RMSSD: r.RMSSD}
	}

	profile := entity.UserProfile{SleepNeed: req.Profile.SleepNeed, HRVAge: req.Profile.HRVAge}

	b, err := h.uc.Update(c.Request().Context(), userID, sleep, hrv, profile, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, b)
}

func (h *BaselineHandler) Register(g *echo.Group) {
	g.GET("/baseline/:user_id", h.Get)
	g.POST("/baseline/:user_id", h.Update)
}
