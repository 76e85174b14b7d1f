package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"vitametron/api/application"
	"vitametron/api/domain/entity"
)

type ReadinessHandler struct {
	uc *application.ComputeReadinessUseCase
}

func NewReadinessHandler(uc *application.ComputeReadinessUseCase) *ReadinessHandler {
	return &ReadinessHandler{uc: uc}
}

type dailyPayloadRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
	Gender string `json:"gender"`

	PreviousStateProbs *[6]float64 `json:"previous_state_probs,omitempty"`

	TotalSleepMinutes   float64 `json:"total_sleep_minutes,omitempty"`
	InBedMinutes        float64 `json:"in_bed_minutes,omitempty"`
	DeepSleepMinutes    float64 `json:"deep_sleep_minutes,omitempty"`
	REMSleepMinutes     float64 `json:"rem_sleep_minutes,omitempty"`
	HasSleepData        bool    `json:"has_sleep_data,omitempty"`
	HRVRMSSDToday       float64 `json:"hrv_rmssd_today,omitempty"`
	HasHRVToday         bool    `json:"has_hrv_today,omitempty"`
	HRVRMSSD3DayAvg     float64 `json:"hrv_rmssd_3day_avg,omitempty"`
	HasHRV3DayAvg       bool    `json:"has_hrv_3day_avg,omitempty"`
	HRVRMSSD7DayAvg     float64 `json:"hrv_rmssd_7day_avg,omitempty"`
	HasHRV7DayAvg       bool    `json:"has_hrv_7day_avg,omitempty"`
	RestorativeRatio    float64 `json:"restorative_ratio,omitempty"`
	HasRestorativeRatio bool    `json:"has_restorative_ratio,omitempty"`

	SleepBaselineHours *float64 `json:"sleep_baseline_hours,omitempty"`
	SleepBaselineEff   *float64 `json:"sleep_baseline_eff,omitempty"`
	RestBaselineRatio  *float64 `json:"rest_baseline_ratio,omitempty"`
	HRVBaselineMu      *float64 `json:"hrv_baseline_mu,omitempty"`
	HRVBaselineSD      *float64 `json:"hrv_baseline_sd,omitempty"`

	TrainingLoad        string    `json:"training_load,omitempty"`
	HasTrainingLoad     bool      `json:"has_training_load,omitempty"`
	RecentTrainingLoads []string  `json:"recent_training_loads,omitempty"`
	RecentTrainingAU    []float64 `json:"recent_training_au,omitempty"`

	YesterdayJournal journalRequest `json:"yesterday_journal,omitempty"`
	TodayJournal     journalRequest `json:"today_journal,omitempty"`
	Hooper           hooperRequest  `json:"hooper"`
	Cycle            cycleRequest   `json:"cycle,omitempty"`

	WellbeingPercentage    int  `json:"wellbeing_percentage,omitempty"`
	HasWellbeingPercentage bool `json:"has_wellbeing_percentage,omitempty"`

	ReportNotes string `json:"report_notes,omitempty"`
}

type journalRequest struct {
	AlcoholConsumed  bool   `json:"alcohol_consumed,omitempty"`
	LateCaffeine     bool   `json:"late_caffeine,omitempty"`
	ScreenBeforeBed  bool   `json:"screen_before_bed,omitempty"`
	LateMeal         bool   `json:"late_meal,omitempty"`
	IsSick           bool   `json:"is_sick,omitempty"`
	IsInjured        bool   `json:"is_injured,omitempty"`
	NutritionQuality string `json:"nutrition_quality,omitempty"`
	GISymptoms       string `json:"gi_symptoms,omitempty"`
}

func (j journalRequest) toEntity() entity.Journal {
	return entity.Journal{
		AlcoholConsumed:     j.AlcoholConsumed,
		LateCaffeine:        j.LateCaffeine,
		ScreenBeforeBed:     j.ScreenBeforeBed,
		LateMeal:            j.LateMeal,
		IsSick:              j.IsSick,
		IsInjured:           j.IsInjured,
		NutritionQuality:    j.NutritionQuality,
		HasNutritionQuality: j.NutritionQuality != "",
		GISymptoms:          j.GISymptoms,
		HasGISymptoms:       j.GISymptoms != "",
	}
}

type hooperRequest struct {
	Fatigue  int `json:"fatigue"`
	Soreness int `json:"soreness"`
	Stress   int `json:"stress"`
	Sleep    int `json:"sleep"`
}

type cycleRequest struct {
	Day          int  `json:"day,omitempty"`
	CycleLength  int  `json:"cycle_length,omitempty"`
	HasCycleInfo bool `json:"has_cycle_info,omitempty"`
}

func (req dailyPayloadRequest) toEntity() (*entity.DailyPayload, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	p := &entity.DailyPayload{
		UserID:                 req.UserID,
		Date:                   date,
		Gender:                 req.Gender,
		TotalSleepMinutes:      req.TotalSleepMinutes,
		InBedMinutes:           req.InBedMinutes,
		DeepSleepMinutes:       req.DeepSleepMinutes,
		REMSleepMinutes:        req.REMSleepMinutes,
		HasSleepData:           req.HasSleepData,
		HRVRMSSDToday:          req.HRVRMSSDToday,
		HasHRVToday:            req.HasHRVToday,
		HRVRMSSD3DayAvg:        req.HRVRMSSD3DayAvg,
		HasHRV3DayAvg:          req.HasHRV3DayAvg,
		HRVRMSSD7DayAvg:        req.HRVRMSSD7DayAvg,
		HasHRV7DayAvg:          req.HasHRV7DayAvg,
		RestorativeRatio:       req.RestorativeRatio,
		HasRestorativeRatio:    req.HasRestorativeRatio,
		SleepBaselineHours:     req.SleepBaselineHours,
		SleepBaselineEff:       req.SleepBaselineEff,
		RestBaselineRatio:      req.RestBaselineRatio,
		HRVBaselineMu:          req.HRVBaselineMu,
		HRVBaselineSD:          req.HRVBaselineSD,
		TrainingLoad:           req.TrainingLoad,
		HasTrainingLoad:        req.HasTrainingLoad,
		RecentTrainingLoads:    req.RecentTrainingLoads,
		RecentTrainingAU:       req.RecentTrainingAU,
		YesterdayJournal:       req.YesterdayJournal.toEntity(),
		TodayJournal:           req.TodayJournal.toEntity(),
		Hooper:                 entity.HooperScores(req.Hooper),
		Cycle:                  entity.CycleInfo{Day: req.Cycle.Day, CycleLength: req.Cycle.CycleLength, HasCycleInfo: req.Cycle.HasCycleInfo},
		WellbeingPercentage:    req.WellbeingPercentage,
		HasWellbeingPercentage: req.HasWellbeingPercentage,
		ReportNotes:            req.ReportNotes,
	}
	if req.PreviousStateProbs != nil {
		probs := entity.StateDistribution(*req.PreviousStateProbs)
		p.PreviousStateProbs = &probs
	}
	return p, nil
}

func (h *ReadinessHandler) Compute(c echo.Context) error {
	var req dailyPayloadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
	}

	payload, err := req.toEntity()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date format"})
	}

	result, err := h.uc.Compute(c.Request().Context(), payload)
	if err != nil {
		var invalid *entity.InvalidPayloadError
		if errors.As(err, &invalid) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		}
		if result == nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		// Persistence failed but the engine produced a full result; still
		// hand the caller their computed reading rather than discarding it.
	}

	return c.JSON(http.StatusOK, result)
}

func (h *ReadinessHandler) GetByDate(c echo.Context) error {
	userID := c.QueryParam("user_id")
	dateStr := c.QueryParam("date")
	if userID == "" || dateStr == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id and date are required"})
	}

	date, err := parseDate(dateStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date format"})
	}

	result, err := h.uc.GetByDate(c.Request().Context(), userID, date)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *ReadinessHandler) GetRange(c echo.Context) error {
	userID := c.QueryParam("user_id")
	fromStr := c.QueryParam("from")
	toStr := c.QueryParam("to")
	if userID == "" || fromStr == "" || toStr == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id, from and to are required"})
	}

	from, err := parseDate(fromStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid from date"})
	}
	to, err := parseDate(toStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid to date"})
	}

	results, err := h.uc.ListRange(c.Request().Context(), userID, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if results == nil {
		results = []entity.DailyResult{}
	}

	return c.JSON(http.StatusOK, results)
}

func (h *ReadinessHandler) Register(g *echo.Group) {
	g.POST("/readiness", h.Compute)
	g.GET("/readiness", h.GetByDate)
	g.GET("/readiness/range", h.GetRange)
}
