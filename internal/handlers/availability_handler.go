package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	add           *ucAvailability.AddAvailability
	resolve       *ucAvailability.ResolveAvailability
	listRecurring *ucAvailability.ListRecurring
	delete        *ucAvailability.DeleteAvailability
}

func NewAvailabilityHandler(
	add *ucAvailability.AddAvailability,
	resolve *ucAvailability.ResolveAvailability,
	listRecurring *ucAvailability.ListRecurring,
	delete *ucAvailability.DeleteAvailability,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		add:           add,
		resolve:       resolve,
		listRecurring: listRecurring,
		delete:        delete,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSlotRequest struct {
	Date     string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Weekdays []int  `json:"weekdays" binding:"omitempty,dive,min=0,max=6"`

	Session   string `json:"session" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	MaxTokens int    `json:"max_tokens" binding:"required,min=1"`
}

// ======================================================
// HANDLERS
// ======================================================

// GET /doctors/:doctorUserId/availability?date=YYYY-MM-DD
func (h *AvailabilityHandler) GetForDate(c *gin.Context) {
	doctorUserID := c.Param("doctorUserId")
	if _, err := uuid.Parse(doctorUserID); err != nil {
		httperr.BadRequest(c, "invalid_doctor_id", "doctorUserId must be a UUID.")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "A `date` query parameter (YYYY-MM-DD) is required.")
		return
	}

	views, err := h.resolve.Execute(c.Request.Context(), doctorUserID, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, views)
}

// GET /doctors/:doctorUserId/availability/recurring
func (h *AvailabilityHandler) GetRecurring(c *gin.Context) {
	doctorUserID := c.Param("doctorUserId")
	if _, err := uuid.Parse(doctorUserID); err != nil {
		httperr.BadRequest(c, "invalid_doctor_id", "doctorUserId must be a UUID.")
		return
	}

	templates, err := h.listRecurring.Execute(c.Request.Context(), doctorUserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, templates)
}

// POST /doctors/:doctorUserId/availability
func (h *AvailabilityHandler) Add(c *gin.Context) {
	doctorUserID := c.Param("doctorUserId")
	if _, err := uuid.Parse(doctorUserID); err != nil {
		httperr.BadRequest(c, "invalid_doctor_id", "doctorUserId must be a UUID.")
		return
	}

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	views, err := h.add.Execute(c.Request.Context(), ucAvailability.AddAvailabilityInput{
		DoctorUserID: doctorUserID,
		Date:         req.Date,
		Weekdays:     req.Weekdays,
		Session:      req.Session,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		MaxTokens:    req.MaxTokens,
	}, middleware.CurrentActor(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, views)
}

// DELETE /doctors/:doctorUserId/availability/:slotId
// slotId is either a real slot UUID or a "recurring-" tagged template id.
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	ref := scheduling.ParseSlotRef(c.Param("slotId"))
	if _, err := uuid.Parse(ref.ID()); err != nil {
		httperr.BadRequest(c, "invalid_slot_id", "slotId must be a UUID or a recurring reference.")
		return
	}

	result, err := h.delete.Execute(c.Request.Context(), ref, middleware.CurrentActor(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, result)
}
