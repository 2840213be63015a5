package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	reschedule   *ucAppointment.RescheduleAppointment
	cancel       *ucAppointment.CancelAppointment
	updateStatus *ucAppointment.UpdateStatus
	list         *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	reschedule *ucAppointment.RescheduleAppointment,
	cancel *ucAppointment.CancelAppointment,
	updateStatus *ucAppointment.UpdateStatus,
	list *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		reschedule:   reschedule,
		cancel:       cancel,
		updateStatus: updateStatus,
		list:         list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	// Either a real slot UUID or a "recurring-" tagged template id.
	SlotID    string `json:"slotId" binding:"required"`
	Complaint string `json:"complaint" binding:"required"`
	// Required only for recurring references.
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type RescheduleAppointmentRequest struct {
	NewSlotID string `json:"newSlotId" binding:"required"`
	Date      string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

// POST /appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Ref:       scheduling.ParseSlotRef(req.SlotID),
		Complaint: req.Complaint,
		Date:      req.Date,
	}, middleware.CurrentActor(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// GET /appointments/my-appointments/patient
func (h *AppointmentHandler) ListMyPatientAppointments(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	aps, err := h.list.ForPatient(c.Request.Context(), actor.UserID, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, aps)
}

// GET /appointments/my-appointments/doctor
func (h *AppointmentHandler) ListMyDoctorAppointments(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	aps, err := h.list.ForDoctor(c.Request.Context(), actor.UserID, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, aps)
}

// PATCH /appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	status, ok := scheduling.ParseStatus(req.Status)
	if !ok {
		httperr.BadRequest(c, "invalid_status", "status must be SCHEDULED, COMPLETED, CANCELED or RESCHEDULED.")
		return
	}

	result, err := h.updateStatus.Execute(c.Request.Context(), id, status, middleware.CurrentActor(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if result.Canceled != nil {
		httpresp.OK(c, result.Canceled)
		return
	}
	httpresp.OK(c, result.Appointment)
}

// PATCH /appointments/:id/reschedule
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		AppointmentID: id,
		NewRef:        scheduling.ParseSlotRef(req.NewSlotID),
		Date:          req.Date,
	}, middleware.CurrentActor(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// DELETE /appointments/:id
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	result, err := h.cancel.Execute(c.Request.Context(), id, middleware.CurrentActor(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, result)
}

func appointmentID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Appointment id must be a UUID.")
		return "", false
	}
	return id, true
}
