package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// --------- Requests ---------

// One update payload serves both roles; role decides which fields are
// applied.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`

	// Doctor fields
	Specialization       *string         `json:"specialization"`
	YearsExperience      *int            `json:"years_of_experience"`
	Services             []string        `json:"services"`
	AvailabilitySchedule json.RawMessage `json:"availability_schedule"`

	// Patient fields
	Weight         *float64 `json:"weight"`
	Height         *float64 `json:"height"`
	MedicalHistory *string  `json:"medical_history"`
}

// --------- Handlers ---------

func (h *ProfileHandler) GetMe(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	profile, err := h.loadProfile(actor.UserID, actor.Role)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) ListDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.db.Preload("User").Find(&doctors).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Could not load doctors.")
		return
	}

	out := make([]gin.H, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, gin.H{
			"user_id":        d.UserID,
			"specialization": d.Specialization,
			"yeo":            d.YearsExperience,
			"services":       d.Services,
			"user": gin.H{
				"name":  d.User.Name,
				"email": d.User.Email,
			},
		})
	}

	httpresp.List(c, out)
}

func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		userFields := map[string]any{}
		if req.Name != nil {
			userFields["name"] = *req.Name
		}
		if req.Phone != nil {
			userFields["phone"] = *req.Phone
		}
		if len(userFields) > 0 {
			if err := tx.Model(&models.User{}).
				Where("user_id = ?", actor.UserID).
				Updates(userFields).Error; err != nil {
				return err
			}
		}

		switch actor.Role {
		case models.RoleDoctor:
			fields := map[string]any{}
			if req.Specialization != nil {
				fields["specialization"] = *req.Specialization
			}
			if req.YearsExperience != nil {
				fields["yeo"] = *req.YearsExperience
			}
			if req.Services != nil {
				fields["services"] = models.StringList(req.Services)
			}
			if len(req.AvailabilitySchedule) > 0 {
				fields["availability_schedule"] = string(req.AvailabilitySchedule)
			}
			if len(fields) > 0 {
				return tx.Model(&models.Doctor{}).
					Where("user_id = ?", actor.UserID).
					Updates(fields).Error
			}
		case models.RolePatient:
			fields := map[string]any{}
			if req.Weight != nil {
				fields["weight"] = *req.Weight
			}
			if req.Height != nil {
				fields["height"] = *req.Height
			}
			if req.MedicalHistory != nil {
				fields["medical_history"] = *req.MedicalHistory
			}
			if len(fields) > 0 {
				return tx.Model(&models.Patient{}).
					Where("user_id = ?", actor.UserID).
					Updates(fields).Error
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update profile.")
		return
	}

	profile, err := h.loadProfile(actor.UserID, actor.Role)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) DeleteMe(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var user models.User
	if err := h.db.Where("user_id = ?", actor.UserID).First(&user).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "User profile not found.")
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_profile", "Could not delete profile.")
		return
	}

	httpresp.Message(c, "Profile deleted successfully.")
}

// --------- Helpers ---------

func (h *ProfileHandler) loadProfile(userID, role string) (any, error) {
	switch role {
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := h.db.Preload("User").Where("user_id = ?", userID).First(&doctor).Error; err != nil {
			return nil, httperr.ErrNotFound("profile_not_found", "Doctor profile not found.")
		}
		return doctor, nil

	case models.RolePatient:
		var patient models.Patient
		if err := h.db.Preload("User").Where("user_id = ?", userID).First(&patient).Error; err != nil {
			return nil, httperr.ErrNotFound("profile_not_found", "Patient profile not found.")
		}
		return patient, nil
	}

	var user models.User
	if err := h.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, httperr.ErrNotFound("profile_not_found", "User not found.")
	}
	return user, nil
}
