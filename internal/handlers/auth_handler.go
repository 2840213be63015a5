package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type signUpBase struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Age         int    `json:"age" binding:"required,min=0"`
	Gender      string `json:"gender" binding:"required,oneof=male female other"`
}

type PatientSignUpRequest struct {
	signUpBase
	Weight float64 `json:"weight" binding:"required,gt=0"`
}

type DoctorSignUpRequest struct {
	signUpBase
	YearsExperience      int             `json:"yeo" binding:"min=0"`
	Specialization       string          `json:"specialization" binding:"required"`
	Services             []string        `json:"services"`
	AvailabilitySchedule json.RawMessage `json:"availability_schedule"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) RegisterPatient(c *gin.Context) {
	var req PatientSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		user, err := h.createUser(tx, req.signUpBase, models.RolePatient)
		if err != nil {
			return err
		}

		patient := models.Patient{
			UserID: user.UserID,
			Weight: req.Weight,
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Patient successfully registered."})
}

func (h *AuthHandler) RegisterDoctor(c *gin.Context) {
	var req DoctorSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		user, err := h.createUser(tx, req.signUpBase, models.RoleDoctor)
		if err != nil {
			return err
		}

		schedule := req.AvailabilitySchedule
		if len(schedule) == 0 {
			schedule = json.RawMessage("{}")
		}

		doctor := models.Doctor{
			UserID:               user.UserID,
			YearsExperience:      req.YearsExperience,
			Specialization:       req.Specialization,
			Services:             req.Services,
			AvailabilitySchedule: schedule,
		}
		return tx.Create(&doctor).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Doctor successfully registered."})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Please check your login credentials")
			return
		}
		httperr.Internal(c, "internal_error", "An unexpected error occurred.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Please check your login credentials")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

// --------- Helpers ---------

func (h *AuthHandler) createUser(tx *gorm.DB, req signUpBase, role string) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		return nil, httperr.ErrBadRequest(
			"invalid_email_domain",
			"The email domain does not appear to be valid.",
		)
	}

	var count int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, httperr.ErrConflict("email_exists", "Email already exists.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.PhoneNumber,
		Age:          req.Age,
		Gender:       req.Gender,
		Role:         role,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.UserID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
