package endpoint

import (
	"errors"
	"net/http"

	"github.com/eppranavaudupa/smartBliendStick/model"
	"github.com/eppranavaudupa/smartBliendStick/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Sentinel errors for the auth gate's failure taxonomy.
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailExists        = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type SignupRequest struct {
	Name     string `json:"name" example:"John Doe"`
	Email    string `json:"email" example:"john@example.com"`
	Password string `json:"password" example:"password123"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"john@example.com"`
	Password string `json:"password" example:"password123"`
}

// Signup godoc
// @Summary      Register a new user account
// @Description  Create a user with a salted one-way password hash. No token is issued on signup.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup details"
// @Success      200 {object} map[string]string "status registered"
// @Failure      400 {object} map[string]string "Missing fields or email already registered"
// @Router       /signup [post]
func Signup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.RespondError(c, http.StatusBadRequest, ErrMissingFields.Error())
			return
		}
		if req.Name == "" || req.Email == "" || req.Password == "" {
			util.RespondError(c, http.StatusBadRequest, ErrMissingFields.Error())
			return
		}

		if !ensureEmailAvailable(c, db, req.Email) {
			return
		}

		salt, err := util.GenerateSalt()
		if err != nil {
			util.RespondError(c, http.StatusInternalServerError, "failed to generate password salt")
			return
		}
		hashed, err := util.HashPasswordArgon2(req.Password, salt)
		if err != nil {
			util.RespondError(c, http.StatusInternalServerError, "failed to hash password")
			return
		}

		newUser := model.User{
			Name:         req.Name,
			Email:        req.Email,
			Password:     hashed,
			PasswordSalt: salt,
		}
		if err := db.Create(&newUser).Error; err != nil {
			util.RespondError(c, http.StatusInternalServerError, "failed to create user")
			return
		}

		util.LogAuditEvent(util.AuditEvent{
			EventType: util.EventSignupSuccess,
			Email:     newUser.Email,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   "User signed up successfully",
		})

		util.RespondStatus(c, "registered")
	}
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with email and password; returns a bearer token valid for one hour
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} map[string]string "token"
// @Failure      400 {object} map[string]string "Unknown user or invalid credentials"
// @Router       /login [post]
func Login(db *gorm.DB, issuer *util.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.RespondError(c, http.StatusBadRequest, ErrMissingFields.Error())
			return
		}
		if req.Email == "" || req.Password == "" {
			util.RespondError(c, http.StatusBadRequest, ErrMissingFields.Error())
			return
		}

		var user model.User
		err := db.Where("email = ?", req.Email).First(&user).Error
		if err == gorm.ErrRecordNotFound {
			util.LogLoginFailure(req.Email, c.ClientIP(), c.Request.UserAgent(), "user not found")
			util.RespondError(c, http.StatusBadRequest, ErrUserNotFound.Error())
			return
		}
		if err != nil {
			util.RespondError(c, http.StatusInternalServerError, "database error")
			return
		}

		match, err := util.VerifyPassword(req.Password, user.Password, user.PasswordSalt)
		if err != nil {
			util.RespondError(c, http.StatusInternalServerError, "password verification failed")
			return
		}
		if !match {
			util.LogLoginFailure(req.Email, c.ClientIP(), c.Request.UserAgent(), "invalid password")
			util.RespondError(c, http.StatusBadRequest, ErrInvalidCredentials.Error())
			return
		}

		token, err := issuer.Issue(user.Email)
		if err != nil {
			util.RespondError(c, http.StatusInternalServerError, "could not generate token")
			return
		}

		util.LogLoginSuccess(user.Email, c.ClientIP(), c.Request.UserAgent())
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// ensureEmailAvailable enforces email uniqueness at signup.
func ensureEmailAvailable(c *gin.Context, db *gorm.DB, email string) bool {
	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err != gorm.ErrRecordNotFound {
		if err == nil {
			util.RespondError(c, http.StatusBadRequest, ErrEmailExists.Error())
			return false
		}
		util.RespondError(c, http.StatusInternalServerError, "database error")
		return false
	}
	return true
}
