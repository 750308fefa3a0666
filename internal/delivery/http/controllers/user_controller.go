package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"holidayplanner/internal/delivery/http/helpers"
	"holidayplanner/internal/domain"
)

// SignUpRequest is the request body for POST /users/signup.
type SignUpRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsOrganiser bool   `json:"isOrganiser"`
}

// Validate implements Validator.
func (s SignUpRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Email) == "" {
		errs = append(errs, "email is required")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginRequest is the request body for POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// SignUpSuccessResponse is the success response envelope for POST /users/signup (201).
type SignUpSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// LoginSuccessResponse is the success response envelope for POST /users/login (200).
type LoginSuccessResponse struct {
	Data  *domain.AuthenticationResult `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

// UserController handles the authentication endpoints.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
	Emails  domain.EmailService
}

// NewUserController creates a UserController. emails may be nil to skip welcome messages.
func NewUserController(logger *slog.Logger, svc domain.UserService, emails domain.EmailService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
		Emails:  emails,
	}
}

// SignUp godoc
// @Summary Sign up a new user
// @Description Create a user account. The password is stored hashed. A welcome email is sent on a best-effort basis.
// @Tags users
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} controllers.SignUpSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Router /users/signup [post]
func (c *UserController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Signup(r.Context(), domain.SignupInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		IsOrganiser: req.IsOrganiser,
	})
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	if c.Emails != nil {
		err := c.Emails.SendWelcomeMessage(r.Context(), &domain.WelcomeMessageEmailData{
			Email:       user.Email,
			FirstName:   user.FirstName,
			IsOrganiser: user.IsOrganiser,
		})
		if err != nil {
			c.Logger.WarnContext(r.Context(), "welcome email failed", "user_id", user.ID, "err", err)
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Returns a JWT plus the user's id, names and role (ORGANISER or CLIENT).
// @Tags users
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} controllers.LoginSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Router /users/login [post]
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
