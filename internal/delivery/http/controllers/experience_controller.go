package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"holidayplanner/internal/delivery/http/helpers"
	"holidayplanner/internal/delivery/http/middleware"
	"holidayplanner/internal/domain"
)

// CreateExperienceRequest is the request body for POST /events. Date is an RFC 3339 timestamp.
type CreateExperienceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

// ExperienceSuccessResponse is the success response envelope for a single experience.
type ExperienceSuccessResponse struct {
	Data  *domain.Experience `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ExperienceListSuccessResponse is the success response envelope for experience listings.
type ExperienceListSuccessResponse struct {
	Data  []*domain.Experience `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ExperienceController serves the /events routes.
type ExperienceController struct {
	Logger    *slog.Logger
	Service   domain.ExperienceService
	Users     domain.UserService
	Emails    domain.EmailService
	Publisher domain.ExperiencePublisher
}

func NewExperienceController(logger *slog.Logger, svc domain.ExperienceService, users domain.UserService, emails domain.EmailService, publisher domain.ExperiencePublisher) *ExperienceController {
	return &ExperienceController{
		Logger:    logger,
		Service:   svc,
		Users:     users,
		Emails:    emails,
		Publisher: publisher,
	}
}

// ListExperiences godoc
// @Summary List all experiences
// @Description Returns every experience with its organiser and attendees, ordered by date.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ExperienceListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /events [get]
func (c *ExperienceController) ListExperiences(w http.ResponseWriter, r *http.Request) {
	experiences, err := c.Service.ListAll(r.Context())
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, experiences)
}

// GetExperienceByID godoc
// @Summary Get an experience by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Experience ID"
// @Success 200 {object} controllers.ExperienceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{id} [get]
func (c *ExperienceController) GetExperienceByID(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathInt64(r, "id")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	experience, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, experience)
}

// ListOrganiserExperiences godoc
// @Summary List the experiences of an organiser
// @Description Only the organiser themself may list their experiences.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param organiserId path int true "Organiser user ID"
// @Success 200 {object} controllers.ExperienceListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /events/organiser/{organiserId} [get]
func (c *ExperienceController) ListOrganiserExperiences(w http.ResponseWriter, r *http.Request) {
	claim, ok := middleware.ClaimFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	organiserID, err := helpers.PathInt64(r, "organiserId")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	experiences, err := c.Service.ListForOrganiser(r.Context(), organiserID, claim)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, experiences)
}

// CreateExperience godoc
// @Summary Create an experience
// @Description The authenticated organiser becomes the owner. An organiser can hold at most one experience per UTC calendar day.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param experience body CreateExperienceRequest true "Experience data"
// @Success 201 {object} controllers.ExperienceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /events [post]
func (c *ExperienceController) CreateExperience(w http.ResponseWriter, r *http.Request) {
	claim, ok := middleware.ClaimFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateExperienceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	organiser, err := c.Users.GetByEmail(r.Context(), claim.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	experience, err := c.Service.Create(r.Context(), domain.ExperienceInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	}, organiser.ID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	c.notifyCreated(r.Context(), organiser, experience)
	helpers.WriteJSONSuccess(w, http.StatusCreated, experience)
}

// notifyCreated emails the organiser and publishes the event. Failures are logged only.
func (c *ExperienceController) notifyCreated(ctx context.Context, organiser *domain.User, e *domain.Experience) {
	if c.Emails != nil {
		err := c.Emails.SendExperienceCreated(ctx, &domain.ExperienceCreatedEmailData{
			Email:          organiser.Email,
			FirstName:      organiser.FirstName,
			ExperienceName: e.Name,
			Location:       e.Location,
			Date:           e.Date,
		})
		if err != nil {
			c.Logger.WarnContext(ctx, "experience created email failed", "experience_id", e.ID, "err", err)
		}
	}
	if c.Publisher != nil {
		err := c.Publisher.PublishExperienceCreated(ctx, domain.ExperienceCreatedEvent{
			ExperienceID: e.ID,
			OrganiserID:  e.OrganiserID(),
			Name:         e.Name,
			Date:         e.Date,
			Location:     e.Location,
			CreatedAt:    e.CreatedAt,
		})
		if err != nil {
			c.Logger.WarnContext(ctx, "experience created event not published", "experience_id", e.ID, "err", err)
		}
	}
}
