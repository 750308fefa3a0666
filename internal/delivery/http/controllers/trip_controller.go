package controllers

import (
	"log/slog"
	"net/http"

	"holidayplanner/internal/delivery/http/helpers"
	"holidayplanner/internal/domain"
)

// TripSuccessResponse is the success response envelope for a single trip.
type TripSuccessResponse struct {
	Data  *domain.Trip      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TripListSuccessResponse is the success response envelope for GET /trips.
type TripListSuccessResponse struct {
	Data  []*domain.Trip    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type TripController struct {
	Logger  *slog.Logger
	Service domain.TripService
}

func NewTripController(logger *slog.Logger, svc domain.TripService) *TripController {
	return &TripController{Logger: logger, Service: svc}
}

// ListTrips godoc
// @Summary List all trips
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.TripListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /trips [get]
func (c *TripController) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := c.Service.ListAll(r.Context())
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trips)
}

// GetTripByID godoc
// @Summary Get a trip by ID
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} controllers.TripSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /trips/{id} [get]
func (c *TripController) GetTripByID(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathInt64(r, "id")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	trip, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trip)
}
