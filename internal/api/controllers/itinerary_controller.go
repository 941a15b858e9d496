package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"tripsmith/internal/models/request_models"
	"tripsmith/internal/services"
	"tripsmith/pkg/utils"
)

type ItineraryController struct {
	tripService services.TripServiceInterface
}

func NewItineraryController(tripService services.TripServiceInterface) *ItineraryController {
	return &ItineraryController{
		tripService: tripService,
	}
}

// PlanItinerary godoc
// @Summary Plan an itinerary
// @Description Run the planning pipeline over a discovery record: infer city costs, assemble the geo-cost graph, and schedule day-by-day visits. Returns 422 with a requires_input payload when the record is missing cities or per-city discovery data.
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.PlanTripRequest true "Cities, discovery record, trip dates, assumptions"
// @Success 200 {object} trip_models.PlanResult
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/plan [post]
func (i *ItineraryController) PlanItinerary(c *gin.Context) {

	var req request_models.PlanTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := i.tripService.PlanTrip(c.Request.Context(), req.ToSession())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Itinerary planned successfully")
}

// GetItineraryRun godoc
// @Summary Get a stored run by ID
// @Description Fetch the full plan result persisted for a previous run
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param runId path string true "Run ID"
// @Success 200 {object} trip_models.PlanResult
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{runId} [get]
func (i *ItineraryController) GetItineraryRun(c *gin.Context) {
	runId := c.Param("runId")
	if runId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Run ID is required")
		return
	}

	result, err := i.tripService.GetRunById(c.Request.Context(), runId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Run fetched successfully")
}

// ListRunsBySession godoc
// @Summary List runs for a session
// @Description Fetch a paginated list of persisted runs for a planning session
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {array} response_models.RunSummaryResponse
// @Failure 400 {object} utils.APIResponse
// @Router /sessions/{sessionId}/runs [get]
func (i *ItineraryController) ListRunsBySession(c *gin.Context) {
	sessionId := c.Param("sessionId")
	if sessionId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	runs, err := i.tripService.ListRunsBySession(c.Request.Context(), sessionId, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, runs, "Runs fetched successfully")
}
