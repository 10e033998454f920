package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type JobController struct {
	jobService services.JobServiceInterface
}

func NewJobController(jobService services.JobServiceInterface) *JobController {
	return &JobController{
		jobService: jobService,
	}
}

// SubmitItineraryJobHandler godoc
// @Summary Submit an asynchronous itinerary generation job
// @Description Validates the request up front, then generates in the background; poll the job for progress
// @Tags Jobs
// @Accept json
// @Produce json
// @Param request body request_models.ItineraryRequest true "Trip parameters"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /jobs/itinerary [post]
func (j *JobController) SubmitItineraryJobHandler(c *gin.Context) {
	var req request_models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	// reject bad requests synchronously instead of burying the error in a job
	if err := req.Validate(); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	job, err := j.jobService.Submit(&req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, job, "Job accepted")
}

// GetJobHandler godoc
// @Summary Get job status and result
// @Tags Jobs
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /jobs/{jobId} [get]
func (j *JobController) GetJobHandler(c *gin.Context) {
	jobId := c.Param("jobId")
	if jobId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Job ID is required")
		return
	}

	job, err := j.jobService.Get(jobId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, job, "Job fetched successfully")
}
