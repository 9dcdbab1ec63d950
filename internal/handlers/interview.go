package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-marketplace-api/internal/dto"
	apierrors "github.com/yukikurage/job-marketplace-api/internal/errors"
	"github.com/yukikurage/job-marketplace-api/internal/services"
)

// InterviewHandler serves interview scheduling.
type InterviewHandler struct {
	interviewService *services.InterviewService
}

func NewInterviewHandler(interviewService *services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
	}
}

type scheduleRequest struct {
	DateTime string `json:"date_time" binding:"required"`
	Platform string `json:"platform" binding:"required"`
	Link     string `json:"link" binding:"required"`
}

// bindSchedule decodes the scheduling form. date_time must be RFC 3339.
func bindSchedule(c *gin.Context) (services.ScheduleInput, bool) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return services.ScheduleInput{}, false
	}

	dateTime, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		apierrors.ValidationFailed(c, "date_time", "date_time must be an RFC 3339 timestamp")
		return services.ScheduleInput{}, false
	}

	return services.ScheduleInput{
		DateTime: dateTime,
		Platform: req.Platform,
		Link:     req.Link,
	}, true
}

// Schedule creates the interview for an approved application.
func (h *InterviewHandler) Schedule(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	input, ok := bindSchedule(c)
	if !ok {
		return
	}

	interview, err := h.interviewService.Schedule(principal, appID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInterviewDTO(*interview))
}

// Reschedule moves an existing interview in place.
func (h *InterviewHandler) Reschedule(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	interviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	input, ok := bindSchedule(c)
	if !ok {
		return
	}

	interview, err := h.interviewService.Reschedule(principal, interviewID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInterviewDTO(*interview))
}

// GetInterview returns an interview to its client or applicant.
func (h *InterviewHandler) GetInterview(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	interviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	interview, err := h.interviewService.GetInterview(principal, interviewID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInterviewDTO(*interview))
}
