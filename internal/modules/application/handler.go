package application

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"applyhub/internal/modules/resume"
	"applyhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/submit", h.Submit)
	rg.POST("/verify-payment", h.VerifyPayment)
	rg.GET("/applications", h.List)
}

// Submit godoc
// @Summary      Submit a job application
// @Description  Accepts applicant details plus a resume file, creates a payment order and stores the application as PENDING
// @Tags         Applications
// @Accept       multipart/form-data
// @Produce      json
// @Param        full_name formData string false "Applicant name"
// @Param        email formData string false "Contact email"
// @Param        phone formData string false "Phone number"
// @Param        gender formData string false "Gender"
// @Param        dob formData string false "Date of birth"
// @Param        bio formData string false "Short bio"
// @Param        resume formData file true "Resume (.pdf, .doc or .docx, max 2 MB)"
// @Success      200 {object} SubmitResponse
// @Failure      400 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Router       /api/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	var form SubmitForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid form data")
		return
	}

	file, err := c.FormFile("resume")
	if err != nil {
		file = nil
	}

	resp, err := h.service.Submit(c.Request.Context(), form, file)
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}
	response.OK(c, resp)
}

// VerifyPayment godoc
// @Summary      Record a checkout outcome
// @Description  Stores the reported payment id and status against the order, regardless of outcome
// @Tags         Applications
// @Accept       json
// @Produce      json
// @Param        body body VerifyPaymentRequest true "Checkout outcome"
// @Success      200 {object} map[string]bool
// @Failure      400 {object} map[string]string
// @Router       /api/verify-payment [post]
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.VerifyPayment(c.Request.Context(), req); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to update payment status")
		return
	}
	response.OK(c, gin.H{"success": true})
}

// List godoc
// @Summary      List submitted applications
// @Description  Returns every application with its payment state, newest first
// @Tags         Applications
// @Produce      json
// @Success      200 {array} domain.Application
// @Router       /api/applications [get]
func (h *Handler) List(c *gin.Context) {
	apps, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load applications")
		return
	}
	response.OK(c, apps)
}

func (h *Handler) writeSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrResumeRequired),
		errors.Is(err, resume.ErrInvalidFileType),
		errors.Is(err, resume.ErrFileTooLarge):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrGateway):
		response.Error(c, http.StatusBadGateway, "payment gateway unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "internal server error")
	}
}
