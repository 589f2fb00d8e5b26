package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireboard/hireboard/internal/dto"
	"github.com/hireboard/hireboard/internal/respond"
	"github.com/hireboard/hireboard/internal/services"
)

const (
	seekerDashboard   = "/seeker/dashboard"
	portfolioEditPath = "/seeker/portfolio/edit"
	vacanciesPath     = "/vacancies"
)

// SeekerHandler serves the seeker workflow and the public vacancy pages.
type SeekerHandler struct {
	seekerService *services.SeekerService
}

func NewSeekerHandler(seekerService *services.SeekerService) *SeekerHandler {
	return &SeekerHandler{seekerService: seekerService}
}

func (h *SeekerHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.seekerService.Dashboard(actorOf(c))
	if err != nil {
		respond.Error(c, err, "/")
		return
	}
	respond.JSON(c, http.StatusOK, dto.ToSeekerDashboardDTO(dashboard))
}

// PortfolioForm returns the current portfolio, or null before the first edit.
func (h *SeekerHandler) PortfolioForm(c *gin.Context) {
	portfolio, err := h.seekerService.GetPortfolio(actorOf(c))
	if err != nil {
		respond.Error(c, err, seekerDashboard)
		return
	}
	respond.JSON(c, http.StatusOK, dto.ToPortfolioDTOPtr(portfolio))
}

func (h *SeekerHandler) EditPortfolio(c *gin.Context) {
	var req portfolioRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, services.ValidationError(err, services.ErrPortfolioFieldsRequired), portfolioEditPath)
		return
	}

	portfolio, err := h.seekerService.EditPortfolio(actorOf(c), req.input())
	if err != nil {
		respond.Error(c, err, portfolioEditPath)
		return
	}

	respond.Done(c, http.StatusOK, dto.ToPortfolioDTO(*portfolio), seekerDashboard,
		"Portfolio updated and sent for moderation")
}

func (h *SeekerHandler) Apply(c *gin.Context) {
	id, ok := idParam(c, vacanciesPath)
	if !ok {
		return
	}

	var req applyRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, errInvalidInput, vacanciesPath)
		return
	}

	application, err := h.seekerService.Apply(actorOf(c), id, req.CoverLetter)
	if err != nil {
		location := vacanciesPath
		if errors.Is(err, services.ErrPortfolioRequired) {
			location = portfolioEditPath
		}
		respond.Error(c, err, location)
		return
	}

	respond.Done(c, http.StatusCreated, dto.ToApplicationDTO(*application), vacanciesPath,
		"Application sent successfully!")
}

// Home lists the newest public vacancies.
func (h *SeekerHandler) Home(c *gin.Context) {
	vacancies, err := h.seekerService.Home()
	if err != nil {
		respond.Error(c, err, "/")
		return
	}
	respond.JSON(c, http.StatusOK, dto.ToVacancyDTOs(vacancies))
}

// Vacancies is the public search page.
func (h *SeekerHandler) Vacancies(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respond.Error(c, errInvalidInput, "/")
		return
	}

	vacancies, err := h.seekerService.SearchVacancies(req.input())
	if err != nil {
		respond.Error(c, err, vacanciesPath)
		return
	}
	respond.JSON(c, http.StatusOK, dto.ToVacancyDTOs(vacancies))
}

func (h *SeekerHandler) Vacancy(c *gin.Context) {
	id, ok := idParam(c, vacanciesPath)
	if !ok {
		return
	}

	vacancy, err := h.seekerService.GetVacancy(id)
	if err != nil {
		respond.Error(c, err, vacanciesPath)
		return
	}
	respond.JSON(c, http.StatusOK, dto.ToVacancyDTO(*vacancy))
}
