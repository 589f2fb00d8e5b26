package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hireboard/hireboard/internal/dto"
	"github.com/hireboard/hireboard/internal/respond"
	"github.com/hireboard/hireboard/internal/services"
)

const (
	employerDashboard = "/employer/dashboard"
	companyEditPath   = "/employer/company/edit"
	vacancyCreatePath = "/employer/vacancy/create"
)

// EmployerHandler serves the employer workflow.
type EmployerHandler struct {
	employerService *services.EmployerService
}

func NewEmployerHandler(employerService *services.EmployerService) *EmployerHandler {
	return &EmployerHandler{employerService: employerService}
}

func (h *EmployerHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.employerService.Dashboard(actorOf(c))
	if err != nil {
		respond.Error(c, err, "/")
		return
	}
	respond.JSON(c, http.StatusOK, dto.ToEmployerDashboardDTO(dashboard))
}

// CompanyForm returns the current company profile, or null before the first edit.
func (h *EmployerHandler) CompanyForm(c *gin.Context) {
	company, err := h.employerService.GetCompany(actorOf(c))
	if err != nil {
		respond.Error(c, err, employerDashboard)
		return
	}
	respond.JSON(c, http.StatusOK, dto.ToCompanyDTOPtr(company))
}

func (h *EmployerHandler) EditCompany(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, services.ValidationError(err, services.ErrCompanyNameRequired), companyEditPath)
		return
	}

	company, err := h.employerService.EditCompany(actorOf(c), req.input())
	if err != nil {
		respond.Error(c, err, companyEditPath)
		return
	}

	respond.Done(c, http.StatusOK, dto.ToCompanyDTO(*company), employerDashboard,
		"Company profile updated and sent for moderation")
}

// VacancyForm is only reachable while the company is approved.
func (h *EmployerHandler) VacancyForm(c *gin.Context) {
	company, err := h.employerService.GetCompany(actorOf(c))
	switch {
	case err != nil:
		respond.Error(c, err, employerDashboard)
		return
	case company == nil:
		respond.Error(c, services.ErrCompanyRequired, companyEditPath)
		return
	case !company.IsApproved:
		respond.Error(c, services.ErrCompanyNotApproved, employerDashboard)
		return
	}
	respond.JSON(c, http.StatusOK, dto.ToCompanyDTO(*company))
}

func (h *EmployerHandler) CreateVacancy(c *gin.Context) {
	var req vacancyRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, services.ValidationError(err, services.ErrVacancyFieldsRequired), vacancyCreatePath)
		return
	}

	vacancy, err := h.employerService.CreateVacancy(actorOf(c), req.input())
	if err != nil {
		respond.Error(c, err, vacancyFailurePath(err))
		return
	}

	respond.Done(c, http.StatusCreated, dto.ToVacancyDTO(*vacancy), employerDashboard,
		"Vacancy created and sent for moderation")
}

func (h *EmployerHandler) EditVacancy(c *gin.Context) {
	id, ok := idParam(c, employerDashboard)
	if !ok {
		return
	}

	var req vacancyRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, services.ValidationError(err, services.ErrVacancyFieldsRequired), employerDashboard)
		return
	}

	vacancy, err := h.employerService.EditVacancy(actorOf(c), id, req.input())
	if err != nil {
		respond.Error(c, err, employerDashboard)
		return
	}

	respond.Done(c, http.StatusOK, dto.ToVacancyDTO(*vacancy), employerDashboard,
		"Vacancy updated and sent for moderation")
}

func (h *EmployerHandler) ViewPortfolio(c *gin.Context) {
	id, ok := idParam(c, employerDashboard)
	if !ok {
		return
	}

	portfolio, err := h.employerService.ViewPortfolio(actorOf(c), id)
	if err != nil {
		respond.Error(c, err, employerDashboard)
		return
	}
	respond.JSON(c, http.StatusOK, dto.ToPortfolioDTO(*portfolio))
}

func (h *EmployerHandler) ViewApplication(c *gin.Context) {
	id, ok := idParam(c, employerDashboard)
	if !ok {
		return
	}

	application, err := h.employerService.ViewApplication(actorOf(c), id)
	if err != nil {
		respond.Error(c, err, employerDashboard)
		return
	}
	respond.JSON(c, http.StatusOK, dto.ToApplicationDTO(*application))
}

func (h *EmployerHandler) UpdateApplicationStatus(c *gin.Context) {
	id, ok := idParam(c, employerDashboard)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, services.ValidationError(err, services.ErrInvalidStatus), employerDashboard)
		return
	}

	application, err := h.employerService.UpdateApplicationStatus(actorOf(c), id, req.Status, req.RejectionReason)
	if err != nil {
		respond.Error(c, err, "/employer/application/"+strconv.FormatUint(id, 10))
		return
	}

	respond.Done(c, http.StatusOK, dto.ToApplicationDTO(*application), employerDashboard,
		"Application status updated")
}

func vacancyFailurePath(err error) string {
	switch {
	case errors.Is(err, services.ErrCompanyRequired):
		return companyEditPath
	case errors.Is(err, services.ErrCompanyNotApproved):
		return employerDashboard
	default:
		return vacancyCreatePath
	}
}
