package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireboard/hireboard/internal/dto"
	"github.com/hireboard/hireboard/internal/respond"
	"github.com/hireboard/hireboard/internal/services"
	"github.com/hireboard/hireboard/internal/utils"
)

const adminHome = "/admin"

var (
	listPaths = map[services.EntityKind]string{
		services.KindUser:      "/admin/users",
		services.KindCompany:   "/admin/companies",
		services.KindPortfolio: "/admin/portfolios",
		services.KindVacancy:   "/admin/vacancies",
	}
	kindLabels = map[services.EntityKind]string{
		services.KindUser:      "User",
		services.KindCompany:   "Company",
		services.KindPortfolio: "Portfolio",
		services.KindVacancy:   "Vacancy",
	}
)

// AdminHandler serves the moderation panel.
type AdminHandler struct {
	moderationService *services.ModerationService
}

func NewAdminHandler(moderationService *services.ModerationService) *AdminHandler {
	return &AdminHandler{moderationService: moderationService}
}

func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.moderationService.Overview(actorOf(c))
	if err != nil {
		respond.Error(c, err, "/")
		return
	}
	respond.JSON(c, http.StatusOK, dto.ToOverviewDTO(overview))
}

// List returns the handler listing one entity kind.
func (h *AdminHandler) List(kind services.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := utils.GetSortParams(c)
		list, err := h.moderationService.ListEntities(actorOf(c), kind, params.Field, params.Order)
		if err != nil {
			respond.Error(c, err, adminHome)
			return
		}
		if list.Healed > 0 {
			respond.Flash(c, fmt.Sprintf("Repaired %d portfolios with missing dates", list.Healed))
		}
		respond.JSON(c, http.StatusOK, dto.ToEntityListDTO(list))
	}
}

func (h *AdminHandler) Approve(kind services.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, listPaths[kind])
		if !ok {
			return
		}
		if err := h.moderationService.Approve(actorOf(c), kind, id); err != nil {
			respond.Error(c, err, listPaths[kind])
			return
		}
		h.done(c, kind, id, "approved")
	}
}

func (h *AdminHandler) Reject(kind services.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, listPaths[kind])
		if !ok {
			return
		}
		if err := h.moderationService.Reject(actorOf(c), kind, id); err != nil {
			respond.Error(c, err, listPaths[kind])
			return
		}
		h.done(c, kind, id, "rejected")
	}
}

func (h *AdminHandler) Delete(kind services.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, listPaths[kind])
		if !ok {
			return
		}
		if err := h.moderationService.Delete(actorOf(c), kind, id); err != nil {
			respond.Error(c, err, listPaths[kind])
			return
		}
		h.done(c, kind, id, "deleted")
	}
}

// DeactivateUser is the soft delete behind POST /admin/user/:id/delete.
func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	usersPath := listPaths[services.KindUser]
	id, ok := idParam(c, usersPath)
	if !ok {
		return
	}

	user, err := h.moderationService.DeactivateUser(actorOf(c), id)
	if err != nil {
		respond.Error(c, err, usersPath)
		return
	}
	respond.Done(c, http.StatusOK, dto.ToUserDTO(*user), usersPath,
		fmt.Sprintf("User %s deactivated", user.Name))
}

func (h *AdminHandler) ActivateUser(c *gin.Context) {
	usersPath := listPaths[services.KindUser]
	id, ok := idParam(c, usersPath)
	if !ok {
		return
	}

	user, err := h.moderationService.ActivateUser(actorOf(c), id)
	if err != nil {
		respond.Error(c, err, usersPath)
		return
	}
	respond.Done(c, http.StatusOK, dto.ToUserDTO(*user), usersPath,
		fmt.Sprintf("User %s activated", user.Name))
}

func (h *AdminHandler) ToggleVacancy(c *gin.Context) {
	vacanciesList := listPaths[services.KindVacancy]
	id, ok := idParam(c, vacanciesList)
	if !ok {
		return
	}

	vacancy, err := h.moderationService.ToggleVacancyActive(actorOf(c), id)
	if err != nil {
		respond.Error(c, err, vacanciesList)
		return
	}
	respond.Done(c, http.StatusOK, dto.ToVacancyDTO(*vacancy), vacanciesList, "Vacancy status changed")
}

func (h *AdminHandler) ViewPortfolio(c *gin.Context) {
	id, ok := idParam(c, listPaths[services.KindPortfolio])
	if !ok {
		return
	}

	portfolio, err := h.moderationService.ViewPortfolio(actorOf(c), id)
	if err != nil {
		respond.Error(c, err, listPaths[services.KindPortfolio])
		return
	}
	respond.JSON(c, http.StatusOK, dto.ToPortfolioDTO(*portfolio))
}

func (h *AdminHandler) ViewCompany(c *gin.Context) {
	id, ok := idParam(c, listPaths[services.KindCompany])
	if !ok {
		return
	}

	detail, err := h.moderationService.ViewCompany(actorOf(c), id)
	if err != nil {
		respond.Error(c, err, listPaths[services.KindCompany])
		return
	}
	respond.JSON(c, http.StatusOK, dto.ToCompanyDetailDTO(detail))
}

func (h *AdminHandler) done(c *gin.Context, kind services.EntityKind, id uint64, verb string) {
	respond.Done(c, http.StatusOK, gin.H{
		"kind":   kind,
		"id":     id,
		"result": verb,
	}, listPaths[kind], fmt.Sprintf("%s %s", kindLabels[kind], verb))
}
