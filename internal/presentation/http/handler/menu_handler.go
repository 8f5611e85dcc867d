package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
)

// MenuHandler handles menu item HTTP requests
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// List handles listing menu items
func (h *MenuHandler) List(c *gin.Context) {
	var req request.MenuItemFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	items, err := h.menuService.ListMenuItems(c.Request.Context(), &repository.MenuItemFilterParams{
		ActiveOnly: req.Active,
		Category:   req.Category,
		Search:     req.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu items retrieved successfully", items)
}

// Create handles creating a menu item
func (h *MenuHandler) Create(c *gin.Context) {
	var req request.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuService.CreateMenuItem(c.Request.Context(), &service.CreateMenuItemInput{
		Name:     req.Name,
		Price:    *req.Price,
		Category: req.Category,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Menu item created successfully", item)
}

// Get handles getting a single menu item
func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "menu item")
	if !ok {
		return
	}

	item, err := h.menuService.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item retrieved successfully", item)
}

// Update handles updating a menu item
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "menu item")
	if !ok {
		return
	}

	var req request.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuService.UpdateMenuItem(c.Request.Context(), id, &service.UpdateMenuItemInput{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		IsActive: req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item updated successfully", item)
}

// Delete handles deleting a menu item
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "menu item")
	if !ok {
		return
	}

	if err := h.menuService.DeleteMenuItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item deleted successfully", nil)
}
