package http

import (
	"net/http"

	"restaurant-service/internal/domain"
	"restaurant-service/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListMenu(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		items []domain.MenuItem
		err   error
	)
	if category := c.Query("category"); category != "" {
		items, err = h.menu.ListMenuItemsByCategory(ctx, domain.Category(category))
	} else {
		items, err = h.menu.ListMenuItems(ctx)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.menu.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	c.JSON(http.StatusOK, cats)
}

func (h *Handler) GetMenuItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.menu.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateMenuItem(c *gin.Context) {
	var in services.MenuItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.menu.CreateMenuItem(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in services.MenuItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.menu.UpdateMenuItem(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.menu.DeleteMenuItem(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	cat, err := h.menu.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": cat})
}

// UploadImage takes a multipart form with the file in the "image" field.
func (h *Handler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "image file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, "cannot read image")
		return
	}
	defer f.Close()

	url, err := h.menu.UploadImage(c.Request.Context(), fh.Filename, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, UploadImageResponse{URL: url})
}
