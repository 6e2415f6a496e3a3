package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) limit(c *gin.Context) int {
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		return n
	}
	return h.recentLimit
}

func (h *Handler) Overview(c *gin.Context) {
	ov, err := h.dashboard.GetOverview(c.Request.Context(), h.now(), h.limit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

func (h *Handler) Stats(c *gin.Context) {
	st, err := h.dashboard.GetDashboardStats(c.Request.Context(), h.now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) Revenue(c *gin.Context) {
	rev, err := h.dashboard.GetMonthlyRevenue(c.Request.Context(), h.now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rev)
}

func (h *Handler) Popular(c *gin.Context) {
	items, err := h.dashboard.GetPopularItems(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Recent(c *gin.Context) {
	rows, err := h.dashboard.GetRecentOrders(c.Request.Context(), h.limit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
