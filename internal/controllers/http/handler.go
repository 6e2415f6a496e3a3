package http

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"restaurant-service/internal/cart"
	"restaurant-service/internal/domain"
	"restaurant-service/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	orders      *services.OrderService
	menu        *services.MenuService
	dashboard   *services.DashboardService
	hub         http.Handler
	recentLimit int
	now         func() time.Time
}

func NewHandler(o *services.OrderService, m *services.MenuService, d *services.DashboardService, hub http.Handler) *Handler {
	return &Handler{
		orders:      o,
		menu:        m,
		dashboard:   d,
		hub:         hub,
		recentLimit: services.DefaultRecentLimit,
		now:         time.Now,
	}
}

func (h *Handler) SetRecentLimit(n int) {
	if n > 0 {
		h.recentLimit = n
	}
}

// RegisterRoutes mounts the storefront at the root and the back office under
// /admin behind the given middleware.
func (h *Handler) RegisterRoutes(r *gin.Engine, admin ...gin.HandlerFunc) {
	r.GET("/menu", h.ListMenu)
	r.GET("/menu/categories", h.ListCategories)
	r.GET("/menu/:id", h.GetMenuItem)
	r.POST("/orders", h.CreateOrder)

	a := r.Group("/admin", admin...)
	a.POST("/menu", h.CreateMenuItem)
	a.PUT("/menu/:id", h.UpdateMenuItem)
	a.DELETE("/menu/:id", h.DeleteMenuItem)
	a.POST("/menu/categories", h.AddCategory)
	a.POST("/menu/images", h.UploadImage)

	a.GET("/orders", h.ListOrders)
	a.GET("/orders/export", h.ExportOrders)
	a.GET("/orders/:id", h.GetOrder)
	a.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	a.DELETE("/orders/:id", h.DeleteOrder)

	a.GET("/dashboard", h.Overview)
	a.GET("/dashboard/stats", h.Stats)
	a.GET("/dashboard/revenue", h.Revenue)
	a.GET("/dashboard/popular", h.Popular)
	a.GET("/dashboard/recent", h.Recent)

	if h.hub != nil {
		a.GET("/ws", gin.WrapH(h.hub))
	}
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	order, err := h.orders.CreateOrderFromCart(c.Request.Context(), req.Customer, cart.New(req.Items...))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateOrderResponse{ID: order.ID, Total: order.Total, Status: order.Status})
}

func (h *Handler) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		orders []domain.Order
		err    error
	)
	if status := c.Query("status"); status != "" {
		orders, err = h.orders.ListOrdersByStatus(ctx, domain.OrderStatus(status))
	} else {
		orders, err = h.orders.ListOrders(ctx)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.orders.GetOrderById(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ExportOrders(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.orders.ExportOrdersCSV(c.Request.Context(), &buf); err != nil {
		writeError(c, err)
		return
	}
	name := "orders-" + h.now().Format("20060102") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
