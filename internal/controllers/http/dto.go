package http

import (
	"restaurant-service/internal/cart"
	"restaurant-service/internal/domain"
	"restaurant-service/internal/services"
)

// CheckoutRequest is what the storefront posts from its cart page.
type CheckoutRequest struct {
	Customer services.Customer `json:"customer"`
	Items    []cart.Line       `json:"items" binding:"required,min=1"`
}

type CreateOrderResponse struct {
	ID     uint64             `json:"id"`
	Total  int64              `json:"total"`
	Status domain.OrderStatus `json:"status"`
}

type UpdateStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type UploadImageResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
