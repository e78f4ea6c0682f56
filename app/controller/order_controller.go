package controller

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"frame-storefront/models"
	"frame-storefront/service"
)

// OrderController handles HTTP requests for orders
type OrderController struct {
	orders service.OrderServiceInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(orders service.OrderServiceInterface) *OrderController {
	return &OrderController{orders: orders}
}

// Checkout handles POST /orders
func (c *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}
	log.Printf("📥 Checkout: Received %s request from user_id=%s", r.Method, claims.UserID)

	var req models.CheckoutRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := c.orders.Checkout(r.Context(), claims.UserID, &req)
	if err != nil {
		respondServiceError(w, "Checkout", "placing order", err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// ListMine handles GET /orders
func (c *OrderController) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	orders, err := c.orders.ListMine(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, "ListOrders", "listing orders", err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// Get handles GET /orders/{id}
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	order, err := c.orders.Get(r.Context(), claims.UserID, claims.Role, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, "GetOrder", "loading order", err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// ListAll handles GET /admin/orders?status={status}
func (c *OrderController) ListAll(w http.ResponseWriter, r *http.Request) {
	var status *string
	if v := r.URL.Query().Get("status"); v != "" {
		status = &v
	}

	orders, err := c.orders.ListAll(r.Context(), status)
	if err != nil {
		respondServiceError(w, "ListAllOrders", "listing orders", err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PATCH /admin/orders/{id}/status
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateOrderStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := c.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respondServiceError(w, "UpdateOrderStatus", "updating order status", err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
