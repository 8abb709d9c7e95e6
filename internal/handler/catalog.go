package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"shop_service/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func objectIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, def int64) int64 {
	v, err := strconv.ParseInt(c.DefaultQuery(name, strconv.FormatInt(def, 10)), 10, 64)
	if err != nil || v < 1 {
		return def
	}
	return v
}

// GET /api/products
func (h *Handler) ListProducts(c *gin.Context) {
	const op = "handler.ListProducts"

	log := h.requestLogger(c, op)

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	search := c.Query("search")

	res, err := h.catalog.ListProducts(c.Request.Context(), page, limit, search)
	if err != nil {
		log.Error("failed to list products", slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.JSON(http.StatusOK, res)
}

// GET /api/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	const op = "handler.GetProduct"

	log := h.requestLogger(c, op)

	id, ok := objectIDParam(c)
	if !ok {
		return
	}

	product, err := h.catalog.Product(c.Request.Context(), id)
	if err != nil {
		log.Error("failed to get product", slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.JSON(http.StatusOK, product)
}

// POST /api/products
func (h *Handler) CreateProduct(c *gin.Context) {
	const op = "handler.CreateProduct"

	log := h.requestLogger(c, op)

	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description" binding:"required"`
		Price       float64 `json:"price" binding:"required"`
		Quantity    int64   `json:"quantity" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request")

		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		log.Error("failed to create product", slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.JSON(http.StatusCreated, product)
}

// PUT /api/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	const op = "handler.UpdateProduct"

	log := h.requestLogger(c, op)

	id, ok := objectIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description" binding:"required"`
		Price       float64 `json:"price" binding:"required"`
		Quantity    int64   `json:"quantity" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request")

		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), models.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		log.Error("failed to update product", slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.JSON(http.StatusOK, product)
}

// DELETE /api/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	const op = "handler.DeleteProduct"

	log := h.requestLogger(c, op)

	id, ok := objectIDParam(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		log.Error("failed to delete product", slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}

// GET /api/orders
func (h *Handler) ListOrders(c *gin.Context) {
	const op = "handler.ListOrders"

	log := h.requestLogger(c, op)

	orders, err := h.catalog.ListOrders(c.Request.Context())
	if err != nil {
		log.Error("failed to list orders", slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	const op = "handler.GetOrder"

	log := h.requestLogger(c, op)

	id, ok := objectIDParam(c)
	if !ok {
		return
	}

	order, err := h.catalog.Order(c.Request.Context(), id)
	if err != nil {
		log.Error("failed to get order", slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.JSON(http.StatusOK, order)
}

// POST /api/orders
func (h *Handler) CreateOrder(c *gin.Context) {
	const op = "handler.CreateOrder"

	log := h.requestLogger(c, op)

	var req struct {
		Products    []models.OrderItem `json:"products" binding:"required"`
		TotalAmount float64            `json:"totalAmount" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request")

		return
	}

	order, err := h.catalog.CreateOrder(c.Request.Context(), models.Order{
		Username:    c.GetString(ctxUsername),
		Products:    req.Products,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		log.Error("failed to create order", slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.JSON(http.StatusCreated, order)
}

// PUT /api/orders/:id
func (h *Handler) UpdateOrder(c *gin.Context) {
	const op = "handler.UpdateOrder"

	log := h.requestLogger(c, op)

	id, ok := objectIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Products    []models.OrderItem `json:"products" binding:"required"`
		TotalAmount float64            `json:"totalAmount" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request")

		return
	}

	order, err := h.catalog.UpdateOrder(c.Request.Context(), models.Order{
		ID:          id,
		Products:    req.Products,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		log.Error("failed to update order", slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.JSON(http.StatusOK, order)
}

// DELETE /api/orders/:id
func (h *Handler) DeleteOrder(c *gin.Context) {
	const op = "handler.DeleteOrder"

	log := h.requestLogger(c, op)

	id, ok := objectIDParam(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteOrder(c.Request.Context(), id); err != nil {
		log.Error("failed to delete order", slog.Any("error", err))

		status, msg := statusFor(err)
		newErrorResponse(c, status, msg)

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order removed"})
}
