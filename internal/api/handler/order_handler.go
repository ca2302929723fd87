package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renovatepro/renovate-api/internal/api/metrics"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for renovation orders. Every route sits
// behind the Auth middleware; who may do what is decided by the service.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /v1/orders.
//
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.CreateOrder(c.Request().Context(), session, toCreateOrderInput(req))
	recordAuthz("order.create", err)
	if err != nil {
		return err
	}
	metrics.OrdersCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Get handles GET /v1/orders/:id.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  orderResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	order, err := h.service.GetOrder(c.Request().Context(), session, c.Param("id"))
	recordAuthz("order.read", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// Update handles PUT /v1/orders/:id. Fields the caller may not write are
// dropped silently; the response is the stored order.
//
// @Summary      Update an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string              true  "Order ID"
// @Param        body  body      updateOrderRequest  true  "Fields to change"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/orders/{id} [put]
func (h *OrderHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	changes := toOrderChanges(req)

	order, err := h.service.UpdateOrder(c.Request().Context(), session, c.Param("id"), changes)
	recordAuthz("order.update", err)
	if err != nil {
		return err
	}
	if changes.Status != nil && order.Status == *changes.Status {
		metrics.OrderStatusChangesTotal.WithLabelValues(string(order.Status)).Inc()
	}

	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// Delete handles DELETE /v1/orders/:id.
//
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	err = h.service.DeleteOrder(c.Request().Context(), session, c.Param("id"))
	recordAuthz("order.delete", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "order deleted"})
}

// List handles GET /v1/orders. Results are scoped to the caller's role.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     CookieAuth
// @Param        status      query     string  false  "Filter by status"
// @Param        search      query     string  false  "Text search"
// @Param        page        query     int     false  "Page number"
// @Param        limit       query     int     false  "Page size"
// @Param        sort_by     query     string  false  "Sort field"
// @Param        sort_order  query     string  false  "asc or desc"
// @Success      200         {object}  listResponse[orderResponse]
// @Failure      400         {object}  errorResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var q listOrdersQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	result, err := h.service.ListOrders(c.Request().Context(), session, ports.ListOrdersInput{
		Status:      q.Status,
		Search:      q.Search,
		PageRequest: q.toPageRequest(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(result, toOrderResponse))
}
