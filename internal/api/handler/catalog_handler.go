package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

// CatalogHandler serves the service catalog. Reads are public.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Create handles POST /v1/services.
//
// @Summary      Add a catalog service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createServiceRequest  true  "Service details"
// @Success      201   {object}  domain.Service
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/services [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req createServiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	svc, err := h.service.CreateService(c.Request().Context(), session, req.toInput())
	recordAuthz("service.create", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, svc)
}

// Get handles GET /v1/services/:id.
//
// @Summary      Get a catalog service
// @Tags         services
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  domain.Service
// @Failure      404  {object}  errorResponse
// @Router       /v1/services/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	svc, err := h.service.GetService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}

// Update handles PUT /v1/services/:id.
//
// @Summary      Update a catalog service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string                true  "Service ID"
// @Param        body  body      updateServiceRequest  true  "Fields to change"
// @Success      200   {object}  domain.Service
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/services/{id} [put]
func (h *CatalogHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req updateServiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	svc, err := h.service.UpdateService(c.Request().Context(), session, c.Param("id"), req.toChanges())
	recordAuthz("service.update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}

// Delete handles DELETE /v1/services/:id.
//
// @Summary      Delete a catalog service
// @Tags         services
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/services/{id} [delete]
func (h *CatalogHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	err = h.service.DeleteService(c.Request().Context(), session, c.Param("id"))
	recordAuthz("service.delete", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "service deleted"})
}

// List handles GET /v1/services.
//
// @Summary      List catalog services
// @Tags         services
// @Produce      json
// @Param        category    query     string  false  "Filter by category"
// @Param        search      query     string  false  "Text search on name and description"
// @Param        page        query     int     false  "Page number"
// @Param        limit       query     int     false  "Page size"
// @Success      200         {object}  listResponse[domain.Service]
// @Router       /v1/services [get]
func (h *CatalogHandler) List(c echo.Context) error {
	var q listServicesQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	result, err := h.service.ListServices(c.Request().Context(), ports.ListServicesFilter{
		Category:    q.Category,
		Search:      q.Search,
		PageRequest: q.toPageRequest(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result, identity[domain.Service]))
}
