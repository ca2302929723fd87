package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

type PortfolioHandler struct {
	service ports.PortfolioService
}

func NewPortfolioHandler(service ports.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

type createPortfolioRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"   validate:"omitempty,url"`
	Category    string `json:"category"`
}

type updatePortfolioRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"   validate:"omitempty,url"`
	Category    *string `json:"category"`
}

type listPortfolioQuery struct {
	Category string `query:"category" json:"category"`
	PageQuery
}

// Create handles POST /v1/portfolio.
//
// @Summary      Publish a portfolio item
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createPortfolioRequest  true  "Portfolio item"
// @Success      201   {object}  domain.PortfolioItem
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/portfolio [post]
func (h *PortfolioHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req createPortfolioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.service.CreateItem(c.Request().Context(), session, ports.CreatePortfolioInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	recordAuthz("portfolio.create", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /v1/portfolio/:id.
//
// @Summary      Update a portfolio item
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string                  true  "Item ID"
// @Param        body  body      updatePortfolioRequest  true  "Fields to change"
// @Success      200   {object}  domain.PortfolioItem
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/portfolio/{id} [put]
func (h *PortfolioHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req updatePortfolioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.service.UpdateItem(c.Request().Context(), session, c.Param("id"), domain.PortfolioChanges{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	recordAuthz("portfolio.update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /v1/portfolio/:id.
//
// @Summary      Delete a portfolio item
// @Tags         portfolio
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/portfolio/{id} [delete]
func (h *PortfolioHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	err = h.service.DeleteItem(c.Request().Context(), session, c.Param("id"))
	recordAuthz("portfolio.delete", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "portfolio item deleted"})
}

// List handles GET /v1/portfolio. Admins see every item, everyone else
// their own.
//
// @Summary      List portfolio items
// @Tags         portfolio
// @Produce      json
// @Security     CookieAuth
// @Param        category  query     string  false  "Filter by category"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listResponse[domain.PortfolioItem]
// @Router       /v1/portfolio [get]
func (h *PortfolioHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var q listPortfolioQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	result, err := h.service.ListItems(c.Request().Context(), session, q.Category, q.toPageRequest())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result, identity[domain.PortfolioItem]))
}
