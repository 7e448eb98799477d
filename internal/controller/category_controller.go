package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/ohmfruit/fruitstore-service/internal/dto"
	"github.com/ohmfruit/fruitstore-service/internal/service"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"github.com/ohmfruit/fruitstore-service/pkg/response"
	"github.com/rs/zerolog/log"
)

type CategoryController struct {
	service service.CategoryService
}

func CreateCategoryController(g *echo.Group, service service.CategoryService, isAdmin echo.MiddlewareFunc) {
	c := CategoryController{
		service: service,
	}
	g.GET("/categories", c.GetCategories)
	g.POST("/categories", c.AddCategory, isAdmin)
	g.PUT("/categories/:id", c.UpdateCategory, isAdmin)
	g.DELETE("/categories/:id", c.DeleteCategory, isAdmin)
}

func (c *CategoryController) GetCategories(e echo.Context) error {
	data, err := c.service.GetCategories(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *CategoryController) AddCategory(e echo.Context) error {
	payload := dto.CategoryRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Info().Err(err).Str("component", "AddCategory").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	data, err := c.service.AddCategory(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Category created", data)
}

func (c *CategoryController) UpdateCategory(e echo.Context) error {
	payload := dto.CategoryRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Info().Err(err).Str("component", "UpdateCategory").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}
	payload.ID = e.Param("id")

	data, err := c.service.UpdateCategory(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Category updated", data)
}

func (c *CategoryController) DeleteCategory(e echo.Context) error {
	err := c.service.DeleteCategory(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Category deleted", nil)
}
