package controller

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ohmfruit/fruitstore-service/internal/dto"
	"github.com/ohmfruit/fruitstore-service/internal/service"
	pkgdto "github.com/ohmfruit/fruitstore-service/pkg/dto"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"github.com/ohmfruit/fruitstore-service/pkg/response"
	"github.com/rs/zerolog/log"
)

const imagesField = "images"

type ProductController struct {
	service service.ProductService
}

func CreateProductController(g *echo.Group, service service.ProductService, isAdmin echo.MiddlewareFunc) {
	c := ProductController{
		service: service,
	}
	g.GET("/products", c.GetProducts)
	g.GET("/products/new", c.GetLatestProducts)
	g.GET("/products/recommended", c.GetRecommendedProducts)
	g.GET("/products/price-preview", c.GetPricePreview)
	g.GET("/products/:id", c.GetProduct)
	g.POST("/products", c.AddProduct, isAdmin)
	g.POST("/products/bulk-delete", c.DeleteProducts, isAdmin)
	g.PUT("/products/:id", c.UpdateProduct, isAdmin)
	g.PUT("/products/:id/recommend", c.ToggleRecommended, isAdmin)
	g.DELETE("/products/:id", c.DeleteProduct, isAdmin)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	filter := pkgdto.Filter{
		Category: e.QueryParam("category"),
		Search:   e.QueryParam("search"),
	}

	data, err := c.service.GetProducts(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) GetLatestProducts(e echo.Context) error {
	// A malformed limit falls back to the default.
	limit, _ := strconv.Atoi(e.QueryParam("limit"))

	data, err := c.service.GetLatestProducts(e.Request().Context(), limit)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) GetRecommendedProducts(e echo.Context) error {
	data, err := c.service.GetRecommendedProducts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) GetProduct(e echo.Context) error {
	data, err := c.service.GetProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) GetPricePreview(e echo.Context) error {
	param := pkgdto.PricePreviewParam{
		Price:        e.QueryParam("price"),
		Quantity:     e.QueryParam("quantity"),
		QuantityType: e.QueryParam("quantity_type"),
	}

	return response.WriteSuccessResponse(e, "", c.service.GetPricePreview(param))
}

func (c *ProductController) AddProduct(e echo.Context) error {
	payload, err := bindProductRequest(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	data, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product created", data)
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	payload, err := bindProductRequest(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ID = e.Param("id")

	data, err := c.service.UpdateProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product updated", data)
}

func (c *ProductController) DeleteProduct(e echo.Context) error {
	err := c.service.DeleteProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product deleted", nil)
}

func (c *ProductController) DeleteProducts(e echo.Context) error {
	payload := pkgdto.BulkDeleteRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Info().Err(err).Str("component", "DeleteProducts").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	data, err := c.service.DeleteProducts(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Products deleted", data)
}

func (c *ProductController) ToggleRecommended(e echo.Context) error {
	data, err := c.service.ToggleRecommended(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

// bindProductRequest reads the product fields and, for multipart requests,
// the uploaded images in the order they were sent.
func bindProductRequest(e echo.Context) (payload dto.ProductRequest, err error) {
	if err = e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Info().Err(err).Str("component", "bindProductRequest").Msg("")
		return payload, errs.ErrClient
	}

	form, err := e.MultipartForm()
	if errors.Is(err, http.ErrNotMultipart) {
		return payload, nil
	}
	if err != nil {
		log.Ctx(e.Request().Context()).Info().Err(err).Str("component", "bindProductRequest").Msg("")
		return payload, errs.ErrClient
	}

	for _, fh := range form.File[imagesField] {
		payload.Images = append(payload.Images, imageFile(fh))
	}

	return payload, nil
}

func imageFile(fh *multipart.FileHeader) dto.ImageFile {
	return dto.ImageFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
