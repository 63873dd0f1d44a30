package handler

import (
	"net/http"
	"strconv"

	"catalog/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// /products の公開API
type ProductHandler struct {
	uc   *usecase.ProductUsecase
	auth echo.MiddlewareFunc
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase, auth echo.MiddlewareFunc) *ProductHandler {
	return &ProductHandler{uc: uc, auth: auth}
}

// 商品のルートを登録。読み取りは公開、変更はJWT必須。
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:uuid", h.detail)

	e.POST("/products/create", h.create, h.auth)
	e.PUT("/products/:uuid", h.update, h.auth)
	e.PATCH("/products/:uuid", h.patch, h.auth)
	e.DELETE("/products/:uuid", h.delete, h.auth)
}

// 数値クエリはパース失敗で400（黙って無視しない）
func queryInt64(c echo.Context, name string) (*int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	x, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &x, nil
}

func (h *ProductHandler) list(c echo.Context) error {
	var in usecase.ListProductsInput
	var err error

	if in.CategoryID, err = queryInt64(c, "category"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category"})
	}
	if in.ModelID, err = queryInt64(c, "model"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid model"})
	}
	if in.MinPrice, err = queryInt64(c, "min_price"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_price"})
	}
	if in.MaxPrice, err = queryInt64(c, "max_price"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_price"})
	}
	in.Search = c.QueryParam("search")
	in.Ordering = c.QueryParam("ordering")

	body, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	// キャッシュと同じバイト列をそのまま返す
	return c.JSONBlob(http.StatusOK, body)
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.uc.GetByUUID(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// createはmultipart form。imagesは複数可。
func (h *ProductHandler) create(c echo.Context) error {
	price, err := formInt64(c, "price")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid price"})
	}
	if price == nil {
		zero := int64(0)
		price = &zero
	}

	categoryID, err := formInt64(c, "category")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category"})
	}
	modelID, err := formInt64(c, "model")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid model"})
	}

	in := usecase.CreateProductInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       *price,
		Size:        c.FormValue("size"),
		CategoryID:  categoryID,
		ModelID:     modelID,
	}

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, fh := range form.File["images"] {
			src, err := fh.Open()
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid image upload"})
			}
			defer func() {
				if cerr := src.Close(); cerr != nil {
					log.Warn().Err(cerr).Msg("failed to close upload")
				}
			}()

			in.Images = append(in.Images, usecase.ImageUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Content:     src,
			})
		}
	}

	created, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// 全置換の入力。category/modelのnullは「外す」。
type ProductUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Size        string `json:"size"`
	Category    *int64 `json:"category"`
	Model       *int64 `json:"model"`
	IsActive    *bool  `json:"is_active"`
}

func (h *ProductHandler) update(c echo.Context) error {
	var req ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	in := usecase.UpdateProductInput{
		Title:       &req.Title,
		Description: &req.Description,
		Price:       &req.Price,
		Size:        &req.Size,
		CategoryID:  req.Category,
		ModelID:     req.Model,
		IsActive:    &isActive,
	}

	updated, err := h.uc.Update(c.Request().Context(), c.Param("uuid"), in, true)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// 部分更新の入力。nilは「変更なし」。
type ProductPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Size        *string `json:"size"`
	Category    *int64  `json:"category"`
	Model       *int64  `json:"model"`
	IsActive    *bool   `json:"is_active"`
}

func (h *ProductHandler) patch(c echo.Context) error {
	var req ProductPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := usecase.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Size:        req.Size,
		CategoryID:  req.Category,
		ModelID:     req.Model,
		IsActive:    req.IsActive,
	}

	updated, err := h.uc.Update(c.Request().Context(), c.Param("uuid"), in, false)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("uuid")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

// 空文字は未指定扱い
func formInt64(c echo.Context, name string) (*int64, error) {
	v := c.FormValue(name)
	if v == "" {
		return nil, nil
	}
	x, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &x, nil
}
