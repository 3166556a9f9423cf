package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/maxviazov/bookstore-service/internal/repository"
	"github.com/maxviazov/bookstore-service/internal/service"
	"github.com/maxviazov/bookstore-service/pkg/response"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/product-categories")
	{
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
		g.GET("/:id/products", h.listProducts)
	}
}

// paginationQuery is bound from ?page=&size=; constraint checks run before the handler body.
// The size ceiling mirrors repository.MaxPageSize.
type paginationQuery struct {
	Page int `form:"page,default=0" binding:"min=0"`
	Size int `form:"size,default=20" binding:"min=1,max=1000"`
}

func (h *CategoryHandler) getByID(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	category, err := h.svc.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, category)
}

func (h *CategoryHandler) list(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, categories)
}

func (h *CategoryHandler) listProducts(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	var q paginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.WriteError(c, service.NewInvalidInputError(paginationFieldErrors(c, err)))
		return
	}
	page, err := h.svc.ListProductsByCategory(c.Request.Context(), id, repository.PageRequest{Page: q.Page, Size: q.Size})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, page)
}

// categoryID parses the :id path segment and writes a 400 when it is not an integer.
func categoryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer"}}))
		return 0, false
	}
	return id, true
}

func paginationFieldErrors(c *gin.Context, err error) []service.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]service.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			op := ">="
			if fe.Tag() == "max" {
				op = "<="
			}
			out = append(out, service.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fmt.Sprintf("must be %s %s", op, fe.Param()),
			})
		}
		return out
	}

	// the form binder reports strconv failures without the parameter name
	var out []service.FieldError
	for _, name := range []string{"page", "size"} {
		raw, ok := c.GetQuery(name)
		if !ok || raw == "" {
			continue
		}
		if _, perr := strconv.Atoi(strings.TrimSpace(raw)); perr != nil {
			out = append(out, service.FieldError{Field: name, Message: "must be an integer"})
		}
	}
	if len(out) == 0 {
		out = append(out, service.FieldError{Field: "query", Message: err.Error()})
	}
	return out
}
