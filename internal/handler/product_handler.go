package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"souqd/internal/pkg/response"
	"souqd/internal/service"
	"souqd/internal/session"
)

type ProductHandler struct {
	products *service.ProductService
	sessions *session.Manager
}

func NewProductHandler(products *service.ProductService, sessions *session.Manager) *ProductHandler {
	return &ProductHandler{products: products, sessions: sessions}
}

type createProductRequest struct {
	Name       string `json:"name"`
	CatTitle   string `json:"catTitle"`
	SubTitle   string `json:"subTitle"`
	Desc       string `json:"desc"`
	Contact    string `json:"contact"`
	PriceLabel string `json:"priceLabel"`
	Image      string `json:"image"`
}

// viewer resolves an optional principal on public routes, which run without
// the auth middleware.
func (h *ProductHandler) viewer(c *gin.Context) string {
	if email, ok := h.sessions.Principal(c); ok {
		return email
	}
	return ""
}

func (h *ProductHandler) List(c *gin.Context) {
	cat := strings.TrimSpace(c.Query("cat"))
	sub := strings.TrimSpace(c.Query("sub"))
	items := h.products.List(c.Request.Context(), cat, sub, h.viewer(c))
	response.OK(c, gin.H{"items": items})
}

func (h *ProductHandler) Get(c *gin.Context) {
	item, err := h.products.Get(c.Request.Context(), c.Param("id"), h.viewer(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"item": item})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "product name is required")
		return
	}
	id, err := h.products.Create(c.Request.Context(), principal(c), service.CreateProductInput{
		Name:       strings.TrimSpace(req.Name),
		CatTitle:   strings.TrimSpace(req.CatTitle),
		SubTitle:   strings.TrimSpace(req.SubTitle),
		Desc:       strings.TrimSpace(req.Desc),
		Contact:    strings.TrimSpace(req.Contact),
		PriceLabel: strings.TrimSpace(req.PriceLabel),
		Image:      strings.TrimSpace(req.Image),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"id": id})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id"), principal(c)); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}
