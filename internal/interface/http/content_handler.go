package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/onesteptask/internal/application"
	"github.com/oksasatya/onesteptask/internal/interface/middleware"
	"github.com/oksasatya/onesteptask/pkg/response"
)

// ContentHandler serves testimonials and page content documents.
type ContentHandler struct {
	Testimonials *application.TestimonialService
	Content      *application.ContentService
	Logger       *logrus.Logger
}

func NewContentHandler(testimonials *application.TestimonialService, content *application.ContentService, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{Testimonials: testimonials, Content: content, Logger: logger}
}

type createTestimonialRequest struct {
	Name        string `json:"name" binding:"required"`
	Position    string `json:"position" binding:"required"`
	Rating      *int   `json:"rating" binding:"required"`
	Content     string `json:"content" binding:"required"`
	IsPublished bool   `json:"isPublished"`
}

type patchTestimonialRequest struct {
	Name        *string `json:"name"`
	Position    *string `json:"position"`
	Rating      *int    `json:"rating"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"isPublished"`
}

type createContentRequest struct {
	PageSlug string         `json:"pageSlug" binding:"required"`
	Content  map[string]any `json:"content" binding:"required"`
}

type patchContentRequest struct {
	Content map[string]any `json:"content" binding:"required"`
}

// ListTestimonials GET /api/testimonials. Admins also see unpublished entries.
func (h *ContentHandler) ListTestimonials(c *gin.Context) {
	publicOnly := !middleware.IdentityFrom(c).IsAdmin()
	items, err := h.Testimonials.List(c.Request.Context(), publicOnly)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// CreateTestimonial POST /api/testimonials
func (h *ContentHandler) CreateTestimonial(c *gin.Context) {
	var req createTestimonialRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Testimonials.Create(c.Request.Context(), application.TestimonialInput{
		Name:        req.Name,
		Position:    req.Position,
		Rating:      *req.Rating,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, t)
}

// PatchTestimonial PATCH /api/testimonials/:id
func (h *ContentHandler) PatchTestimonial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req patchTestimonialRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Testimonials.Patch(c.Request.Context(), id, application.TestimonialPatch{
		Name:        req.Name,
		Position:    req.Position,
		Rating:      req.Rating,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, t)
}

// DeleteTestimonial DELETE /api/testimonials/:id
func (h *ContentHandler) DeleteTestimonial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	removed, err := h.Testimonials.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if !removed {
		writeError(c, h.Logger, application.ErrTestimonialNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPage GET /api/content/:slug
func (h *ContentHandler) GetPage(c *gin.Context) {
	p, err := h.Content.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// ListPages GET /api/content
func (h *ContentHandler) ListPages(c *gin.Context) {
	pages, err := h.Content.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, pages)
}

// CreatePage POST /api/content
func (h *ContentHandler) CreatePage(c *gin.Context) {
	var req createContentRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Content.Create(c.Request.Context(), req.PageSlug, req.Content)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, p)
}

// PatchPage PATCH /api/content/:id with body {"content": {...}}
func (h *ContentHandler) PatchPage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req patchContentRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Content.Patch(c.Request.Context(), id, req.Content)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}
