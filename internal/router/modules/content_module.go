package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/onesteptask/internal/interface/http"
	"github.com/oksasatya/onesteptask/internal/interface/middleware"
)

// ContentModule serves testimonials and page content.
// Public: GET /api/testimonials, GET /api/content/:slug
// Admin: everything that writes, plus GET /api/content
type ContentModule struct {
	Handler *handlers.ContentHandler
}

func NewContentModule(h *handlers.ContentHandler) *ContentModule {
	return &ContentModule{Handler: h}
}

func (m *ContentModule) Register(rg *gin.RouterGroup) {
	rg.GET("/testimonials", m.Handler.ListTestimonials)
	rg.GET("/content/:slug", m.Handler.GetPage)

	admin := rg.Group("/")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/testimonials", m.Handler.CreateTestimonial)
		admin.PATCH("/testimonials/:id", m.Handler.PatchTestimonial)
		admin.DELETE("/testimonials/:id", m.Handler.DeleteTestimonial)

		admin.GET("/content", m.Handler.ListPages)
		admin.POST("/content", m.Handler.CreatePage)
		admin.PATCH("/content/:id", m.Handler.PatchPage)
	}
}
