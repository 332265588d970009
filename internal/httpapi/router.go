package httpapi

import (
	"net/http"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gin-gonic/gin"

	"rentaldesk/internal/app"
	"rentaldesk/internal/types"
)

// Handler serves car images for the display layer.
type Handler struct {
	Service     app.Service
	Media       types.MediaLocation
	CatalogPath string
	// StaticRoot is served under the static URL prefix when set.
	StaticRoot string
}

// NewRouter registers the health, car image and file-serving routes.
func NewRouter(h Handler) *gin.Engine {
	h.Media = h.Media.WithDefaults()

	router := gin.New()
	router.Use(LoggingMiddleware())
	router.Use(gin.CustomRecovery(HandlePanics()))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	carsV1 := router.Group("cars")
	{
		carsV1.GET("/:registration/image", h.GetCarImage)
	}

	mediaPrefix, serveMedia := localPrefix(h.Media.MediaURLPrefix)
	if serveMedia && h.Media.MediaRoot != "" {
		router.Static(mediaPrefix, h.Media.MediaRoot)
	}
	if prefix, ok := localPrefix(h.Media.StaticURLPrefix); ok && h.StaticRoot != "" && prefix != mediaPrefix {
		router.Static(prefix, h.StaticRoot)
	}
	return router
}

// GetCarImage redirects to the best image for the car, or describes the
// resolution as JSON when called with ?format=json.
func (h Handler) GetCarImage(c *gin.Context) {
	result, err := h.Service.ResolveImage(c.Request.Context(), app.ResolveImageRequest{
		Media:        h.Media,
		CatalogPath:  h.CatalogPath,
		Registration: c.Param("registration"),
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, types.ImageResolution{
			URL:   result.URL,
			Tier:  result.Tier,
			Match: result.Match,
		})
		return
	}
	c.Redirect(http.StatusFound, result.URL)
}

func statusForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeNotFound:
		return http.StatusNotFound
	case errbuilder.CodeInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// localPrefix reports the route for a URL prefix served by this process.
// Prefixes pointing at another host are left alone.
func localPrefix(prefix string) (string, bool) {
	if !strings.HasPrefix(prefix, "/") || strings.HasPrefix(prefix, "//") {
		return "", false
	}
	trimmed := strings.TrimSuffix(prefix, "/")
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}
