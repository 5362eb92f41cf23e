package redirect

import (
	"log/slog"
	"net/http"

	"github.com/go-authgate/edgegate/internal/core"

	"github.com/gin-gonic/gin"
)

// Handler answers every plaintext request with a permanent redirect.
type Handler struct {
	httpsPort int
	metrics   core.Recorder
	logger    *slog.Logger
}

func NewHandler(httpsPort int, metrics core.Recorder, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{httpsPort: httpsPort, metrics: metrics, logger: logger}
}

// Redirect responds 301 with the HTTPS location, or 500 with an empty body
// when no valid location can be built.
func (h *Handler) Redirect(c *gin.Context) {
	req := c.Request

	// net/http sets req.Host from the authority for absolute-form targets.
	location := RewriteURL(req.URL, req.Host, h.httpsPort)
	if err := ValidateLocation(location); err != nil {
		h.logger.ErrorContext(req.Context(), "Failed to build redirect URL",
			"location", location, "error", err)
		h.metrics.RecordRedirect("invalid_location")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	h.metrics.RecordRedirect("redirected")
	c.Header("Location", location)
	c.AbortWithStatus(http.StatusMovedPermanently)
}
