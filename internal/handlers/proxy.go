package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/go-authgate/edgegate/internal/session"

	"github.com/gin-gonic/gin"
)

// UpstreamProxy forwards authorised requests to the protected application.
func UpstreamProxy(target *url.URL, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			// The session id authorises the hop to us, not to the upstream.
			pr.Out.Header.Del(session.HeaderName)
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.ErrorContext(r.Context(), "Upstream request failed",
				"upstream", target.Host, "path", r.URL.Path, "error", err)
			w.WriteHeader(http.StatusBadGateway)
		},
	}

	return gin.WrapH(proxy)
}
