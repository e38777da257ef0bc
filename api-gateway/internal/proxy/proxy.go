// Package proxy forwards gateway requests to a backend service.
package proxy

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salesdesk/txbrowser/shared/middleware"
	"github.com/sirupsen/logrus"
)

// hopHeaders are connection-scoped and never forwarded.
var hopHeaders = map[string]bool{
	"Connection":          true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
}

type Proxy struct {
	serviceURL  string
	stripPrefix string
	client      *http.Client
	logger      *logrus.Logger
}

// New returns a Proxy that sends requests to serviceURL with stripPrefix
// removed from the front of the incoming path.
func New(serviceURL, stripPrefix string, logger *logrus.Logger) *Proxy {
	return &Proxy{
		serviceURL:  strings.TrimSuffix(serviceURL, "/"),
		stripPrefix: stripPrefix,
		client:      &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}
}

// TargetURL maps an incoming path and raw query to the backend URL.
func (p *Proxy) TargetURL(path, rawQuery string) string {
	path = strings.TrimPrefix(path, p.stripPrefix)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := p.serviceURL + path
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target
}

// Handler forwards the request and relays the backend response verbatim.
func (p *Proxy) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		targetURL := p.TargetURL(c.Request.URL.Path, c.Request.URL.RawQuery)

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, targetURL, bytes.NewReader(bodyBytes))
		if err != nil {
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create request")
			return
		}

		copyHeaders(req.Header, c.Request.Header)
		req.Header.Set("X-Request-ID", middleware.GetRequestID(c))
		req.Header.Set("X-Forwarded-For", c.ClientIP())
		if subject, ok := middleware.GetSubject(c); ok {
			req.Header.Set("X-User-ID", subject)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			p.logger.WithError(err).WithFields(logrus.Fields{
				"request_id": middleware.GetRequestID(c),
				"target":     targetURL,
			}).Error("Error proxying request")
			middleware.RespondWithError(c, http.StatusBadGateway, "Service unavailable")
			return
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			middleware.RespondWithError(c, http.StatusBadGateway, "Failed to read response")
			return
		}

		for key, values := range resp.Header {
			if hopHeaders[key] || key == "Content-Length" {
				continue
			}
			c.Writer.Header()[key] = values
		}
		c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
	}
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if hopHeaders[key] {
			continue
		}
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}
