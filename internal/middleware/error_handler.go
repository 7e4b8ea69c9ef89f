package middleware

import (
	"net/http"
	"time"

	"kioscopos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errInterno = apierror.New("Error interno del servidor")

// reqLog returns a logger event tagged with the request id and route template.
func reqLog(c *gin.Context, ev *zerolog.Event) *zerolog.Event {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return ev.
		Str("request_id", c.GetString(RequestIDKey)).
		Str("method", c.Request.Method).
		Str("route", route)
}

// ErrorHandler answers with a generic 500 when a handler attached an error
// with c.Error and wrote nothing. The cause only reaches the log.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		reqLog(c, log.Error()).Err(c.Errors.Last().Err).Msg("unhandled error")
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, errInterno)
		}
	}
}

// Recovery turns a panic into a 500 without exposing the panic value.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			reqLog(c, log.Error()).Interface("panic", r).Msg("panic recovered")
			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, errInterno)
				return
			}
			c.Abort()
		}()
		c.Next()
	}
}

// Logger writes one line per request: 5xx at error level, 4xx at warn, the rest at info.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			ev = log.Error()
		case status >= http.StatusBadRequest:
			ev = log.Warn()
		}
		reqLog(c, ev).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Str("client_ip", c.ClientIP()).
			Dur("latency", time.Since(inicio)).
			Msg("request")
	}
}
