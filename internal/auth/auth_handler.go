package auth

import (
	"net/http"
	"strings"

	"go-ems/internal/middleware"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	refreshTokenCookie = "refresh_token"
	headerClientType   = "X-Client-Type"
)

type Handler struct {
	service       Service
	secureCookies bool
	logger        *zap.Logger
}

// NewHandler builds the auth handler. secureCookies marks session cookies
// Secure and should be true outside local development.
func NewHandler(service Service, secureCookies bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, secureCookies: secureCookies, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// isWebClient decides whether tokens travel as cookies. An explicit
// X-Client-Type wins over the user agent.
func isWebClient(c *gin.Context) bool {
	switch strings.ToLower(c.GetHeader(headerClientType)) {
	case "web":
		return true
	case "mobile", "api":
		return false
	}
	return strings.Contains(c.GetHeader("User-Agent"), "Mozilla")
}

func (h *Handler) setSessionCookies(c *gin.Context, s Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, s.AccessToken, int(s.ExpiresIn), "/", "", h.secureCookies, true)
	c.SetCookie(refreshTokenCookie, s.RefreshToken, int(s.RefreshExpiresIn), "/", "", h.secureCookies, true)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	sess, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if isWebClient(c) {
		h.setSessionCookies(c, sess)
	}
	response.Success(c, http.StatusOK, sess, nil)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	web := isWebClient(c)

	var raw string
	if web {
		raw, _ = c.Cookie(refreshTokenCookie)
	}
	if raw == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, apperror.RequiredField("Refresh Token"))
			return
		}
		raw = req.RefreshToken
	}

	sess, err := h.service.RefreshToken(c.Request.Context(), raw)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if web {
		h.setSessionCookies(c, sess)
	}
	response.Success(c, http.StatusOK, sess, nil)
}

func (h *Handler) Me(c *gin.Context) {
	actor, ok := contextutil.GetPrincipal(c.Request.Context())
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.GetMe(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Logout only clears the cookies; issued tokens stay valid until expiry.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secureCookies, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", h.secureCookies, true)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"}, nil)
}
