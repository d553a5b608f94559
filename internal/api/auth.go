package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/conduit-api/internal/errs"
	"github.com/conduit-api/internal/models"
)

const viewerKey = "viewer"

// Claims is the payload of a viewer token
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// authenticator decodes the viewer from the Authorization header.
// Tokens are issued elsewhere; only verification happens here.
type authenticator struct {
	secret []byte
}

func newAuthenticator(secret string) *authenticator {
	return &authenticator{secret: []byte(secret)}
}

// parse returns the viewer named by header. An empty header is anonymous.
func (a *authenticator) parse(header string) (models.Viewer, error) {
	if header == "" {
		return models.Anonymous(), nil
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || (scheme != "Token" && scheme != "Bearer") {
		return models.Anonymous(), errors.New("malformed authorization header")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return models.Anonymous(), err
	}
	if claims.Username == "" {
		return models.Anonymous(), errors.New("token has no username")
	}
	return models.AuthenticatedAs(claims.Username), nil
}

// optional decodes a viewer when one is presented. Invalid credentials are still rejected.
func (a *authenticator) optional() gin.HandlerFunc {
	return a.middleware(false)
}

// required rejects requests without a valid viewer
func (a *authenticator) required() gin.HandlerFunc {
	return a.middleware(true)
}

func (a *authenticator) middleware(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, err := a.parse(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, "invalid authorization credentials")
			return
		}
		if required && !viewer.Authenticated() {
			abortUnauthorized(c, "missing authorization credentials")
			return
		}
		c.Set(viewerKey, viewer)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errs.Unauthorized(message).Body())
}

// viewerFrom returns the viewer decoded by the auth middleware
func viewerFrom(c *gin.Context) models.Viewer {
	if v, ok := c.Get(viewerKey); ok {
		if viewer, ok := v.(models.Viewer); ok {
			return viewer
		}
	}
	return models.Anonymous()
}
