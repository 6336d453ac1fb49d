package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/pkg/auth"
	"github.com/iamasit07/connectfour/pkg/httputil"
)

const playerIDKey = "player_id"

// PlayerIdentity resolves the acting player. With a secret, the player id is
// the subject of a signed bearer token; without one, it is taken from the
// X-Player-Id header as is.
func PlayerIdentity(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			playerID string
			err      error
		)
		if jwtSecret != "" {
			var token string
			token, err = httputil.GetTokenFromRequest(c.Request)
			if err == nil {
				playerID, err = auth.ValidatePlayerToken(jwtSecret, token)
			}
		} else {
			playerID, err = httputil.GetPlayerIDFromRequest(c.Request)
		}

		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorResponse{
				Error: "Unauthorized",
				Kind:  domain.KindUnknown,
			})
			return
		}

		c.Set(playerIDKey, playerID)
		c.Next()
	}
}

// PlayerID returns the id stored by PlayerIdentity.
func PlayerID(c *gin.Context) string {
	return c.GetString(playerIDKey)
}
