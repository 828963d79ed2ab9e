package middleware

import (
	"errors"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

/*
 * The bot gateway authenticates members against the chat platform and
 * vouches for them here: every forwarded request carries an HS256 JWT
 * signed with the shared KEY, with the member's stable platform identity
 * in the claims. The backend never re-authenticates users itself.
 */

// Identity is the platform identity asserted by the gateway's JWT.
type Identity struct {
	UserID        string
	Username      string
	Discriminator string
}

var ErrNoToken = errors.New("missing or malformed Authorization header")

// DecodeUserJWT validates the Bearer token and extracts the member identity.
func DecodeUserJWT(c *gin.Context) (*Identity, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, ErrNoToken
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("KEY")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	id, _ := claims["user_id"].(string)
	if id == "" {
		return nil, errors.New("token carries no user_id")
	}
	name, _ := claims["username"].(string)
	discriminator, _ := claims["discriminator"].(string)

	return &Identity{UserID: id, Username: name, Discriminator: discriminator}, nil
}
