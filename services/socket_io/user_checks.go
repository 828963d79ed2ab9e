package socket_io

import (
	"errors"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zishang520/socket.io/v2/socket"
)

// VerifyUserConnection authenticates a socket.io handshake. The gateway
// passes the same HS256 JWT it uses for HTTP in the auth payload.
func VerifyUserConnection(client *socket.Socket) (bool, string) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		client.Emit("error", map[string]string{"error": "Authentication failed: missing auth data"})
		return false, ""
	}

	tokenString, ok := authData["token"].(string)
	if !ok || tokenString == "" {
		client.Emit("error", map[string]string{"error": "Authentication failed: missing token"})
		return false, ""
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("KEY")), nil
	})
	if err != nil || !token.Valid {
		client.Emit("error", map[string]string{"error": "Authentication failed: invalid token"})
		return false, ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false, ""
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		client.Emit("error", map[string]string{"error": "Authentication failed: token carries no user_id"})
		return false, ""
	}
	return true, userID
}
