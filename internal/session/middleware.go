package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// CookieName carries the signed session id.
	CookieName = "bazar_session"

	localsKey = "sid"

	cookieLifetime = 30 * 24 * time.Hour
)

// Middleware reads the signed session-id cookie and puts the sid in
// locals. A missing or tampered cookie gets a fresh sid minted; the
// jwtware middleware only rejects, so minting is done by hand here.
func Middleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := parseSID(c.Cookies(CookieName), secret)
		if sid == "" {
			sid = uuid.NewString()
			signed, err := signSID(sid, secret)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create session"})
			}
			c.Cookie(&fiber.Cookie{
				Name:     CookieName,
				Value:    signed,
				Expires:  time.Now().Add(cookieLifetime),
				HTTPOnly: true,
				SameSite: "Lax",
			})
		}
		c.Locals(localsKey, sid)
		return c.Next()
	}
}

// SID returns the session id stored by Middleware.
func SID(c *fiber.Ctx) string {
	sid, _ := c.Locals(localsKey).(string)
	return sid
}

func signSID(sid, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(cookieLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseSID(cookie, secret string) string {
	if cookie == "" {
		return ""
	}
	token, err := jwt.Parse(cookie, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}
