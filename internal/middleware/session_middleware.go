package middleware

import (
	"github.com/fadilmartias/datapulse/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const sessionLocal = "session_id"

// Session makes sure every request carries a session cookie holding a
// uuid. The id is stored in Locals and in the user context. It outlives
// the request as a map key, so it never aliases the request buffer.
func Session(cookieName string, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := utils.CopyString(c.Cookies(cookieName))
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cookieName,
				Value:    sessionID,
				Path:     "/",
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(sessionLocal, sessionID)
		c.SetUserContext(util.WithSessionID(c.UserContext(), sessionID))
		return c.Next()
	}
}

func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionLocal).(string)
	return id
}
