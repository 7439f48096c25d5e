package auth

import "github.com/gofiber/fiber/v3"

// Authentication itself is delegated to the edge; the back office only
// needs to know who to attribute admin actions to.
const adminUserHeader = "X-Admin-User"

func AdminUser(c fiber.Ctx) string {
	return c.Get(adminUserHeader)
}
