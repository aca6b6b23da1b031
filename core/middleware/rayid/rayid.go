package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request id.
const HeaderName = "X-Ray-ID"

// LocalsKey is the fiber locals key under which the id is stored.
const LocalsKey = "ray_id"

// New returns a middleware that assigns every request a ray id.
// An id supplied by an upstream proxy is reused.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
