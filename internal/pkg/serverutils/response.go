package serverutils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the only error body shape clients ever see: a short
// human-readable message, no stack traces or internal identifiers.
func ErrorResponse(message string) fiber.Map {
	return fiber.Map{"message": message}
}

func MessageResponse(message string) fiber.Map {
	return fiber.Map{"message": message}
}
