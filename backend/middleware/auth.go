package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizapp/backend/config"
	"quizapp/backend/models"
	"quizapp/backend/utils"
)

// Protected resolves the bearer session token into the account it
// belongs to and stores it in the request locals. A missing token, a
// bad token and an unknown account all reply the same 401.
func Protected(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		if tokenString == "" {
			return unauthorized(c)
		}

		email, err := utils.ParseToken(tokenString, cfg)
		if err != nil {
			return unauthorized(c)
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			return unauthorized(c)
		}

		c.Locals("user", user)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}
