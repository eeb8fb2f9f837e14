package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surfcamp/internal/apperrors"
)

const txKey = "db_tx"

// Transaction opens one database transaction per request and stores the
// handle in the request context. The handler chain commits on success and
// rolls back on any returned error, re-returning the original error
// unchanged. A rollback failure takes precedence and propagates instead.
func Transaction(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tx := db.Begin()
		if tx.Error != nil {
			return apperrors.NewUpstream("begin transaction", tx.Error)
		}
		c.Locals(txKey, tx)

		if err := c.Next(); err != nil {
			if rbErr := tx.Rollback().Error; rbErr != nil {
				return apperrors.NewUpstream("rollback transaction", rbErr)
			}
			return err
		}

		if err := tx.Commit().Error; err != nil {
			return apperrors.NewUpstream("commit transaction", err)
		}
		return nil
	}
}

// Tx returns the request-scoped transaction stored by Transaction.
func Tx(c *fiber.Ctx) *gorm.DB {
	tx, _ := c.Locals(txKey).(*gorm.DB)
	return tx
}
