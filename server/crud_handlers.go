package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

type validatable interface {
	Validate() error
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": message})
}

func conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": message})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func userRepoError(c *fiber.Ctx, logger Logger, err error) error {
	if repository.IsRecordNotFound(err) {
		return notFound(c, "record not found")
	}
	logger.Error("users: %v", err)
	return internalError(c)
}

// registerResource wires the standard REST surface of one entity
// collection onto the router: list, fetch, create, replace, delete.
func registerResource[T validatable](router fiber.Router, path string, repo *EntityRepo[T], logger Logger) {
	router.Get(path, func(c *fiber.Ctx) error {
		records, err := repo.List(c.Context())
		if err != nil {
			logger.Error("list %s: %v", path, err)
			return internalError(c)
		}
		return c.JSON(records)
	})

	router.Get(path+"/:id", func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return badRequest(c, "invalid id")
		}

		record, err := repo.GetByID(c.Context(), id)
		if err != nil {
			if repository.IsRecordNotFound(err) {
				return notFound(c, "record not found")
			}
			logger.Error("get %s/%s: %v", path, id, err)
			return internalError(c)
		}
		return c.JSON(record)
	})

	router.Post(path, func(c *fiber.Ctx) error {
		record := new(T)
		if err := c.BodyParser(record); err != nil {
			return badRequest(c, "invalid request body")
		}

		if err := (*record).Validate(); err != nil {
			return badRequest(c, err.Error())
		}

		created, err := repo.Create(c.Context(), record)
		if err != nil {
			logger.Error("create %s: %v", path, err)
			return conflict(c, "could not create record")
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	router.Put(path+"/:id", func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return badRequest(c, "invalid id")
		}

		if _, err := repo.GetByID(c.Context(), id); err != nil {
			if repository.IsRecordNotFound(err) {
				return notFound(c, "record not found")
			}
			logger.Error("get %s/%s: %v", path, id, err)
			return internalError(c)
		}

		record := new(T)
		if err := c.BodyParser(record); err != nil {
			return badRequest(c, "invalid request body")
		}

		if err := (*record).Validate(); err != nil {
			return badRequest(c, err.Error())
		}

		updated, err := repo.UpdateByID(c.Context(), id, record)
		if err != nil {
			logger.Error("update %s/%s: %v", path, id, err)
			return internalError(c)
		}
		return c.JSON(updated)
	})

	router.Delete(path+"/:id", func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return badRequest(c, "invalid id")
		}

		if err := repo.DeleteByID(c.Context(), id); err != nil {
			if repository.IsRecordNotFound(err) {
				return notFound(c, "record not found")
			}
			logger.Error("delete %s/%s: %v", path, id, err)
			return internalError(c)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
