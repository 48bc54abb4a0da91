package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agentdesk/internal/auth"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/validation"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

var validate = validation.New()

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func okMessage(c *fiber.Ctx, message string, data any) error {
	body := fiber.Map{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(body)
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

// createdResult renders a procedure-backed create. A refused create is a 400
// carrying the procedure's message.
func createdResult(c *fiber.Ctx, res domain.MutationResult, idField string) error {
	if !res.Success {
		return apperrors.NewDomainError("OPERATION_FAILED", orDefault(res.Message, "create failed"), http.StatusBadRequest, nil)
	}
	return created(c, fiber.Map{"success": true, idField: res.ID, "message": res.Message})
}

// mutationResult renders update/delete outcomes; success=false means no active
// row matched and is reported as 404.
func mutationResult(c *fiber.Ctx, res domain.MutationResult, resource string) error {
	if !res.Success {
		return apperrors.NewDomainError("NOT_FOUND", orDefault(res.Message, resource+" not found"), http.StatusNotFound, nil)
	}
	return c.JSON(fiber.Map{"success": true, "message": res.Message})
}

func currentAgent(c *fiber.Ctx) (string, error) {
	id, ok := auth.AgentIDFromContext(c)
	if !ok || !validation.IsUUID(id) {
		return "", apperrors.NewUnauthorized("agent identity required")
	}
	return id, nil
}

func pathID(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if !validation.IsUUID(id) {
		return "", apperrors.NewValidationError("Invalid "+name+" format", map[string]any{name: id})
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return validate.Struct(dst)
}

func parseQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return apperrors.NewValidationError("invalid query parameters", nil)
	}
	return validate.Struct(dst)
}

func queryDate(c *fiber.Ctx, name string, required bool) (*domain.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		if required {
			return nil, apperrors.NewValidationError("Missing required fields: "+name, map[string]any{"missingFields": []string{name}})
		}
		return nil, nil
	}
	d, err := validation.ParseDate(raw)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid "+name+" format. Use YYYY-MM-DD", map[string]any{name: raw})
	}
	return &d, nil
}

func queryInt(c *fiber.Ctx, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(name+" must be an integer", map[string]any{name: raw})
	}
	return n, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
