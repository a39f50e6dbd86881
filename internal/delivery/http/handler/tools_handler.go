package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/Keita-tri/my-transit-mcp/internal/pkg/errors"
	"github.com/Keita-tri/my-transit-mcp/internal/tools"
)

// ToolsHandler exposes the tool registry over HTTP: discovery plus
// invocation. Domain failures come back as normally-shaped tool results
// with the error flag set; only a broken request envelope or an unknown
// tool name produces a transport-level error response.
type ToolsHandler struct {
	registry *tools.Registry
	logger   *zap.Logger
}

func NewToolsHandler(registry *tools.Registry, logger *zap.Logger) *ToolsHandler {
	return &ToolsHandler{
		registry: registry,
		logger:   logger,
	}
}

// toolDescriptor is the discovery view of one tool.
type toolDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// List handles GET /api/v1/tools.
func (h *ToolsHandler) List(c *fiber.Ctx) error {
	registered := h.registry.List()
	descriptors := make([]toolDescriptor, 0, len(registered))
	for _, tool := range registered {
		descriptors = append(descriptors, toolDescriptor{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}
	return c.JSON(fiber.Map{"tools": descriptors})
}

// Call handles POST /api/v1/tools/:name.
func (h *ToolsHandler) Call(c *fiber.Ctx) error {
	name := c.Params("name")

	tool, err := h.registry.Get(name)
	if err != nil {
		return sendAppError(c, err)
	}

	body := c.Body()
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		return sendAppError(c, apperrors.ErrInvalidRequest)
	}

	result := tool.Handler(c.UserContext(), json.RawMessage(body))
	if result.IsError {
		h.logger.Warn("Tool returned error result", zap.String("tool", name))
	}

	return c.JSON(result)
}

func sendAppError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return c.Status(appErr.StatusCode).JSON(fiber.Map{"error": appErr})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": apperrors.ErrInternalServer})
}
