package handler

import (
	"path/filepath"
	"strings"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BackupHandler struct {
	service service.SnapshotService
}

func NewBackupHandler(s service.SnapshotService) *BackupHandler {
	return &BackupHandler{service: s}
}

type RestoreRequest struct {
	Name string `json:"name"`
}

// GET /api/v1/backups
func (h *BackupHandler) List(c *fiber.Ctx) error {
	backups, err := h.service.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(backups)
}

// POST /api/v1/backups
func (h *BackupHandler) Snapshot(c *fiber.Ctx) error {
	path := h.service.Snapshot(actor(c))
	if path == "" {
		return writeError(c, model.ErrIOFailure)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Backup created", "name": filepath.Base(path)})
}

// Restore only accepts a file name from the backup directory.
// POST /api/v1/backups/restore
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	var req RestoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid backup name"})
	}

	if !h.service.Restore(filepath.Join(h.service.Dir(), name), actor(c)) {
		return writeError(c, model.ErrIOFailure)
	}
	return c.JSON(fiber.Map{"message": "Store restored", "name": name})
}
