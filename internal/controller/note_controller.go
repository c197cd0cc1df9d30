package controller

import (
	"strconv"
	"strings"

	"notevault-be/internal/dto"
	"notevault-be/internal/pkg/apperror"
	"notevault-be/internal/pkg/serverutils"
	"notevault-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	search := ctx.Query("search", "")

	res, err := c.noteService.List(ctx.Context(), search)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	res, err := c.noteService.Show(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	var req dto.SaveNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return bodyParseError(err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	var req dto.SaveNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return bodyParseError(err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	expectedVersion, err := parseExpectedVersion(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.Context(), ctx.Params("id"), &req, expectedVersion)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	if err := c.noteService.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.MessageResponse("Note deleted successfully"))
}

// bodyParseError keeps shape guards (like the attachments list check) intact
// while folding everything else into a generic 400.
func bodyParseError(err error) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.NewValidation("Invalid request body")
}

// parseExpectedVersion reads the optional If-Match header carrying the note
// version the client last saw. Absent header means last-writer-wins.
func parseExpectedVersion(ctx *fiber.Ctx) (*int64, error) {
	raw := strings.TrimSpace(ctx.Get(fiber.HeaderIfMatch))
	if raw == "" {
		return nil, nil
	}
	raw = strings.TrimPrefix(raw, "W/")
	raw = strings.Trim(raw, `"`)

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperror.NewValidation("Invalid If-Match header")
	}
	return &v, nil
}
