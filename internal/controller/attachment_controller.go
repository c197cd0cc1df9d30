package controller

import (
	"strings"

	"notevault-be/internal/service"
	"notevault-be/pkg/bytestream"

	"github.com/gofiber/fiber/v2"
)

type IAttachmentController interface {
	RegisterRoutes(r fiber.Router)
	Download(ctx *fiber.Ctx) error
}

type attachmentController struct {
	noteService      service.INoteService
	forwardMediaType bool
}

func NewAttachmentController(noteService service.INoteService, forwardMediaType bool) IAttachmentController {
	return &attachmentController{
		noteService:      noteService,
		forwardMediaType: forwardMediaType,
	}
}

func (c *attachmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/attachments")
	h.Get(":id", c.Download)
}

func (c *attachmentController) Download(ctx *fiber.Ctx) error {
	entry, err := c.noteService.GetAttachment(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	contentType := fiber.MIMEOctetStream
	if c.forwardMediaType && entry.Type != "" {
		contentType = entry.Type
	}

	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderContentDisposition, dispositionHeader(entry.Name))

	it := bytestream.NewChunkIterator(entry.Content, 0)
	return ctx.SendStream(it.Reader(), it.Len())
}

// dispositionHeader always quotes the stored file name and escapes quote and
// backslash characters; a crafted name cannot break out of the header value.
func dispositionHeader(name string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", "")
	return `attachment; filename="` + r.Replace(name) + `"`
}
