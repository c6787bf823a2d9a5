package controller

import (
	"io"

	"ask-backend/internal/apperrors"
	"ask-backend/internal/dto"
	"ask-backend/internal/pkg/serverutils"
	"ask-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	AnalyzePDF(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	GenerateFlashcards(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	chatService     service.IChatService
}

func NewDocumentController(
	documentService service.IDocumentService,
	chatService service.IChatService,
) IDocumentController {
	return &documentController{
		documentService: documentService,
		chatService:     chatService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Post("/analyze_pdf", c.AnalyzePDF)
	r.Post("/chat", c.Chat)
	r.Post("/generate_flashcards", c.GenerateFlashcards)
	r.Get("/session/:id", c.ShowSession)
	r.Delete("/session/:id", c.DeleteSession)
}

func (c *documentController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

func (c *documentController) AnalyzePDF(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperrors.NewValidation("No file part in the request")
	}
	if fileHeader.Filename == "" {
		return apperrors.NewValidation("No selected file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewExtraction("Failed to read uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewExtraction("Failed to read uploaded file", err)
	}

	res, err := c.documentService.AnalyzeUpload(ctx.Context(), fileHeader.Filename, data)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *documentController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	answer, err := c.chatService.Answer(ctx.Context(), req.SessionID, req.Question)
	if err != nil {
		return err
	}
	return ctx.JSON(dto.ChatResponse{Answer: answer})
}

func (c *documentController) GenerateFlashcards(ctx *fiber.Ctx) error {
	var req dto.GenerateFlashcardsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	result, err := c.chatService.GenerateFlashcards(ctx.Context(), req.SessionID, req.Count)
	if err != nil {
		return err
	}
	return ctx.JSON(dto.FlashcardsResponse{
		Flashcards: result.Cards,
		Source:     string(result.Source),
		Reason:     result.Reason,
	})
}

func (c *documentController) ShowSession(ctx *fiber.Ctx) error {
	res, err := c.documentService.SessionInfo(ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *documentController) DeleteSession(ctx *fiber.Ctx) error {
	if err := c.documentService.DeleteSession(ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"status": "deleted"})
}
