package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kritagya/pharmacare-api/internal/application/auth"
	"github.com/kritagya/pharmacare-api/internal/application/billing"
	"github.com/kritagya/pharmacare-api/internal/application/draft"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	Registry  *draft.Registry
	Committer *billing.Committer
	QueryUC   *billing.DocumentQueryUseCase
	PDFUC     *billing.PDFUseCase
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer Token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Drafts (protected): the compose flow
	drafts := protected.Group("/drafts")
	draftHandler := NewDraftHandler(deps.Registry, deps.Committer)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Delete("/:id", draftHandler.Discard)
	drafts.Post("/:id/headers", draftHandler.AppendHeader)
	drafts.Delete("/:id/headers/:localID", draftHandler.RemoveHeader)
	drafts.Post("/:id/lines", draftHandler.AppendLine)
	drafts.Delete("/:id/lines/:localID", draftHandler.RemoveLine)
	drafts.Post("/:id/payments", draftHandler.AppendPayment)
	drafts.Delete("/:id/payments/:localID", draftHandler.RemovePayment)
	drafts.Put("/:id/step", draftHandler.SetStep)
	drafts.Post("/:id/reset", draftHandler.Reset)
	drafts.Post("/:id/commit", draftHandler.Commit)

	// Documents (protected): committed, read-only
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.QueryUC, deps.PDFUC)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.Get)
	documents.Get("/:id/pdf", documentHandler.DownloadPDF)
	documents.Get("/:id/export.xml", documentHandler.ExportXML)
}
