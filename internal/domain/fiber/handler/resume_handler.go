package handler

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fadilmartias/talent-discovery/internal/apperr"
	"github.com/fadilmartias/talent-discovery/internal/dto"
	"github.com/fadilmartias/talent-discovery/internal/logger"
	"github.com/fadilmartias/talent-discovery/internal/middleware"
	"github.com/fadilmartias/talent-discovery/internal/usecase"
	"github.com/fadilmartias/talent-discovery/internal/util"
)

type ResumeHandler struct {
	ingest *usecase.IngestUsecase
	search *usecase.SearchUsecase
}

func NewResumeHandler(ingest *usecase.IngestUsecase, search *usecase.SearchUsecase) *ResumeHandler {
	return &ResumeHandler{ingest: ingest, search: search}
}

func (h *ResumeHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/resume/upload", middleware.RateLimiter(10, 1*time.Minute), h.Upload)
	app.Post("/resume/search", h.Search)
	app.Get("/resume/keywords", h.Keywords)
	app.Get("/resume/:id", h.Get)
}

// Upload accepts one multipart document under field "resume" plus a
// "folder_id" form value and runs the full ingestion pipeline on it.
func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return util.AppErrorResponse(c, apperr.NewFileMissing())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return util.AppErrorResponse(c, apperr.NewStorageWrite(err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return util.AppErrorResponse(c, apperr.NewStorageWrite(err))
	}

	resume, err := h.ingest.Ingest(c.Context(), usecase.UploadInput{
		FolderID:    c.FormValue("folder_id"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return util.AppErrorResponse(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success upload resume",
		Data:    resume,
	})
}

// Get returns a stored resume with all sub-records plus a time-limited
// download link for the original document.
func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	resume, err := h.ingest.GetResume(c.Context(), c.Params("id"))
	if err != nil {
		return util.AppErrorResponse(c, err)
	}

	fileURL, err := h.search.DownloadURL(c.Context(), resume)
	if err != nil {
		logger.Warn().Err(err).Str("resume_id", resume.ID.String()).Msg("failed to presign resume file")
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get resume",
		Data:    fiber.Map{"resume": resume, "resume_file_url": fileURL},
	})
}

func (h *ResumeHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.AppErrorResponse(c, apperr.NewValidation("invalid request body"))
	}

	results, err := h.search.Search(c.Context(), req)
	if err != nil {
		return util.AppErrorResponse(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success search resumes",
		Data:    results,
	})
}

func (h *ResumeHandler) Keywords(c *fiber.Ctx) error {
	values, err := h.search.Keywords(c.Context(), c.Query("type"), c.Query("search"))
	if err != nil {
		return util.AppErrorResponse(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get keywords",
		Data:    values,
	})
}
