package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fadilmartias/talent-discovery/internal/apperr"
	"github.com/fadilmartias/talent-discovery/internal/response"
	"github.com/fadilmartias/talent-discovery/internal/usecase"
	"github.com/fadilmartias/talent-discovery/internal/util"
)

type FolderHandler struct {
	uc *usecase.FolderUsecase
}

func NewFolderHandler(uc *usecase.FolderUsecase) *FolderHandler {
	return &FolderHandler{uc: uc}
}

func (h *FolderHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/folder/all", h.List)
	app.Post("/folder/create", h.Create)
	app.Patch("/folder/update", h.Update)
	app.Delete("/folder/remove/:folder_id", h.Delete)
}

func (h *FolderHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	size := c.QueryInt("size", 10)
	search := c.Query("search_value")

	folders, total, err := h.uc.List(c.Context(), page, size, search)
	if err != nil {
		return util.AppErrorResponse(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get folders",
		Data:       folders,
		Pagination: response.NewPagination(page, size, len(folders), total),
	})
}

type createFolderRequest struct {
	FolderName string `json:"folder_name"`
}

func (h *FolderHandler) Create(c *fiber.Ctx) error {
	var req createFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return util.AppErrorResponse(c, apperr.NewValidation("invalid request body"))
	}

	folder, err := h.uc.Create(c.Context(), req.FolderName)
	if err != nil {
		return util.AppErrorResponse(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create folder",
		Data:    folder,
	})
}

type updateFolderRequest struct {
	FolderID   string `json:"folder_id"`
	FolderName string `json:"folder_name"`
}

func (h *FolderHandler) Update(c *fiber.Ctx) error {
	var req updateFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return util.AppErrorResponse(c, apperr.NewValidation("invalid request body"))
	}

	if err := h.uc.Rename(c.Context(), req.FolderID, req.FolderName); err != nil {
		return util.AppErrorResponse(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update folder",
	})
}

func (h *FolderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("folder_id")); err != nil {
		return util.AppErrorResponse(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete folder",
	})
}
