package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/fadilmartias/talent-discovery/internal/apperr"
	"github.com/fadilmartias/talent-discovery/internal/logger"
	"github.com/fadilmartias/talent-discovery/internal/model"
	"github.com/fadilmartias/talent-discovery/internal/service"
)

// FolderStore is what folder management needs from the database.
type FolderStore interface {
	List(ctx context.Context, page, size int, searchValue string) ([]model.Folder, int64, error)
	Create(ctx context.Context, folder *model.Folder) error
	UpdateName(ctx context.Context, folderID, folderName string) error
	Delete(ctx context.Context, folderID string) error
}

type FolderUsecase struct {
	folders FolderStore
	storage service.ObjectStorageInterface
}

func NewFolderUsecase(folders FolderStore, storage service.ObjectStorageInterface) *FolderUsecase {
	return &FolderUsecase{folders: folders, storage: storage}
}

func (uc *FolderUsecase) List(ctx context.Context, page, size int, searchValue string) ([]model.Folder, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}
	folders, total, err := uc.folders.List(ctx, page, size, searchValue)
	if err != nil {
		return nil, 0, apperr.NewStorageWrite(err)
	}
	return folders, total, nil
}

func (uc *FolderUsecase) Create(ctx context.Context, folderName string) (*model.Folder, error) {
	folderName = strings.TrimSpace(folderName)
	if folderName == "" {
		return nil, apperr.NewValidation("folder_name is required")
	}
	folder := &model.Folder{FolderName: folderName}
	if err := uc.folders.Create(ctx, folder); err != nil {
		return nil, apperr.NewStorageWrite(err)
	}
	return folder, nil
}

func (uc *FolderUsecase) Rename(ctx context.Context, folderID, folderName string) error {
	if _, err := uuid.Parse(folderID); err != nil {
		return apperr.NewValidation("folder_id must be a valid UUID")
	}
	folderName = strings.TrimSpace(folderName)
	if folderName == "" {
		return apperr.NewValidation("folder_name is required")
	}
	if err := uc.folders.UpdateName(ctx, folderID, folderName); err != nil {
		return apperr.NewStorageWrite(err)
	}
	return nil
}

// Delete removes the folder and its resume records, then sweeps the folder's
// object prefixes. A failed sweep leaves orphaned objects behind and is
// reported so the caller can retry.
func (uc *FolderUsecase) Delete(ctx context.Context, folderID string) error {
	if _, err := uuid.Parse(folderID); err != nil {
		return apperr.NewValidation("folder_id must be a valid UUID")
	}
	if err := uc.folders.Delete(ctx, folderID); err != nil {
		return apperr.NewStorageWrite(err)
	}
	if err := uc.storage.RemoveFolderObjects(ctx, folderID); err != nil {
		logger.Warn().Err(err).Str("folder_id", folderID).Msg("folder deleted but object sweep failed")
		return apperr.NewStorageWrite(err)
	}
	return nil
}
