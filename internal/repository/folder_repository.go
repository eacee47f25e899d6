package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fadilmartias/talent-discovery/internal/model"
)

type FolderRepository struct {
	db *gorm.DB
}

func NewFolderRepository(db *gorm.DB) *FolderRepository {
	return &FolderRepository{db}
}

// List returns one page of folders whose name contains searchValue
// (case-insensitive), plus the total match count for pagination.
func (r *FolderRepository) List(ctx context.Context, page, size int, searchValue string) ([]model.Folder, int64, error) {
	var folders []model.Folder
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Folder{}).
		Where("folder_name ILIKE ?", "%"+searchValue+"%")
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&folders).Error
	return folders, total, err
}

func (r *FolderRepository) Create(ctx context.Context, folder *model.Folder) error {
	return r.db.WithContext(ctx).Create(folder).Error
}

func (r *FolderRepository) UpdateName(ctx context.Context, folderID, folderName string) error {
	return r.db.WithContext(ctx).
		Model(&model.Folder{}).
		Where("id = ?", folderID).
		Update("folder_name", folderName).Error
}

// Delete removes the folder and its resume roots in one transaction; category
// sub-records cascade from the resume foreign keys. Bucket objects are the
// caller's job.
func (r *FolderRepository) Delete(ctx context.Context, folderID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Resume{}, "folder_id = ?", folderID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Folder{}, "id = ?", folderID).Error
	})
}
