package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadilmartias/talent-discovery/internal/apperr"
	"github.com/fadilmartias/talent-discovery/internal/model"
)

type fakeFolderStore struct {
	folders   []model.Folder
	total     int64
	created   *model.Folder
	renamedTo string
	deletedID string
}

func (s *fakeFolderStore) List(ctx context.Context, page, size int, searchValue string) ([]model.Folder, int64, error) {
	return s.folders, s.total, nil
}

func (s *fakeFolderStore) Create(ctx context.Context, folder *model.Folder) error {
	folder.ID = uuid.New()
	s.created = folder
	return nil
}

func (s *fakeFolderStore) UpdateName(ctx context.Context, folderID, folderName string) error {
	s.renamedTo = folderName
	return nil
}

func (s *fakeFolderStore) Delete(ctx context.Context, folderID string) error {
	s.deletedID = folderID
	return nil
}

func TestFolderCreateRejectsBlankName(t *testing.T) {
	uc := NewFolderUsecase(&fakeFolderStore{}, &fakeStorage{})

	_, err := uc.Create(context.Background(), "   ")
	assert.True(t, apperr.IsType(err, apperr.TypeValidation))
}

func TestFolderCreateTrimsName(t *testing.T) {
	store := &fakeFolderStore{}
	uc := NewFolderUsecase(store, &fakeStorage{})

	folder, err := uc.Create(context.Background(), "  Q3 Hiring ")
	require.NoError(t, err)
	assert.Equal(t, "Q3 Hiring", folder.FolderName)
	assert.NotNil(t, store.created)
}

func TestFolderRenameValidatesID(t *testing.T) {
	uc := NewFolderUsecase(&fakeFolderStore{}, &fakeStorage{})

	err := uc.Rename(context.Background(), "not-a-uuid", "New Name")
	assert.True(t, apperr.IsType(err, apperr.TypeValidation))
}

func TestFolderDelete(t *testing.T) {
	store := &fakeFolderStore{}
	uc := NewFolderUsecase(store, &fakeStorage{})

	id := uuid.NewString()
	require.NoError(t, uc.Delete(context.Background(), id))
	assert.Equal(t, id, store.deletedID)
}
