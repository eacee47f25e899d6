package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fadilmartias/talent-discovery/internal/apperr"
	"github.com/fadilmartias/talent-discovery/internal/dto"
	"github.com/fadilmartias/talent-discovery/internal/model"
)

type fakeResumeStore struct {
	existing   *model.Resume
	raceWinner *model.Resume
	findCalls  int
	findErr    error

	created   *model.Resume
	createErr error

	keywords   map[string][]string
	keywordErr error

	folderResumes []model.Resume
	titleMatches  []model.Resume
	lastThreshold float64
}

func (s *fakeResumeStore) FindByHash(ctx context.Context, hash string) (*model.Resume, error) {
	s.findCalls++
	if s.findCalls == 1 {
		return s.existing, s.findErr
	}
	return s.raceWinner, nil
}

func (s *fakeResumeStore) CreateWithChildren(ctx context.Context, resume *model.Resume) error {
	if s.createErr != nil {
		return s.createErr
	}
	resume.ID = uuid.New()
	s.created = resume
	return nil
}

func (s *fakeResumeStore) GetByID(ctx context.Context, id string) (*model.Resume, error) {
	if s.created == nil || s.created.ID.String() != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.created, nil
}

func (s *fakeResumeStore) FindByFolder(ctx context.Context, folderID string) ([]model.Resume, error) {
	return s.folderResumes, nil
}

func (s *fakeResumeStore) SearchByJobTitle(ctx context.Context, folderID string, embedding pgvector.Vector, threshold float64) ([]model.Resume, error) {
	s.lastThreshold = threshold
	return s.titleMatches, nil
}

func (s *fakeResumeStore) UpsertKeywords(ctx context.Context, keywordType string, values []string) error {
	if s.keywordErr != nil {
		return s.keywordErr
	}
	if s.keywords == nil {
		s.keywords = map[string][]string{}
	}
	s.keywords[keywordType] = append(s.keywords[keywordType], values...)
	return nil
}

func (s *fakeResumeStore) SearchKeywords(ctx context.Context, keywordType, search string) ([]string, error) {
	return s.keywords[keywordType], nil
}

type fakeParser struct {
	data *dto.ResumeData
	err  error
}

func (p *fakeParser) ParseResume(ctx context.Context, content string) (*dto.ResumeData, error) {
	return p.data, p.err
}

type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

func (e *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		v, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}

type fakeStorage struct {
	uploadedResume bool
	uploadedThumb  bool
	removed        bool
	uploadErr      error
	thumbErr       error
}

func (s *fakeStorage) UploadResume(ctx context.Context, folderID, hash string, data []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploadedResume = true
	return "folder_" + folderID + "/resume_" + hash + ".pdf", nil
}

func (s *fakeStorage) UploadThumbnail(ctx context.Context, folderID, hash string, data []byte) (string, error) {
	if s.thumbErr != nil {
		return "", s.thumbErr
	}
	s.uploadedThumb = true
	return "http://storage/thumbnail_" + hash + ".png", nil
}

func (s *fakeStorage) PresignedResumeURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return "http://storage/presigned/" + objectPath, nil
}

func (s *fakeStorage) RemoveUploads(ctx context.Context, folderID, hash string) {
	s.removed = true
}

func (s *fakeStorage) RemoveFolderObjects(ctx context.Context, folderID string) error {
	return nil
}

type fakeExtractor struct {
	text       string
	textErr    error
	thumb      []byte
	thumbErr   error
	textCalled bool
}

func (e *fakeExtractor) ExtractText(pdf []byte) (string, error) {
	e.textCalled = true
	return e.text, e.textErr
}

func (e *fakeExtractor) ExtractThumbnail(pdf []byte) ([]byte, error) {
	return e.thumb, e.thumbErr
}

func strPtr(s string) *string { return &s }

func validResumeData() *dto.ResumeData {
	return &dto.ResumeData{
		BasicInfo: &dto.BasicInfo{
			FullName:            "Jane Doe",
			Email:               "jane@example.com",
			PhoneNumber:         "+123456789",
			JobTitle:            strPtr("Backend Engineer"),
			LinkedInMainPageURL: strPtr("https://linkedin.com/in/janedoe"),
		},
		Skills:         []string{"Go", "PostgreSQL"},
		Languages:      []string{"English"},
		Awards:         []dto.Award{{Title: "Hackathon Winner"}, {Title: "Dean's List"}},
		Certifications: []dto.Certification{{Title: "CKA"}},
		Educations: []dto.Education{
			{EducationName: "MIT", Major: "CS", StartDate: "2015-09-01"},
		},
		WorkExperiences: []dto.WorkExperience{
			{CompanyName: "Acme", JobTitle: "Engineer", StartDate: "2019-01-01"},
		},
		ProjectExperiences: []dto.ProjectExperience{
			{ProjectName: "Pipeline", Description: "ETL", StartDate: "2020-01-01"},
		},
	}
}

func validInput() UploadInput {
	return UploadInput{
		FolderID:    uuid.NewString(),
		FileName:    "resume.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 fake content"),
	}
}

func newTestIngest(store *fakeResumeStore, parser *fakeParser, storage *fakeStorage, extractor *fakeExtractor) *IngestUsecase {
	return NewIngestUsecase(store, parser, &fakeEmbedder{}, storage, extractor)
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		input    UploadInput
		wantType string
	}{
		{"missing file", UploadInput{ContentType: "application/pdf"}, apperr.TypeFileMissing},
		{"oversized file", UploadInput{ContentType: "application/pdf", Data: make([]byte, maxFileSize+1)}, apperr.TypeFileSize},
		{"unsupported type", UploadInput{ContentType: "text/html", Data: []byte("x")}, apperr.TypeFileType},
		{"exactly max size", UploadInput{ContentType: "application/pdf", Data: make([]byte, maxFileSize)}, ""},
		{"png allowed", UploadInput{ContentType: "image/png", Data: []byte("x")}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.input)
			if tt.wantType == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.IsType(err, tt.wantType))
			}
		})
	}
}

func TestCalculateHash(t *testing.T) {
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", CalculateHash([]byte("hello")))
	assert.Equal(t, CalculateHash([]byte("same")), CalculateHash([]byte("same")))
	assert.NotEqual(t, CalculateHash([]byte("a")), CalculateHash([]byte("b")))
}

func TestIngestRejectsInvalidFolderID(t *testing.T) {
	uc := newTestIngest(&fakeResumeStore{}, &fakeParser{}, &fakeStorage{}, &fakeExtractor{})
	in := validInput()
	in.FolderID = "not-a-uuid"

	_, err := uc.Ingest(context.Background(), in)
	assert.True(t, apperr.IsType(err, apperr.TypeValidation))
}

func TestIngestRejectsDuplicateHash(t *testing.T) {
	existing := &model.Resume{ID: uuid.New()}
	store := &fakeResumeStore{existing: existing}
	extractor := &fakeExtractor{text: "text"}
	uc := newTestIngest(store, &fakeParser{data: validResumeData()}, &fakeStorage{}, extractor)

	_, err := uc.Ingest(context.Background(), validInput())
	require.True(t, apperr.IsType(err, apperr.TypeFileDuplicated))
	appErr, _ := apperr.As(err)
	assert.Equal(t, existing, appErr.Data)
	assert.False(t, extractor.textCalled)
}

func TestIngestEmptyContentAbortsBeforeWrites(t *testing.T) {
	store := &fakeResumeStore{}
	storage := &fakeStorage{}
	extractor := &fakeExtractor{textErr: apperr.NewContentEmpty()}
	uc := newTestIngest(store, &fakeParser{}, storage, extractor)

	_, err := uc.Ingest(context.Background(), validInput())
	assert.True(t, apperr.IsType(err, apperr.TypeContentEmpty))
	assert.False(t, storage.uploadedResume)
	assert.Nil(t, store.created)
}

func TestIngestNotAResumeAbortsBeforeWrites(t *testing.T) {
	store := &fakeResumeStore{}
	storage := &fakeStorage{}
	uc := newTestIngest(store, &fakeParser{err: apperr.NewNotAResume()}, storage, &fakeExtractor{text: "groceries"})

	_, err := uc.Ingest(context.Background(), validInput())
	assert.True(t, apperr.IsType(err, apperr.TypeNotAResume))
	assert.False(t, storage.uploadedResume)
	assert.Nil(t, store.created)
}

func TestIngestPersistsOneChildPerItem(t *testing.T) {
	store := &fakeResumeStore{}
	storage := &fakeStorage{}
	extractor := &fakeExtractor{text: "resume text", thumb: []byte("png")}
	uc := newTestIngest(store, &fakeParser{data: validResumeData()}, storage, extractor)

	resume, err := uc.Ingest(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, store.created)

	assert.Equal(t, "Jane Doe", resume.FullName)
	assert.Equal(t, "Backend Engineer", resume.JobTitle)
	require.NotNil(t, resume.JobTitleEmbedding)

	assert.Len(t, resume.Skills, 2)
	assert.Len(t, resume.Languages, 1)
	assert.Len(t, resume.Awards, 2)
	assert.Len(t, resume.Certifications, 1)
	assert.Len(t, resume.Educations, 1)
	assert.Len(t, resume.WorkExperiences, 1)
	assert.Len(t, resume.ProjectExperiences, 1)
	assert.Len(t, resume.References, 1)

	assert.Equal(t, "Go", resume.Skills[0].SkillName)
	assert.Equal(t, "PostgreSQL", resume.Skills[1].SkillName)
	assert.Equal(t, "Hackathon Winner", resume.Awards[0].Title)

	assert.True(t, storage.uploadedResume)
	assert.True(t, storage.uploadedThumb)

	assert.Equal(t, []string{"Backend Engineer"}, store.keywords[model.KeywordTypeJobTitle])
	assert.Equal(t, []string{"Go", "PostgreSQL"}, store.keywords[model.KeywordTypeSkill])
}

func TestIngestWithoutJobTitleLeavesEmbeddingNull(t *testing.T) {
	data := validResumeData()
	data.BasicInfo.JobTitle = nil
	store := &fakeResumeStore{}
	uc := newTestIngest(store, &fakeParser{data: data}, &fakeStorage{}, &fakeExtractor{text: "text"})

	resume, err := uc.Ingest(context.Background(), validInput())
	require.NoError(t, err)
	assert.Nil(t, resume.JobTitleEmbedding)
	assert.Empty(t, resume.JobTitle)
}

func TestIngestKeywordFailureReportsPartialIngestion(t *testing.T) {
	store := &fakeResumeStore{keywordErr: errors.New("keyword table down")}
	uc := newTestIngest(store, &fakeParser{data: validResumeData()}, &fakeStorage{}, &fakeExtractor{text: "text"})

	resume, err := uc.Ingest(context.Background(), validInput())
	require.True(t, apperr.IsType(err, apperr.TypePartialIngestion))
	require.NotNil(t, resume)
	assert.NotNil(t, store.created)

	appErr, _ := apperr.As(err)
	assert.Equal(t, map[string]string{"resume_id": resume.ID.String(), "category": "keywords"}, appErr.Data)
}

func TestIngestLostDuplicateRace(t *testing.T) {
	winner := &model.Resume{ID: uuid.New()}
	store := &fakeResumeStore{createErr: gorm.ErrDuplicatedKey, raceWinner: winner}
	storage := &fakeStorage{}
	uc := newTestIngest(store, &fakeParser{data: validResumeData()}, storage, &fakeExtractor{text: "text"})

	_, err := uc.Ingest(context.Background(), validInput())
	require.True(t, apperr.IsType(err, apperr.TypeFileDuplicated))
	appErr, _ := apperr.As(err)
	assert.Equal(t, winner, appErr.Data)
	assert.True(t, storage.removed)
}

func TestIngestCompensatesUploadsOnInsertFailure(t *testing.T) {
	store := &fakeResumeStore{createErr: errors.New("connection lost")}
	storage := &fakeStorage{}
	uc := newTestIngest(store, &fakeParser{data: validResumeData()}, storage, &fakeExtractor{text: "text"})

	_, err := uc.Ingest(context.Background(), validInput())
	assert.True(t, apperr.IsType(err, apperr.TypeStorageWrite))
	assert.True(t, storage.removed)
}

func TestGetResumeNotFound(t *testing.T) {
	uc := newTestIngest(&fakeResumeStore{}, &fakeParser{}, &fakeStorage{}, &fakeExtractor{})

	_, err := uc.GetResume(context.Background(), uuid.NewString())
	assert.True(t, apperr.IsType(err, apperr.TypeNotFound))
}
