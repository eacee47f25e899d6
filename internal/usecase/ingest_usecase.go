package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/fadilmartias/talent-discovery/internal/apperr"
	"github.com/fadilmartias/talent-discovery/internal/dto"
	"github.com/fadilmartias/talent-discovery/internal/logger"
	"github.com/fadilmartias/talent-discovery/internal/model"
	"github.com/fadilmartias/talent-discovery/internal/service"
)

const maxFileSize = 5 * 1024 * 1024 // 5 MiB

var supportedContentTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"application/pdf": true,
}

// ResumeStore is what the pipeline needs from the record store.
type ResumeStore interface {
	FindByHash(ctx context.Context, hash string) (*model.Resume, error)
	CreateWithChildren(ctx context.Context, resume *model.Resume) error
	GetByID(ctx context.Context, id string) (*model.Resume, error)
	FindByFolder(ctx context.Context, folderID string) ([]model.Resume, error)
	SearchByJobTitle(ctx context.Context, folderID string, embedding pgvector.Vector, threshold float64) ([]model.Resume, error)
	UpsertKeywords(ctx context.Context, keywordType string, values []string) error
	SearchKeywords(ctx context.Context, keywordType, search string) ([]string, error)
}

// ContentExtractor converts a PDF byte stream into linear text and a
// first-page thumbnail.
type ContentExtractor interface {
	ExtractText(pdf []byte) (string, error)
	ExtractThumbnail(pdf []byte) ([]byte, error)
}

// UploadInput is one uploaded document plus its declared metadata.
type UploadInput struct {
	FolderID    string
	FileName    string
	ContentType string
	Data        []byte
}

type IngestUsecase struct {
	resumes   ResumeStore
	parser    service.ResumeParserInterface
	embedder  service.EmbeddingServiceInterface
	storage   service.ObjectStorageInterface
	extractor ContentExtractor
}

func NewIngestUsecase(
	resumes ResumeStore,
	parser service.ResumeParserInterface,
	embedder service.EmbeddingServiceInterface,
	storage service.ObjectStorageInterface,
	extractor ContentExtractor,
) *IngestUsecase {
	return &IngestUsecase{
		resumes:   resumes,
		parser:    parser,
		embedder:  embedder,
		storage:   storage,
		extractor: extractor,
	}
}

// ValidateUpload enforces the upload rules: a file must be present, sized in
// (0, 5 MiB], and declared as png, jpeg or pdf.
func ValidateUpload(in UploadInput) error {
	if len(in.Data) == 0 {
		return apperr.NewFileMissing()
	}
	if int64(len(in.Data)) > maxFileSize {
		return apperr.NewFileSizeUnsupported()
	}
	if !supportedContentTypes[in.ContentType] {
		return apperr.NewFileTypeUnsupported(in.ContentType)
	}
	return nil
}

// CalculateHash is the content-address of a document: MD5 hex over raw bytes.
// Not collision resistant, and deliberately so; the dedup index only needs
// identical bytes to map to identical keys.
func CalculateHash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// Ingest runs the full pipeline: validate, dedup, extract, parse, embed,
// upload, persist. Nothing is written anywhere before extraction and parsing
// succeed; object uploads precede the record transaction and are compensated
// if it fails.
func (uc *IngestUsecase) Ingest(ctx context.Context, in UploadInput) (*model.Resume, error) {
	if err := ValidateUpload(in); err != nil {
		return nil, err
	}
	folderID, err := uuid.Parse(in.FolderID)
	if err != nil {
		return nil, apperr.NewValidation("folder_id must be a valid UUID")
	}

	hash := CalculateHash(in.Data)
	existing, err := uc.resumes.FindByHash(ctx, hash)
	if err != nil {
		return nil, apperr.NewStorageWrite(err)
	}
	if existing != nil {
		return nil, apperr.NewDuplicate(existing)
	}

	content, err := uc.extractor.ExtractText(in.Data)
	if err != nil {
		return nil, err
	}

	data, err := uc.parser.ParseResume(ctx, content)
	if err != nil {
		return nil, err
	}

	thumbnail, err := uc.extractor.ExtractThumbnail(in.Data)
	if err != nil {
		return nil, err
	}

	embeddings, err := uc.embedResumeFields(ctx, data)
	if err != nil {
		return nil, apperr.NewEmbeddingFailed(err)
	}

	filePath, err := uc.storage.UploadResume(ctx, in.FolderID, hash, in.Data)
	if err != nil {
		return nil, apperr.NewStorageWrite(err)
	}
	thumbnailURL, err := uc.storage.UploadThumbnail(ctx, in.FolderID, hash, thumbnail)
	if err != nil {
		uc.storage.RemoveUploads(ctx, in.FolderID, hash)
		return nil, apperr.NewStorageWrite(err)
	}

	resume := buildResumeRecord(folderID, hash, filePath, thumbnailURL, data, embeddings)
	if err := uc.resumes.CreateWithChildren(ctx, resume); err != nil {
		uc.storage.RemoveUploads(ctx, in.FolderID, hash)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent upload of the same bytes; the
			// unique hash index is the authority, not our earlier lookup.
			if winner, findErr := uc.resumes.FindByHash(ctx, hash); findErr == nil && winner != nil {
				return nil, apperr.NewDuplicate(winner)
			}
			return nil, apperr.NewDuplicate(nil)
		}
		return nil, apperr.NewStorageWrite(err)
	}

	logger.Info().Str("resume_id", resume.ID.String()).Str("hash", hash).
		Int("skills", len(resume.Skills)).Int("work_experiences", len(resume.WorkExperiences)).
		Msg("resume ingested")

	if err := uc.upsertResumeKeywords(ctx, data); err != nil {
		return resume, apperr.NewPartialIngestion(resume.ID.String(), "keywords", err)
	}
	return resume, nil
}

// GetResume returns the stored record with all category sub-records.
func (uc *IngestUsecase) GetResume(ctx context.Context, id string) (*model.Resume, error) {
	resume, err := uc.resumes.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("Resume not found")
	}
	if err != nil {
		return nil, err
	}
	return resume, nil
}

// resumeEmbeddings collects the per-field vectors of one document, each slice
// parallel to its source list.
type resumeEmbeddings struct {
	jobTitle       []float32
	skills         [][]float32
	languages      [][]float32
	awards         [][]float32
	certifications [][]float32
	educations     [][]float32
}

// embedResumeFields fans out one batched embedding call per category; the
// fields of a single document are mutually independent.
func (uc *IngestUsecase) embedResumeFields(ctx context.Context, data *dto.ResumeData) (*resumeEmbeddings, error) {
	emb := &resumeEmbeddings{}
	g, gctx := errgroup.WithContext(ctx)

	embedBatch := func(texts []string, dst *[][]float32) {
		if len(texts) == 0 {
			return
		}
		g.Go(func() error {
			vectors, err := uc.embedder.EmbedBatch(gctx, texts)
			if err != nil {
				return err
			}
			*dst = vectors
			return nil
		})
	}

	if jobTitle := data.JobTitleValue(); jobTitle != "" {
		g.Go(func() error {
			vector, err := uc.embedder.Embed(gctx, jobTitle)
			if err != nil {
				return err
			}
			emb.jobTitle = vector
			return nil
		})
	}
	embedBatch(data.Skills, &emb.skills)
	embedBatch(data.Languages, &emb.languages)
	embedBatch(awardTitles(data.Awards), &emb.awards)
	embedBatch(certificationTitles(data.Certifications), &emb.certifications)
	embedBatch(educationNames(data.Educations), &emb.educations)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return emb, nil
}

// buildResumeRecord maps the extracted profile onto the persistent model,
// one sub-record per source item, in source order.
func buildResumeRecord(folderID uuid.UUID, hash, filePath, thumbnailURL string, data *dto.ResumeData, emb *resumeEmbeddings) *model.Resume {
	info := data.BasicInfo
	resume := &model.Resume{
		FolderID:            folderID,
		ResumeFileHash:      hash,
		ResumeFilePath:      filePath,
		ResumeThumbnailURL:  thumbnailURL,
		JobTitle:            data.JobTitleValue(),
		SummaryOrObjectives: stringValue(info.SummaryOrObjectives),
		FullName:            info.FullName,
		Email:               info.Email,
		PhoneNumber:         info.PhoneNumber,
		Address:             stringValue(info.Address),
	}
	if len(emb.jobTitle) > 0 {
		vector := pgvector.NewVector(emb.jobTitle)
		resume.JobTitleEmbedding = &vector
	}

	for _, link := range data.ReferenceLinks() {
		resume.References = append(resume.References, model.ResumeReference{ReferenceLink: link})
	}
	for i, award := range data.Awards {
		resume.Awards = append(resume.Awards, model.ResumeAward{
			Title:          award.Title,
			TitleEmbedding: pgvector.NewVector(emb.awards[i]),
			Date:           award.Date,
		})
	}
	for i, cert := range data.Certifications {
		resume.Certifications = append(resume.Certifications, model.ResumeCertification{
			Title:          cert.Title,
			TitleEmbedding: pgvector.NewVector(emb.certifications[i]),
			Date:           cert.Date,
		})
	}
	for i, edu := range data.Educations {
		resume.Educations = append(resume.Educations, model.ResumeEducation{
			Name:          edu.EducationName,
			NameEmbedding: pgvector.NewVector(emb.educations[i]),
			Major:         edu.Major,
			StartDate:     edu.StartDate,
			EndDate:       edu.EndDate,
			GPA:           edu.GPA,
		})
	}
	for i, language := range data.Languages {
		resume.Languages = append(resume.Languages, model.ResumeLanguage{
			LanguageName:  language,
			NameEmbedding: pgvector.NewVector(emb.languages[i]),
		})
	}
	for i, skill := range data.Skills {
		resume.Skills = append(resume.Skills, model.ResumeSkill{
			SkillName:     skill,
			NameEmbedding: pgvector.NewVector(emb.skills[i]),
		})
	}
	for _, work := range data.WorkExperiences {
		resume.WorkExperiences = append(resume.WorkExperiences, model.ResumeWorkExperience{
			CompanyName: work.CompanyName,
			JobTitle:    work.JobTitle,
			JobSummary:  work.JobSummary,
			StartDate:   work.StartDate,
			EndDate:     work.EndDate,
		})
	}
	for _, project := range data.ProjectExperiences {
		resume.ProjectExperiences = append(resume.ProjectExperiences, model.ResumeProjectExperience{
			ProjectName:      project.ProjectName,
			Description:      project.Description,
			Technologies:     project.Technologies,
			Responsibilities: project.Responsibilities,
			StartDate:        project.StartDate,
			EndDate:          project.EndDate,
			RepositoryURL:    project.RepositoryURL,
			DemoOrLiveURL:    project.DemoOrLiveURL,
		})
	}
	return resume
}

// upsertResumeKeywords feeds the suggestion table from the extracted values.
func (uc *IngestUsecase) upsertResumeKeywords(ctx context.Context, data *dto.ResumeData) error {
	sets := []struct {
		keywordType string
		values      []string
	}{
		{model.KeywordTypeJobTitle, nonEmpty(data.JobTitleValue())},
		{model.KeywordTypeSkill, data.Skills},
		{model.KeywordTypeLanguage, data.Languages},
		{model.KeywordTypeAward, awardTitles(data.Awards)},
		{model.KeywordTypeCertification, certificationTitles(data.Certifications)},
		{model.KeywordTypeEducation, educationNames(data.Educations)},
	}
	for _, set := range sets {
		if err := uc.resumes.UpsertKeywords(ctx, set.keywordType, set.values); err != nil {
			return err
		}
	}
	return nil
}

func awardTitles(awards []dto.Award) []string {
	titles := make([]string, 0, len(awards))
	for _, award := range awards {
		titles = append(titles, award.Title)
	}
	return titles
}

func certificationTitles(certs []dto.Certification) []string {
	titles := make([]string, 0, len(certs))
	for _, cert := range certs {
		titles = append(titles, cert.Title)
	}
	return titles
}

func educationNames(educations []dto.Education) []string {
	names := make([]string, 0, len(educations))
	for _, edu := range educations {
		names = append(names, edu.EducationName)
	}
	return names
}

func nonEmpty(value string) []string {
	if value == "" {
		return nil
	}
	return []string{value}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
