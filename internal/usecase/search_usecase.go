package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/fadilmartias/talent-discovery/internal/apperr"
	"github.com/fadilmartias/talent-discovery/internal/dto"
	"github.com/fadilmartias/talent-discovery/internal/logger"
	"github.com/fadilmartias/talent-discovery/internal/model"
	"github.com/fadilmartias/talent-discovery/internal/service"
	"github.com/fadilmartias/talent-discovery/internal/util"
	"github.com/pgvector/pgvector-go"
)

// Similarity thresholds. Tunable constants, not structural invariants; both
// comparisons are inclusive (a score of exactly the threshold satisfies).
const (
	jobTitleThreshold     = 0.64
	keywordMatchThreshold = 0.64
)

// presignExpiry bounds download links handed out with a full record.
const presignExpiry = 15 * time.Minute

type SearchUsecase struct {
	resumes  ResumeStore
	embedder service.EmbeddingServiceInterface
	storage  service.ObjectStorageInterface
}

func NewSearchUsecase(resumes ResumeStore, embedder service.EmbeddingServiceInterface, storage service.ObjectStorageInterface) *SearchUsecase {
	return &SearchUsecase{resumes: resumes, embedder: embedder, storage: storage}
}

// queryCategory pairs one category's query terms with an accessor for the
// stored embeddings of a candidate in that category.
type queryCategory struct {
	name    string
	terms   []dto.KeywordOption
	vectors []pgvector.Vector // parallel to terms, filled before matching
	stored  func(*model.Resume) []pgvector.Vector
}

// Search narrows candidates with the store's job-title similarity primitive,
// then evaluates every remaining candidate against each category's
// required/optional terms. A candidate survives only if every required term
// across all five categories has at least one stored embedding scoring at or
// above the match threshold. Coarse-filter order is preserved; no further
// ranking is applied.
func (uc *SearchUsecase) Search(ctx context.Context, req dto.SearchResumeRequest) ([]dto.ResumeSummaryDTO, error) {
	if strings.TrimSpace(req.FolderID) == "" {
		return nil, apperr.NewValidation("folder_id is required")
	}

	candidates, err := uc.coarseFilter(ctx, req)
	if err != nil {
		return nil, err
	}

	categories := []queryCategory{
		{name: "awards", terms: req.Awards, stored: awardVectors},
		{name: "certificates", terms: req.Certificates, stored: certificationVectors},
		{name: "educations", terms: req.Educations, stored: educationVectors},
		{name: "languages", terms: req.Languages, stored: languageVectors},
		{name: "skills", terms: req.Skills, stored: skillVectors},
	}
	if err := uc.embedQueryTerms(ctx, categories); err != nil {
		return nil, apperr.NewEmbeddingFailed(err)
	}

	results := []dto.ResumeSummaryDTO{}
	for i := range candidates {
		if matchesAllRequired(&candidates[i], categories) {
			results = append(results, toSummaryDTO(&candidates[i]))
		}
	}

	logger.Debug().Int("candidates", len(candidates)).Int("matched", len(results)).
		Str("folder_id", req.FolderID).Msg("semantic search completed")
	return results, nil
}

// coarseFilter bounds the candidate set by job-title similarity when a job
// title was supplied, and degrades to a plain folder scan when it was not.
func (uc *SearchUsecase) coarseFilter(ctx context.Context, req dto.SearchResumeRequest) ([]model.Resume, error) {
	jobTitle := strings.TrimSpace(req.JobTitle)
	if jobTitle == "" {
		candidates, err := uc.resumes.FindByFolder(ctx, req.FolderID)
		if err != nil {
			return nil, apperr.NewStorageWrite(err)
		}
		return candidates, nil
	}

	vector, err := uc.embedder.Embed(ctx, jobTitle)
	if err != nil {
		return nil, apperr.NewEmbeddingFailed(err)
	}
	candidates, err := uc.resumes.SearchByJobTitle(ctx, req.FolderID, pgvector.NewVector(vector), jobTitleThreshold)
	if err != nil {
		return nil, apperr.NewStorageWrite(err)
	}
	return candidates, nil
}

// embedQueryTerms embeds every term of every category once, up front; terms
// are compared against many candidates and must not be re-embedded per
// candidate.
func (uc *SearchUsecase) embedQueryTerms(ctx context.Context, categories []queryCategory) error {
	for i := range categories {
		texts := make([]string, 0, len(categories[i].terms))
		for _, term := range categories[i].terms {
			texts = append(texts, term.Value)
		}
		if len(texts) == 0 {
			continue
		}
		vectors, err := uc.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return err
		}
		categories[i].vectors = make([]pgvector.Vector, len(vectors))
		for j, vector := range vectors {
			categories[i].vectors[j] = pgvector.NewVector(vector)
		}
	}
	return nil
}

// matchesAllRequired applies the boolean-AND filter: the first unsatisfied
// required term excludes the candidate; unsatisfied optional terms never do.
func matchesAllRequired(candidate *model.Resume, categories []queryCategory) bool {
	for _, category := range categories {
		stored := category.stored(candidate)
		for i, term := range category.terms {
			if !term.Required {
				continue
			}
			if !anyMatch(stored, category.vectors[i]) {
				return false
			}
		}
	}
	return true
}

// anyMatch reports whether any stored embedding scores at or above the match
// threshold against the query vector. An empty stored side never matches.
func anyMatch(stored []pgvector.Vector, query pgvector.Vector) bool {
	queryVec := query.Slice()
	for _, vector := range stored {
		if util.CosineSimilarity(vector.Slice(), queryVec) >= keywordMatchThreshold {
			return true
		}
	}
	return false
}

// Keywords serves query-builder suggestions for one category type.
func (uc *SearchUsecase) Keywords(ctx context.Context, keywordType, search string) ([]string, error) {
	if !slices.Contains(model.KeywordTypes, keywordType) {
		return nil, apperr.NewValidation("type must be one of: " + strings.Join(model.KeywordTypes, ", "))
	}
	return uc.resumes.SearchKeywords(ctx, keywordType, search)
}

// DownloadURL returns a time-limited link to the stored original document.
func (uc *SearchUsecase) DownloadURL(ctx context.Context, resume *model.Resume) (string, error) {
	return uc.storage.PresignedResumeURL(ctx, resume.ResumeFilePath, presignExpiry)
}

func toSummaryDTO(resume *model.Resume) dto.ResumeSummaryDTO {
	return dto.ResumeSummaryDTO{
		ID:                  resume.ID.String(),
		FolderID:            resume.FolderID.String(),
		FullName:            resume.FullName,
		Email:               resume.Email,
		PhoneNumber:         resume.PhoneNumber,
		JobTitle:            resume.JobTitle,
		SummaryOrObjectives: resume.SummaryOrObjectives,
		ResumeThumbnailURL:  resume.ResumeThumbnailURL,
		ResumeFilePath:      resume.ResumeFilePath,
	}
}

func awardVectors(resume *model.Resume) []pgvector.Vector {
	vectors := make([]pgvector.Vector, 0, len(resume.Awards))
	for _, award := range resume.Awards {
		vectors = append(vectors, award.TitleEmbedding)
	}
	return vectors
}

func certificationVectors(resume *model.Resume) []pgvector.Vector {
	vectors := make([]pgvector.Vector, 0, len(resume.Certifications))
	for _, cert := range resume.Certifications {
		vectors = append(vectors, cert.TitleEmbedding)
	}
	return vectors
}

func educationVectors(resume *model.Resume) []pgvector.Vector {
	vectors := make([]pgvector.Vector, 0, len(resume.Educations))
	for _, edu := range resume.Educations {
		vectors = append(vectors, edu.NameEmbedding)
	}
	return vectors
}

func languageVectors(resume *model.Resume) []pgvector.Vector {
	vectors := make([]pgvector.Vector, 0, len(resume.Languages))
	for _, language := range resume.Languages {
		vectors = append(vectors, language.NameEmbedding)
	}
	return vectors
}

func skillVectors(resume *model.Resume) []pgvector.Vector {
	vectors := make([]pgvector.Vector, 0, len(resume.Skills))
	for _, skill := range resume.Skills {
		vectors = append(vectors, skill.NameEmbedding)
	}
	return vectors
}
