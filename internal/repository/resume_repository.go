package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fadilmartias/talent-discovery/internal/model"
)

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db}
}

// resumeAssociations are the child collections preloaded on every full read.
var resumeAssociations = []string{
	"References", "Awards", "Certifications", "Educations",
	"Languages", "Skills", "WorkExperiences", "ProjectExperiences",
}

func (r *ResumeRepository) withChildren(db *gorm.DB) *gorm.DB {
	for _, assoc := range resumeAssociations {
		db = db.Preload(assoc)
	}
	return db
}

// FindByHash looks up a previously ingested document by its content hash.
// Returns (nil, nil) on miss.
func (r *ResumeRepository) FindByHash(ctx context.Context, hash string) (*model.Resume, error) {
	var resume model.Resume
	err := r.db.WithContext(ctx).First(&resume, "resume_file_hash = ?", hash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// CreateWithChildren persists the root record and every category sub-record in
// one transaction: the root cannot commit without its children. Children are
// inserted per category in source-list order, one row per item.
func (r *ResumeRepository) CreateWithChildren(ctx context.Context, resume *model.Resume) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(resume).Error; err != nil {
			return err
		}

		for i := range resume.References {
			resume.References[i].ResumeID = resume.ID
		}
		for i := range resume.Awards {
			resume.Awards[i].ResumeID = resume.ID
		}
		for i := range resume.Certifications {
			resume.Certifications[i].ResumeID = resume.ID
		}
		for i := range resume.Educations {
			resume.Educations[i].ResumeID = resume.ID
		}
		for i := range resume.Languages {
			resume.Languages[i].ResumeID = resume.ID
		}
		for i := range resume.Skills {
			resume.Skills[i].ResumeID = resume.ID
		}
		for i := range resume.WorkExperiences {
			resume.WorkExperiences[i].ResumeID = resume.ID
		}
		for i := range resume.ProjectExperiences {
			resume.ProjectExperiences[i].ResumeID = resume.ID
		}

		if len(resume.References) > 0 {
			if err := tx.Create(&resume.References).Error; err != nil {
				return err
			}
		}
		if len(resume.Awards) > 0 {
			if err := tx.Create(&resume.Awards).Error; err != nil {
				return err
			}
		}
		if len(resume.Certifications) > 0 {
			if err := tx.Create(&resume.Certifications).Error; err != nil {
				return err
			}
		}
		if len(resume.Educations) > 0 {
			if err := tx.Create(&resume.Educations).Error; err != nil {
				return err
			}
		}
		if len(resume.Languages) > 0 {
			if err := tx.Create(&resume.Languages).Error; err != nil {
				return err
			}
		}
		if len(resume.Skills) > 0 {
			if err := tx.Create(&resume.Skills).Error; err != nil {
				return err
			}
		}
		if len(resume.WorkExperiences) > 0 {
			if err := tx.Create(&resume.WorkExperiences).Error; err != nil {
				return err
			}
		}
		if len(resume.ProjectExperiences) > 0 {
			if err := tx.Create(&resume.ProjectExperiences).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID returns the full record with all category sub-records joined in.
func (r *ResumeRepository) GetByID(ctx context.Context, id string) (*model.Resume, error) {
	var resume model.Resume
	err := r.withChildren(r.db.WithContext(ctx)).First(&resume, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// FindByFolder returns every resume in a folder with children preloaded, in
// insertion order. Used when search supplies no job title.
func (r *ResumeRepository) FindByFolder(ctx context.Context, folderID string) ([]model.Resume, error) {
	var resumes []model.Resume
	err := r.withChildren(r.db.WithContext(ctx)).
		Where("folder_id = ?", folderID).
		Order("created_at").
		Find(&resumes).Error
	return resumes, err
}

// SearchByJobTitle is the store's similarity primitive: resumes in the folder
// whose job-title embedding has cosine similarity >= threshold against the
// query vector, most similar first.
func (r *ResumeRepository) SearchByJobTitle(ctx context.Context, folderID string, embedding pgvector.Vector, threshold float64) ([]model.Resume, error) {
	var resumes []model.Resume
	err := r.withChildren(r.db.WithContext(ctx)).
		Where("folder_id = ?", folderID).
		Where("1 - (job_title_embedding <=> ?) >= ?", embedding, threshold).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "job_title_embedding <=> ?", Vars: []interface{}{embedding}},
		}).
		Find(&resumes).Error
	return resumes, err
}

// UpsertKeywords records distinct values for a category in the suggestion
// table, ignoring duplicates.
func (r *ResumeRepository) UpsertKeywords(ctx context.Context, keywordType string, values []string) error {
	keywords := make([]model.Keyword, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		keywords = append(keywords, model.Keyword{Type: keywordType, Value: value})
	}
	if len(keywords) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&keywords).Error
}

// SearchKeywords is a case-insensitive substring lookup over the suggestion
// table, partitioned by category type.
func (r *ResumeRepository) SearchKeywords(ctx context.Context, keywordType, search string) ([]string, error) {
	values := []string{}
	err := r.db.WithContext(ctx).
		Model(&model.Keyword{}).
		Where("type = ?", keywordType).
		Where("value ILIKE ?", "%"+search+"%").
		Order("value").
		Limit(20).
		Pluck("value", &values).Error
	return values, err
}
