package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingDim is the output dimension of the embedding model in use
// (gemini-embedding-001). Changing the model requires a migration of every
// vector column below.
const EmbeddingDim = 3072

// Resume is the root record of one ingested document. ResumeFileHash is the
// deduplication key: the unique index is what actually prevents double
// ingestion when two identical uploads race past the in-process hash check.
type Resume struct {
	ID                   uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FolderID             uuid.UUID        `gorm:"type:uuid;index" json:"folder_id"`
	ResumeFileHash       string           `gorm:"type:varchar(32);uniqueIndex" json:"resume_file_hash"`
	ResumeFilePath       string           `gorm:"type:text" json:"resume_file_path"`
	ResumeThumbnailURL   string           `gorm:"type:text" json:"resume_thumbnail_url"`
	JobTitle             string           `gorm:"type:varchar(255)" json:"job_title"`
	JobTitleEmbedding    *pgvector.Vector `gorm:"type:vector(3072)" json:"-"` // NULL when no job title was extracted
	SummaryOrObjectives  string           `gorm:"type:text" json:"summary_or_objectives"`
	FullName             string           `gorm:"type:varchar(255)" json:"full_name"`
	Email                string           `gorm:"type:varchar(255)" json:"email"`
	PhoneNumber          string           `gorm:"type:varchar(50)" json:"phone_number"`
	Address              string           `gorm:"type:varchar(255)" json:"address"`
	TotalYearsExperience int              `json:"total_years_experience"` // reserved, not computed yet
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`

	References         []ResumeReference         `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"references"`
	Awards             []ResumeAward             `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"awards"`
	Certifications     []ResumeCertification     `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"certifications"`
	Educations         []ResumeEducation         `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"educations"`
	Languages          []ResumeLanguage          `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"languages"`
	Skills             []ResumeSkill             `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"skills"`
	WorkExperiences    []ResumeWorkExperience    `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"work_experiences"`
	ProjectExperiences []ResumeProjectExperience `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"project_experiences"`
}

func (Resume) TableName() string {
	return "resumes"
}

type ResumeReference struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResumeID      uuid.UUID `gorm:"type:uuid;index" json:"resume_id"`
	ReferenceLink string    `gorm:"type:text" json:"reference_link"`
}

func (ResumeReference) TableName() string {
	return "resume_references"
}

type ResumeAward struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResumeID       uuid.UUID       `gorm:"type:uuid;index" json:"resume_id"`
	Title          string          `gorm:"type:varchar(255)" json:"title"`
	TitleEmbedding pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	Date           *string         `gorm:"type:varchar(64)" json:"date"`
}

func (ResumeAward) TableName() string {
	return "resume_awards"
}

type ResumeCertification struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResumeID       uuid.UUID       `gorm:"type:uuid;index" json:"resume_id"`
	Title          string          `gorm:"type:varchar(255)" json:"title"`
	TitleEmbedding pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	Date           *string         `gorm:"type:varchar(64)" json:"date"`
}

func (ResumeCertification) TableName() string {
	return "resume_certifications"
}

type ResumeEducation struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResumeID      uuid.UUID       `gorm:"type:uuid;index" json:"resume_id"`
	Name          string          `gorm:"type:varchar(255)" json:"name"`
	NameEmbedding pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	Major         string          `gorm:"type:varchar(255)" json:"major"`
	StartDate     string          `gorm:"type:varchar(64)" json:"start_date"`
	EndDate       *string         `gorm:"type:varchar(64)" json:"end_date"`
	GPA           *float64        `json:"gpa"`
}

func (ResumeEducation) TableName() string {
	return "resume_educations"
}

type ResumeLanguage struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResumeID      uuid.UUID       `gorm:"type:uuid;index" json:"resume_id"`
	LanguageName  string          `gorm:"type:varchar(255)" json:"language_name"`
	NameEmbedding pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
}

func (ResumeLanguage) TableName() string {
	return "resume_languages"
}

type ResumeSkill struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResumeID      uuid.UUID       `gorm:"type:uuid;index" json:"resume_id"`
	SkillName     string          `gorm:"type:varchar(255)" json:"skill_name"`
	NameEmbedding pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
}

func (ResumeSkill) TableName() string {
	return "resume_skills"
}

type ResumeWorkExperience struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResumeID    uuid.UUID `gorm:"type:uuid;index" json:"resume_id"`
	CompanyName string    `gorm:"type:varchar(255)" json:"company_name"`
	JobTitle    string    `gorm:"type:varchar(255)" json:"job_title"`
	JobSummary  string    `gorm:"type:text" json:"job_summary"`
	StartDate   string    `gorm:"type:varchar(64)" json:"start_date"`
	EndDate     *string   `gorm:"type:varchar(64)" json:"end_date"`
}

func (ResumeWorkExperience) TableName() string {
	return "resume_work_experiences"
}

type ResumeProjectExperience struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResumeID         uuid.UUID `gorm:"type:uuid;index" json:"resume_id"`
	ProjectName      string    `gorm:"type:varchar(255)" json:"project_name"`
	Description      string    `gorm:"type:text" json:"description"`
	Technologies     string    `gorm:"type:text" json:"technologies"`
	Responsibilities string    `gorm:"type:text" json:"responsibilities"`
	StartDate        string    `gorm:"type:varchar(64)" json:"start_date"`
	EndDate          *string   `gorm:"type:varchar(64)" json:"end_date"`
	RepositoryURL    *string   `gorm:"type:text" json:"repository_url"`
	DemoOrLiveURL    *string   `gorm:"type:text" json:"demo_or_live_url"`
}

func (ResumeProjectExperience) TableName() string {
	return "resume_project_experiences"
}
