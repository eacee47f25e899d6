package model

// Keyword categories. These partition the suggestion table and mirror the
// query-able attribute groups of semantic search.
const (
	KeywordTypeJobTitle      = "job_title"
	KeywordTypeSkill         = "skill"
	KeywordTypeLanguage      = "language"
	KeywordTypeAward         = "award"
	KeywordTypeCertification = "certification"
	KeywordTypeEducation     = "education"
)

// KeywordTypes lists every valid keyword category.
var KeywordTypes = []string{
	KeywordTypeJobTitle,
	KeywordTypeSkill,
	KeywordTypeLanguage,
	KeywordTypeAward,
	KeywordTypeCertification,
	KeywordTypeEducation,
}

// Keyword is one distinct value seen during ingestion, used to back
// query-builder suggestions. No embeddings here.
type Keyword struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Type  string `gorm:"type:varchar(32);uniqueIndex:idx_keywords_type_value" json:"type"`
	Value string `gorm:"type:varchar(255);uniqueIndex:idx_keywords_type_value" json:"value"`
}

func (Keyword) TableName() string {
	return "keywords"
}
