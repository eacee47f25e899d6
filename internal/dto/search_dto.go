package dto

// KeywordOption is one query term. Required terms exclude a candidate when no
// stored value of the category matches; optional terms never exclude.
type KeywordOption struct {
	Value    string `json:"value"`
	Required bool   `json:"required"`
}

// SearchResumeRequest is the multi-criteria semantic search input. An empty
// JobTitle disables the coarse job-title filter.
type SearchResumeRequest struct {
	FolderID     string          `json:"folder_id"`
	JobTitle     string          `json:"job_title"`
	Awards       []KeywordOption `json:"awards"`
	Certificates []KeywordOption `json:"certificates"`
	Educations   []KeywordOption `json:"educations"`
	Languages    []KeywordOption `json:"languages"`
	Skills       []KeywordOption `json:"skills"`
}

// ResumeSummaryDTO is what search returns per matching candidate. Match scores
// are intentionally not exposed; membership is pass/fail.
type ResumeSummaryDTO struct {
	ID                  string `json:"id"`
	FolderID            string `json:"folder_id"`
	FullName            string `json:"full_name"`
	Email               string `json:"email"`
	PhoneNumber         string `json:"phone_number"`
	JobTitle            string `json:"job_title"`
	SummaryOrObjectives string `json:"summary_or_objectives"`
	ResumeThumbnailURL  string `json:"resume_thumbnail_url"`
	ResumeFilePath      string `json:"resume_file_path"`
}
