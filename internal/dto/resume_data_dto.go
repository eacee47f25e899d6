package dto

// ResumeData is the target schema of structured extraction. The JSON field
// names below are the single source of truth: the extraction prompt describes
// exactly this shape, so prompt and validator cannot drift apart.
//
// Absent list fields mean "no items", never "unknown".
type ResumeData struct {
	BasicInfo          *BasicInfo          `json:"basicInfo"`
	Skills             []string            `json:"skills"`
	Languages          []string            `json:"languages"`
	Awards             []Award             `json:"awards"`
	Certifications     []Certification     `json:"certifications"`
	Educations         []Education         `json:"educations"`
	WorkExperiences    []WorkExperience    `json:"workExperiences"`
	ProjectExperiences []ProjectExperience `json:"projectExperiences"`
}

type BasicInfo struct {
	FullName             string  `json:"fullName"`
	Email                string  `json:"email"`
	PhoneNumber          string  `json:"phoneNumber"`
	Address              *string `json:"address"`
	LinkedInMainPageURL  *string `json:"linkedInMainPageUrl"`
	GithubMainPageURL    *string `json:"githubMainPageUrl"`
	PortfolioMainPageURL *string `json:"portfolioMainPageUrl"`
	JobTitle             *string `json:"jobTitle"`
	SummaryOrObjectives  *string `json:"summaryOrObjectives"`
}

type Award struct {
	Title string  `json:"title"`
	Date  *string `json:"date"`
}

type Certification struct {
	Title string  `json:"title"`
	Date  *string `json:"date"`
}

type Education struct {
	EducationName string   `json:"educationName"`
	StartDate     string   `json:"startDate"`
	EndDate       *string  `json:"endDate"`
	Major         string   `json:"major"`
	GPA           *float64 `json:"gpa"`
}

type WorkExperience struct {
	CompanyName string  `json:"companyName"`
	JobTitle    string  `json:"jobTitle"`
	JobSummary  string  `json:"jobSummary"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

type ProjectExperience struct {
	ProjectName      string  `json:"projectName"`
	Description      string  `json:"description"`
	Technologies     string  `json:"technologies"`
	Responsibilities string  `json:"responsibilities"`
	StartDate        string  `json:"startDate"`
	EndDate          *string `json:"endDate"`
	RepositoryURL    *string `json:"repositoryUrl"`
	DemoOrLiveURL    *string `json:"demoOrLiveUrl"`
}

// JobTitleValue returns the extracted job title or "" when absent.
func (r *ResumeData) JobTitleValue() string {
	if r.BasicInfo == nil || r.BasicInfo.JobTitle == nil {
		return ""
	}
	return *r.BasicInfo.JobTitle
}

// ReferenceLinks collects the non-empty reference URLs in a fixed order
// (LinkedIn, GitHub, portfolio).
func (r *ResumeData) ReferenceLinks() []string {
	if r.BasicInfo == nil {
		return nil
	}
	var links []string
	for _, link := range []*string{
		r.BasicInfo.LinkedInMainPageURL,
		r.BasicInfo.GithubMainPageURL,
		r.BasicInfo.PortfolioMainPageURL,
	} {
		if link != nil && *link != "" {
			links = append(links, *link)
		}
	}
	return links
}
