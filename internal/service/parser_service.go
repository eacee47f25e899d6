package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/fadilmartias/talent-discovery/internal/apperr"
	"github.com/fadilmartias/talent-discovery/internal/config"
	"github.com/fadilmartias/talent-discovery/internal/dto"
	"github.com/fadilmartias/talent-discovery/internal/logger"
)

// ResumeParserInterface turns extracted resume text into a validated
// ResumeData profile via a single LLM completion.
type ResumeParserInterface interface {
	ParseResume(ctx context.Context, content string) (*dto.ResumeData, error)
}

// resumeSchema describes the exact JSON shape the completion must return. It
// is quoted verbatim in the system prompt, and the dto.ResumeData validator
// checks the same contract on the way back.
const resumeSchema = `
  {
    basicInfo: {
      fullName: string
      email: string
      phoneNumber: string
      address: string | null
      linkedInMainPageUrl: string | null
      githubMainPageUrl: string | null
      portfolioMainPageUrl: string | null
      jobTitle: string | null
      summaryOrObjectives: string | null
    }
    skills: string[] | null
    languages: string[] | null
    awards: {
      title: string
      date: string (full ISO 8601 format) | null
    }[] | null
    certifications: {
      title: string
      date: string (full ISO 8601 format) | null
    }[] | null
    educations: {
      educationName: string
      startDate: string (full ISO 8601 format)
      endDate: string (full ISO 8601 format) | null
      major: string
      gpa: number | null
    }[] | null
    workExperiences: {
      companyName: string
      jobTitle: string
      jobSummary: string
      startDate: string (full ISO 8601 format)
      endDate: string (full ISO 8601 format) | null
    }[] | null
    projectExperiences: {
      projectName: string
      description: string
      technologies: string
      responsibilities: string
      startDate: string (full ISO 8601 format)
      endDate: string (full ISO 8601 format) | null
      repositoryUrl: string | null
      demoOrLiveUrl: string | null
    }[] | null
  }`

// notAResumeSentinel is the literal token the model returns in place of JSON
// when the input carries no resume content. Anything else that fails to parse
// is malformed output, not a data problem.
const notAResumeSentinel = "None"

type ResumeParserService struct {
	apiKey string
	model  string
	client *resty.Client
}

func NewResumeParserService() *ResumeParserService {
	cfg := config.LoadOpenRouterConfig()
	return &ResumeParserService{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		client: resty.New().SetBaseURL(cfg.BaseURL),
	}
}

// ParseResume issues one completion with temperature pinned to zero and
// validates the response against the target schema.
func (s *ResumeParserService) ParseResume(ctx context.Context, content string) (*dto.ResumeData, error) {
	systemMessage := fmt.Sprintf(
		"You will be provided with text. "+
			"If it contains information about a resume then summarize the information into a JSON with exactly the following structure: %s. "+
			"If the text does not contain information of a resume, then simply write None instead of the JSON schema.",
		resumeSchema,
	)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model":       s.model,
			"temperature": 0,
			"messages": []map[string]string{
				{"role": "system", "content": systemMessage},
				{"role": "user", "content": content},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("completion request failed: status %d: %s", resp.StatusCode(), resp.String())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return nil, fmt.Errorf("no completion content in response")
	}

	text = stripCodeFence(text)
	if text == notAResumeSentinel {
		return nil, apperr.NewNotAResume()
	}

	var data dto.ResumeData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		logger.Warn().Err(err).Msg("completion output failed to parse as JSON")
		return nil, apperr.NewMalformedData("(json)", err)
	}

	if field := validateResumeData(&data); field != "" {
		return nil, apperr.NewMalformedData(field, nil)
	}
	return &data, nil
}

// validateResumeData checks the schema contract and returns the first failing
// field path, or "" when the profile is valid.
func validateResumeData(data *dto.ResumeData) string {
	if data.BasicInfo == nil {
		return "basicInfo"
	}
	if strings.TrimSpace(data.BasicInfo.FullName) == "" {
		return "basicInfo.fullName"
	}
	if strings.TrimSpace(data.BasicInfo.Email) == "" {
		return "basicInfo.email"
	}
	if strings.TrimSpace(data.BasicInfo.PhoneNumber) == "" {
		return "basicInfo.phoneNumber"
	}
	for i, skill := range data.Skills {
		if strings.TrimSpace(skill) == "" {
			return fmt.Sprintf("skills[%d]", i)
		}
	}
	for i, language := range data.Languages {
		if strings.TrimSpace(language) == "" {
			return fmt.Sprintf("languages[%d]", i)
		}
	}
	for i, award := range data.Awards {
		if strings.TrimSpace(award.Title) == "" {
			return fmt.Sprintf("awards[%d].title", i)
		}
	}
	for i, cert := range data.Certifications {
		if strings.TrimSpace(cert.Title) == "" {
			return fmt.Sprintf("certifications[%d].title", i)
		}
	}
	for i, edu := range data.Educations {
		if strings.TrimSpace(edu.EducationName) == "" {
			return fmt.Sprintf("educations[%d].educationName", i)
		}
	}
	for i, work := range data.WorkExperiences {
		if strings.TrimSpace(work.CompanyName) == "" {
			return fmt.Sprintf("workExperiences[%d].companyName", i)
		}
	}
	for i, project := range data.ProjectExperiences {
		if strings.TrimSpace(project.ProjectName) == "" {
			return fmt.Sprintf("projectExperiences[%d].projectName", i)
		}
	}
	return ""
}

// stripCodeFence unwraps ```json ... ``` fences some models insist on adding.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
