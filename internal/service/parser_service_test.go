package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadilmartias/talent-discovery/internal/apperr"
)

func newParserAgainst(url string) *ResumeParserService {
	return &ResumeParserService{
		apiKey: "test-key",
		model:  "test-model",
		client: resty.New().SetBaseURL(url),
	}
}

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body["model"])
		assert.EqualValues(t, 0, body["temperature"])

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestParseResumeValid(t *testing.T) {
	payload := "```json\n" + `{
		"basicInfo": {
			"fullName": "Jane Doe",
			"email": "jane@example.com",
			"phoneNumber": "+123456789",
			"jobTitle": "Backend Engineer"
		},
		"skills": ["Go", "PostgreSQL"],
		"languages": ["English"],
		"awards": [{"title": "Hackathon Winner", "date": null}]
	}` + "\n```"

	srv := completionServer(t, payload)
	defer srv.Close()

	data, err := newParserAgainst(srv.URL).ParseResume(context.Background(), "some resume text")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", data.BasicInfo.FullName)
	assert.Equal(t, "Backend Engineer", data.JobTitleValue())
	assert.Equal(t, []string{"Go", "PostgreSQL"}, data.Skills)
	assert.Len(t, data.Awards, 1)
}

func TestParseResumeNotAResume(t *testing.T) {
	srv := completionServer(t, "None")
	defer srv.Close()

	_, err := newParserAgainst(srv.URL).ParseResume(context.Background(), "a shopping list")
	assert.True(t, apperr.IsType(err, apperr.TypeNotAResume))
}

func TestParseResumeGarbageOutput(t *testing.T) {
	srv := completionServer(t, "this is not json at all")
	defer srv.Close()

	_, err := newParserAgainst(srv.URL).ParseResume(context.Background(), "text")
	assert.True(t, apperr.IsType(err, apperr.TypeMalformedData))
}

func TestParseResumeMissingRequiredField(t *testing.T) {
	srv := completionServer(t, `{"basicInfo": {"fullName": "Jane Doe", "email": "", "phoneNumber": "1"}}`)
	defer srv.Close()

	_, err := newParserAgainst(srv.URL).ParseResume(context.Background(), "text")
	require.True(t, apperr.IsType(err, apperr.TypeMalformedData))
	appErr, _ := apperr.As(err)
	assert.Contains(t, appErr.Message, "basicInfo.email")
}

func TestParseResumeBlankListItems(t *testing.T) {
	base := `"basicInfo": {"fullName": "Jane Doe", "email": "j@e.com", "phoneNumber": "1"}`
	tests := []struct {
		name      string
		payload   string
		wantField string
	}{
		{"blank skill", `{` + base + `, "skills": ["Go", " "]}`, "skills[1]"},
		{"blank language", `{` + base + `, "languages": [""]}`, "languages[0]"},
		{"blank company", `{` + base + `, "workExperiences": [{"companyName": "", "jobTitle": "Dev"}]}`, "workExperiences[0].companyName"},
		{"blank project", `{` + base + `, "projectExperiences": [{"projectName": " "}]}`, "projectExperiences[0].projectName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := completionServer(t, tt.payload)
			defer srv.Close()

			_, err := newParserAgainst(srv.URL).ParseResume(context.Background(), "text")
			require.True(t, apperr.IsType(err, apperr.TypeMalformedData))
			appErr, _ := apperr.As(err)
			assert.Contains(t, appErr.Message, tt.wantField)
		})
	}
}

func TestParseResumeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newParserAgainst(srv.URL).ParseResume(context.Background(), "text")
	require.Error(t, err)
	_, ok := apperr.As(err)
	assert.False(t, ok)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
	assert.Equal(t, "None", stripCodeFence("  None\n"))
}
