package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error type identifiers, stable across API versions. Clients switch on these.
const (
	TypeFileMissing      = "file.null"
	TypeFileSize         = "file.size.unsupported"
	TypeFileType         = "file.type.unsupported"
	TypeFileDuplicated   = "file.duplicated"
	TypeContentEmpty     = "file.content.empty"
	TypeNotAResume       = "file.not.resume"
	TypeMalformedData    = "resume.data.malformed"
	TypeStorageWrite     = "storage.write.failed"
	TypeEmbeddingFailed  = "embedding.failed"
	TypePartialIngestion = "resume.partial_ingestion"
	TypeValidation       = "request.invalid"
	TypeNotFound         = "resource.not.found"
)

// Error carries a machine-readable type, an HTTP status and optional payload
// alongside the human message, so handlers can translate it without string
// matching.
type Error struct {
	Code    int    `json:"-"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// As unwraps err into *Error if possible.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, errType string) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == errType
}

func NewFileMissing() *Error {
	return &Error{
		Code:    fiber.StatusBadRequest,
		Type:    TypeFileMissing,
		Message: "No file found!",
	}
}

func NewFileSizeUnsupported() *Error {
	return &Error{
		Code:    fiber.StatusBadRequest,
		Type:    TypeFileSize,
		Message: "Supported file size is 0 - 5 MB",
	}
}

func NewFileTypeUnsupported(contentType string) *Error {
	return &Error{
		Code:    fiber.StatusBadRequest,
		Type:    TypeFileType,
		Message: fmt.Sprintf("Unsupported file type: %s. Supported types are png, jpeg and pdf", contentType),
	}
}

// NewDuplicate carries the previously ingested record so the caller can link
// to it instead of re-uploading.
func NewDuplicate(existing any) *Error {
	return &Error{
		Code:    fiber.StatusBadRequest,
		Type:    TypeFileDuplicated,
		Message: "Resume file already exists",
		Data:    existing,
	}
}

func NewContentEmpty() *Error {
	return &Error{
		Code:    fiber.StatusBadRequest,
		Type:    TypeContentEmpty,
		Message: "File content is empty",
	}
}

func NewNotAResume() *Error {
	return &Error{
		Code:    fiber.StatusBadRequest,
		Type:    TypeNotAResume,
		Message: "File is not a resume",
	}
}

// NewMalformedData reports which field of the model output failed validation.
// Distinct from TypeNotAResume: this one usually means prompt drift, not bad input.
func NewMalformedData(field string, cause error) *Error {
	msg := fmt.Sprintf("Extracted resume data is malformed (field: %s)", field)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{
		Code:    fiber.StatusUnprocessableEntity,
		Type:    TypeMalformedData,
		Message: msg,
	}
}

func NewStorageWrite(cause error) *Error {
	return &Error{
		Code:    fiber.StatusInternalServerError,
		Type:    TypeStorageWrite,
		Message: fmt.Sprintf("Failed to persist resume data: %v", cause),
	}
}

func NewEmbeddingFailed(cause error) *Error {
	return &Error{
		Code:    fiber.StatusBadGateway,
		Type:    TypeEmbeddingFailed,
		Message: fmt.Sprintf("Embedding service failed: %v", cause),
	}
}

// NewPartialIngestion marks a resume whose root record committed while a later
// write failed. Data identifies what to retry.
func NewPartialIngestion(resumeID, category string, cause error) *Error {
	return &Error{
		Code:    fiber.StatusInternalServerError,
		Type:    TypePartialIngestion,
		Message: fmt.Sprintf("Resume %s ingested partially, category %s failed: %v", resumeID, category, cause),
		Data:    map[string]string{"resume_id": resumeID, "category": category},
	}
}

func NewValidation(message string) *Error {
	return &Error{
		Code:    fiber.StatusBadRequest,
		Type:    TypeValidation,
		Message: message,
	}
}

func NewNotFound(message string) *Error {
	return &Error{
		Code:    fiber.StatusNotFound,
		Type:    TypeNotFound,
		Message: message,
	}
}
