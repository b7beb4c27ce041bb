package intake

import (
	"errors"
	"net/http"

	"intake-backend/internal/assets"
	"intake-backend/internal/extraction"
	"intake-backend/internal/normalize"
	"intake-backend/internal/schema"
	"intake-backend/internal/students"
	"intake-backend/internal/uploads"
)

// errorCode maps a pipeline failure to its stable error code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, schema.ErrUnknownDocumentType):
		return "unknown_document_type"
	case errors.Is(err, assets.ErrUnsupportedMediaType), errors.Is(err, extraction.ErrUnsupportedMediaType):
		return "unsupported_media_type"
	case errors.Is(err, assets.ErrTooLarge):
		return "asset_too_large"
	case errors.Is(err, assets.ErrDownloadFailed):
		return "asset_download_failed"
	case errors.Is(err, extraction.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, extraction.ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, extraction.ErrTransport):
		return "transport_error"
	case errors.Is(err, normalize.ErrMalformedExtraction):
		return "malformed_extraction"
	case errors.Is(err, students.ErrStudentNotFound):
		return "student_not_found"
	case errors.Is(err, students.ErrDocumentNotFound):
		return "document_not_found"
	case errors.Is(err, students.ErrStoreUnavailable), errors.Is(err, uploads.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal_error"
	}
}

// httpStatus maps an error code to the status for single-item endpoints.
func httpStatus(code string) int {
	switch code {
	case "unknown_document_type", "validation_error":
		return http.StatusBadRequest
	case "unsupported_media_type":
		return http.StatusUnsupportedMediaType
	case "asset_too_large":
		return http.StatusRequestEntityTooLarge
	case "asset_download_failed":
		return http.StatusBadGateway
	case "quota_exceeded":
		return http.StatusTooManyRequests
	case "invalid_response", "transport_error":
		return http.StatusBadGateway
	case "malformed_extraction":
		return http.StatusUnprocessableEntity
	case "student_not_found", "document_not_found":
		return http.StatusNotFound
	case "store_unavailable":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
