package common

import "errors"

// Business logic errors
var (
	// Tenant errors
	ErrCompanyNotFound       = errors.New("company not found")
	ErrWriterProfileNotFound = errors.New("writer profile not found")

	// Content errors
	ErrBlogPostNotFound   = errors.New("blog post not found")
	ErrSocialPostNotFound = errors.New("social post not found")
	ErrSnippetNotFound    = errors.New("snippet not found")

	// Versioning errors
	ErrVersionNotFound = errors.New("content version not found")
	ErrVersionConflict = errors.New("concurrent version write conflict")
	ErrInvalidRange    = errors.New("invalid version range")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Validation errors
	ErrInvalidEntityType = errors.New("invalid entity type")
)
