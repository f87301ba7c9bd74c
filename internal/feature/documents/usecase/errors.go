// Package usecase implements the business logic for the documents feature.
package usecase

import "errors"

var (
	// ErrDocumentNotFound is returned when a document does not exist or is
	// owned by another user. The two cases are deliberately indistinguishable.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrUnsupportedFileType is returned for uploads that are neither PDF nor image.
	ErrUnsupportedFileType = errors.New("only PDF and image (png/jpg/jpeg) files are supported")

	// ErrEmptyFile is returned for uploads with no content.
	ErrEmptyFile = errors.New("uploaded file is empty")

	// ErrFileTooLarge is returned for uploads over the size limit.
	ErrFileTooLarge = errors.New("file size exceeds the maximum allowed")

	// ErrNoReadableText is returned when extraction produced no text to summarize.
	ErrNoReadableText = errors.New("no readable text found in the uploaded file")

	// ErrTooManyPages is returned when a PDF exceeds the page limit.
	ErrTooManyPages = errors.New("pdf exceeds the maximum page count")
)
