// Package errors provides sentinel errors for documentation tree operations.
package errors

import "errors"

var (
	// ErrDocsPathNotFound indicates the configured docs directory does not exist.
	ErrDocsPathNotFound = errors.New("documentation path not found")

	// ErrDocsDirWalkFailed indicates filesystem traversal of the docs directory failed.
	ErrDocsDirWalkFailed = errors.New("documentation directory walk failed")

	// ErrFileReadFailed indicates reading a documentation file failed.
	ErrFileReadFailed = errors.New("documentation file read failed")

	// ErrInvalidFrontMatter indicates a document's front matter could not be decoded.
	ErrInvalidFrontMatter = errors.New("invalid front matter")

	// ErrDuplicateDocID indicates two files produce the same document id.
	ErrDuplicateDocID = errors.New("duplicate document id")
)
