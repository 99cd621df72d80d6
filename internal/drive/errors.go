// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package drive

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Common Drive API errors.
var (
	// ErrAccessDenied indicates invalid credentials or insufficient
	// permissions on the folder.
	ErrAccessDenied = errors.New("drive: access denied")

	// ErrNotFound indicates the requested folder or file was not found.
	ErrNotFound = errors.New("drive: resource not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("drive: rate limit exceeded")
)

// wrapErr converts a googleapi error to one of the sentinel errors,
// leaving other errors untouched.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAccessDenied
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return err
	}
}

// IsAccessDenied returns true if the error indicates rejected credentials
// or insufficient permissions.
func IsAccessDenied(err error) bool {
	if errors.Is(err, ErrAccessDenied) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden
	}
	return false
}
