// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package drive lists and downloads files from a shared Google Drive
// folder. Listing is a thin wrapper over the Drive v3 API; the DOI scan
// in doi.go builds bibliographic records from the folder's PDFs.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/pdiddy/litquery/pkg/types"
)

// MIME types of interest when scanning a folder.
const (
	mimeTypePDF    = "application/pdf"
	mimeTypeFolder = "application/vnd.google-apps.folder"
)

// maxDownloadSize caps a single file download (20 MB).
const maxDownloadSize = 20 * 1024 * 1024

// listPageSize is the number of files requested per Drive API page.
const listPageSize = 100

// FileEntry is the metadata for one file in a listed folder.
type FileEntry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MIMEType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	ModifiedTime time.Time `json:"modified_time"`
}

// NewService builds a Drive API service from the OAuth client
// credentials and cached token configured in cfg. The token must have
// been obtained beforehand (e.g. via the provider's consent flow);
// NewService does not open a browser.
func NewService(ctx context.Context, cfg types.DriveConfig) (*gdrive.Service, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	oauthCfg, err := google.ConfigFromJSON(data, gdrive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials file: %w", err)
	}

	tok, err := tokenFromFile(cfg.TokenFile)
	if err != nil {
		return nil, err
	}

	svc, err := gdrive.NewService(ctx, option.WithTokenSource(oauthCfg.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}
	return svc, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	defer f.Close()

	var tok oauth2.Token
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return nil, fmt.Errorf("parsing token file %s: %w", path, err)
	}
	return &tok, nil
}

// Lister lists and downloads files in Drive folders.
type Lister struct {
	svc *gdrive.Service
}

// NewLister wraps a Drive service.
func NewLister(svc *gdrive.Service) *Lister {
	return &Lister{svc: svc}
}

// List returns the non-trashed files directly inside folderID, paging
// through the full result set. Sub-folders are included with their
// folder MIME type; callers filter as needed.
func (l *Lister) List(ctx context.Context, folderID string) ([]FileEntry, error) {
	if folderID == "" {
		return nil, fmt.Errorf("folder ID is required")
	}

	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var entries []FileEntry
	pageToken := ""
	for {
		call := l.svc.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType, size, modifiedTime)").
			PageSize(listPageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		fl, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("listing folder %s: %w", folderID, wrapErr(err))
		}

		for _, f := range fl.Files {
			e := FileEntry{
				ID:       f.Id,
				Name:     f.Name,
				MIMEType: f.MimeType,
				Size:     f.Size,
			}
			if t, parseErr := time.Parse(time.RFC3339, f.ModifiedTime); parseErr == nil {
				e.ModifiedTime = t
			}
			entries = append(entries, e)
		}

		pageToken = fl.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return entries, nil
}

// Download fetches a file's content, capped at maxDownloadSize.
func (l *Lister) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := l.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("downloading file %s: %w", fileID, wrapErr(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", fileID, err)
	}
	return data, nil
}
