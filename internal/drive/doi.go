// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/litquery/internal/vendor"
	"github.com/pdiddy/litquery/pkg/types"
)

// doiPattern matches a DOI in extracted page text.
var doiPattern = regexp.MustCompile(`\b10\.\d{4,9}/[-._;()/:A-Za-z0-9]+\b`)

// doiScanPages limits the DOI scan to the front matter, where journals
// print the DOI.
const doiScanPages = 5

// findDOI returns the first DOI in text, or "".
func findDOI(text string) string {
	return doiPattern.FindString(text)
}

// ExtractDOI extracts the first DOI from a PDF's leading pages.
// Returns "" without error when no DOI is present.
func ExtractDOI(data []byte) (doi string, err error) {
	// The PDF parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing PDF: %w", err)
	}

	pages := reader.NumPage()
	if pages > doiScanPages {
		pages = doiScanPages
	}
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, textErr := page.GetPlainText(nil)
		if textErr != nil {
			continue
		}
		if doi := findDOI(text); doi != "" {
			return doi, nil
		}
	}
	return "", nil
}

// ScanFolder inventories the PDFs in a Drive folder: each file is
// downloaded, its DOI extracted, and the bibliographic record resolved
// through Crossref. Files without a recoverable DOI are reported on w
// and skipped.
func ScanFolder(ctx context.Context, l *Lister, cr *vendor.CrossrefClient, folderID string, httpCfg types.HTTPConfig, w io.Writer) ([]types.BibRecord, error) {
	entries, err := l.List(ctx, folderID)
	if err != nil {
		return nil, err
	}

	var records []types.BibRecord
	for _, e := range entries {
		if e.MIMEType != mimeTypePDF {
			continue
		}
		fmt.Fprintf(w, "scanning %s\n", e.Name)

		data, err := l.Download(ctx, e.ID)
		if err != nil {
			fmt.Fprintf(w, "warning: %s: %v\n", e.Name, err)
			continue
		}

		doi, err := ExtractDOI(data)
		if err != nil {
			fmt.Fprintf(w, "warning: %s: %v\n", e.Name, err)
			continue
		}
		if doi == "" {
			fmt.Fprintf(w, "warning: %s: no DOI found\n", e.Name)
			continue
		}

		record, err := cr.WorkByDOI(ctx, doi, httpCfg)
		if err != nil {
			fmt.Fprintf(w, "warning: %s: %v\n", e.Name, err)
			continue
		}
		record.Filename = e.Name
		record.Source = "drive"
		records = append(records, record)
	}
	return records, nil
}
