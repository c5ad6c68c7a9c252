package model

import "time"

// Document is one uploaded PDF's derived state. Content is immutable once
// extracted; the record is owned by the session that loaded it.
type Document struct {
	Name       string    `json:"name"`
	Content    string    `json:"-"`
	SizeBytes  int64     `json:"size_bytes"`
	PageCount  int       `json:"page_count"`
	Method     string    `json:"extraction_method"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// DocumentInfo is the advisory pre-extraction probe of a PDF file. The
// looks-scanned flag samples only the first few pages and may disagree with
// the extraction method the full pipeline ends up using.
type DocumentInfo struct {
	SizeBytes    int64 `json:"size_bytes"`
	PageCount    int   `json:"page_count"`
	HasText      bool  `json:"has_text"`
	LooksScanned bool  `json:"looks_scanned"`
}
