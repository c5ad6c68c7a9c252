package extractor

import (
	"context"
	"log"
	"strings"

	"pdfchat/internal/model"
	"pdfchat/internal/pkg/pdfextract"
)

const (
	MethodText   = "text"
	MethodOCR    = "ocr"
	MethodFailed = "failed"

	// Direct extraction is accepted only above this length; shorter results
	// are usually boilerplate or whitespace from a scanned PDF.
	minMeaningfulChars = 50

	// Info samples this many leading pages and calls the document
	// text-bearing above this threshold.
	samplePages    = 3
	minSampleChars = 100
)

type OCRClient interface {
	Available() bool
	ParseBytes(ctx context.Context, filename string, data []byte) (string, error)
}

// Extractor resolves PDF text with direct extraction first and a remote OCR
// fallback for scanned documents.
type Extractor struct {
	ocr OCRClient

	directText func(data []byte) (string, error)
	pageCount  func(data []byte) (int, error)
	sampleText func(data []byte, maxPages int) (string, error)
}

func New(ocr OCRClient) *Extractor {
	return &Extractor{
		ocr:        ocr,
		directText: pdfextract.ExtractText,
		pageCount:  pdfextract.PageCount,
		sampleText: pdfextract.SampleText,
	}
}

// Extract returns the document text and the method that produced it. Method
// MethodFailed with empty text is a hard failure for the upload; callers must
// not accept it as content.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, string) {
	text, err := e.directText(data)
	if err != nil {
		log.Printf("direct extraction failed for %s: %v", filename, err)
	}
	text = strings.TrimSpace(text)
	if len(text) > minMeaningfulChars {
		return text, MethodText
	}

	if e.ocr != nil && e.ocr.Available() {
		ocrText, err := e.ocr.ParseBytes(ctx, filename, data)
		if err != nil {
			log.Printf("ocr extraction failed for %s: %v", filename, err)
			return "", MethodFailed
		}
		ocrText = strings.TrimSpace(ocrText)
		if ocrText != "" {
			return ocrText, MethodOCR
		}
	}

	return "", MethodFailed
}

// Info probes the PDF without running the full extraction pipeline. The
// looks-scanned flag is advisory; Extract's own fallback logic is the source
// of truth for the actual method.
func (e *Extractor) Info(data []byte) model.DocumentInfo {
	info := model.DocumentInfo{SizeBytes: int64(len(data))}

	pages, err := e.pageCount(data)
	if err != nil {
		log.Printf("pdf info page count failed: %v", err)
		return info
	}
	info.PageCount = pages

	sample, err := e.sampleText(data, samplePages)
	if err != nil {
		log.Printf("pdf info sample failed: %v", err)
	}
	info.HasText = len(strings.TrimSpace(sample)) > minSampleChars
	info.LooksScanned = !info.HasText
	return info
}
