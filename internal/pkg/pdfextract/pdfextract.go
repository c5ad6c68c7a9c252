package pdfextract

import (
	"bytes"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText extracts plain text from the whole PDF. Returns empty string
// and nil error if the PDF has no extractable text.
func ExtractText(data []byte) (string, error) {
	pdfReader, err := newReader(data)
	if err != nil {
		return "", err
	}
	plainReader, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(plainReader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func PageCount(data []byte) (int, error) {
	pdfReader, err := newReader(data)
	if err != nil {
		return 0, err
	}
	return pdfReader.NumPage(), nil
}

// SampleText extracts text from at most maxPages leading pages. Used by the
// looks-scanned heuristic, which only needs a cheap sample.
func SampleText(data []byte, maxPages int) (string, error) {
	pdfReader, err := newReader(data)
	if err != nil {
		return "", err
	}

	pages := pdfReader.NumPage()
	if maxPages > 0 && pages > maxPages {
		pages = maxPages
	}

	var sample strings.Builder
	for i := 1; i <= pages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sample.WriteString(text)
	}
	return sample.String(), nil
}

func newReader(data []byte) (*pdf.Reader, error) {
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}
