package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client calls the OCR.space parse endpoint with raw PDF bytes. The timeout
// is generous because large scans take tens of seconds to process.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	language   string
}

func NewClient(apiURL, apiKey, language string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     apiURL,
		apiKey:     apiKey,
		language:   language,
	}
}

// Available reports whether the client is configured with an API key.
func (c *Client) Available() bool {
	return c != nil && c.apiKey != ""
}

// ParseBytes sends the file to OCR.space and returns the parsed text.
func (c *Client) ParseBytes(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"apikey":            c.apiKey,
		"language":          c.language,
		"isOverlayRequired": "false",
		"detectOrientation": "true",
		"scale":             "true",
		"OCREngine":         "2",
		"isTable":           "true",
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return "", fmt.Errorf("write ocr form field failed: %w", err)
		}
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create ocr form file failed: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write ocr file payload failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close ocr form failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, &body)
	if err != nil {
		return "", fmt.Errorf("build ocr request failed: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read ocr response failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr response status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
		ErrorMessage          json.RawMessage `json:"ErrorMessage"`
		ParsedResults         []struct {
			ParsedText string `json:"ParsedText"`
		} `json:"ParsedResults"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse ocr json failed: %w", err)
	}
	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("ocr processing error: %s", string(parsed.ErrorMessage))
	}

	var text strings.Builder
	for _, result := range parsed.ParsedResults {
		if result.ParsedText == "" {
			continue
		}
		text.WriteString(result.ParsedText)
		text.WriteString("\n")
	}
	return strings.TrimSpace(text.String()), nil
}
