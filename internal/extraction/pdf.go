// Package extraction turns uploaded bank-statement PDFs into parsed
// transactions using rule-based text extraction.
package extraction

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	maxTextBytes     = 100 * 1024 // 100KB cap for extracted text
	scannedThreshold = 50         // chars per page below which PDF is considered scanned
)

// PDFAnalysis contains the results of pre-processing a PDF document.
type PDFAnalysis struct {
	PageCount     int
	ExtractedText string
	TextLines     []string
	IsScanned     bool
	Error         error
}

// AnalyzePDF extracts text and metadata from a PDF. It is wrapped in
// recover() so a malformed document never takes the request down; on any
// error it returns the conservative "scanned" default.
func AnalyzePDF(data []byte) (result *PDFAnalysis) {
	result = &PDFAnalysis{
		PageCount: 1,
		IsScanned: true,
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Extraction] recovered from panic during PDF analysis: %v", r)
			result.Error = fmt.Errorf("panic during PDF analysis: %v", r)
			result.IsScanned = true
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		result.Error = fmt.Errorf("open PDF reader: %w", err)
		return result
	}

	result.PageCount = reader.NumPage()
	if result.PageCount < 1 {
		result.PageCount = 1
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		result.Error = fmt.Errorf("extract plain text: %w", err)
		return result
	}

	textBytes, err := io.ReadAll(io.LimitReader(plainText, int64(maxTextBytes)))
	if err != nil {
		result.Error = fmt.Errorf("read plain text: %w", err)
		return result
	}

	result.ExtractedText = string(textBytes)
	result.IsScanned = isLikelyScanned(result.ExtractedText, result.PageCount)

	for _, line := range strings.Split(result.ExtractedText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			result.TextLines = append(result.TextLines, trimmed)
		}
	}

	return result
}

// isLikelyScanned reports whether the text yield is too low for the document
// to contain real text (i.e. it is probably a scan).
func isLikelyScanned(text string, pageCount int) bool {
	if pageCount < 1 {
		pageCount = 1
	}
	return len(strings.TrimSpace(text))/pageCount < scannedThreshold
}
