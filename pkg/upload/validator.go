package upload

import (
	"bytes"
	"path/filepath"
	"strings"
)

// MaxCVSize is the client-side upload cap. Files above it are rejected
// before any network call to the extraction backend.
const MaxCVSize = 5 << 20

// Result is the outcome of CV validation.
type Result struct {
	Valid     bool
	Extension string
	Error     string
}

// Magic byte prefixes per allowed extension.
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE compound doc
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
}

var allowedMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	// DOCX uploads sometimes arrive declared as plain zip.
	"application/zip": true,
}

// ValidateCV checks an uploaded CV against the extension whitelist, the file
// size cap, the declared MIME type, and the content's magic bytes (a .pdf
// that does not start with %PDF is spoofed, not a PDF).
func ValidateCV(filename string, data []byte, declaredMIME string) Result {
	result := Result{Extension: strings.ToLower(filepath.Ext(filename))}

	if _, ok := magicBytes[result.Extension]; !ok {
		result.Error = "Invalid file type. Please upload a PDF or Word document."
		return result
	}

	if len(data) > MaxCVSize {
		result.Error = "File size exceeds 5MB. Please upload a smaller file."
		return result
	}

	if !matchesMagicBytes(result.Extension, data) {
		result.Error = "File content does not match its extension."
		return result
	}

	// Browsers occasionally send octet-stream for Word documents; the magic
	// byte check above already vouched for those.
	if declaredMIME != "" && !allowedMIMETypes[declaredMIME] {
		if declaredMIME != "application/octet-stream" || result.Extension == ".pdf" {
			result.Error = "Invalid file type. Please upload a PDF or Word document."
			return result
		}
	}

	result.Valid = true
	return result
}

func matchesMagicBytes(ext string, data []byte) bool {
	for _, sig := range magicBytes[ext] {
		if len(data) >= len(sig) && bytes.Equal(data[:len(sig)], sig) {
			return true
		}
	}
	return false
}
