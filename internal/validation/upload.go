package validation

import (
	"bytes"
	"fmt"
	"net/http"

	"skillswap/internal/models"
)

const (
	MimePDF = "application/pdf"
	MimeMP4 = "video/mp4"
)

// DetectUpload sniffs the file header and returns the content kind and MIME
// type. Only PDF and MP4 are accepted; the client-declared type is ignored.
func DetectUpload(data []byte) (models.ContentType, string, error) {
	if len(data) == 0 {
		return "", "", fmt.Errorf("file is empty")
	}
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return models.ContentTypePDF, MimePDF, nil
	}
	if isMP4(data) {
		return models.ContentTypeVideo, MimeMP4, nil
	}

	switch http.DetectContentType(data) {
	case MimePDF:
		return models.ContentTypePDF, MimePDF, nil
	case MimeMP4:
		return models.ContentTypeVideo, MimeMP4, nil
	}
	return "", "", fmt.Errorf("file must be a PDF or MP4")
}

// isMP4 checks for an ISO base media "ftyp" box with an MP4-family brand.
func isMP4(data []byte) bool {
	if len(data) < 12 || !bytes.Equal(data[4:8], []byte("ftyp")) {
		return false
	}
	switch string(data[8:12]) {
	case "isom", "iso2", "mp41", "mp42", "avc1", "M4V ", "dash":
		return true
	}
	return false
}
