package assets

import "bytes"

// Supported media types for document submissions.
const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeWebP = "image/webp"
	MimePDF  = "application/pdf"
)

// SniffMimeType identifies the media type from the leading byte signature.
// Declared content types are never trusted. Returns "" when the signature
// does not match any supported type.
func SniffMimeType(data []byte) string {
	switch {
	case len(data) >= 3 && bytes.Equal(data[:3], []byte{0xFF, 0xD8, 0xFF}):
		return MimeJPEG
	case len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return MimePNG
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return MimeWebP
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("%PDF")):
		return MimePDF
	default:
		return ""
	}
}
