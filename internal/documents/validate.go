package documents

// Upload limits are enforced here, server-side, so every entry point shares
// one contract instead of each form re-checking its own copy.

// MaxUploadBytes is the upload size ceiling.
const MaxUploadBytes = 5 << 20 // 5 MiB

const (
	MimePDF  = "application/pdf"
	MimeJPEG = "image/jpeg"
	MimeJPG  = "image/jpg"
	MimePNG  = "image/png"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var allowedMimeTypes = map[string]bool{
	MimePDF:  true,
	MimeJPEG: true,
	MimeJPG:  true,
	MimePNG:  true,
	MimeDOC:  true,
	MimeDOCX: true,
}

// AllowedMimeType reports whether the content type may be uploaded.
func AllowedMimeType(mimeType string) bool {
	return allowedMimeTypes[mimeType]
}

// WithinSizeLimit reports whether a declared size fits the ceiling.
func WithinSizeLimit(sizeBytes int64) bool {
	return sizeBytes > 0 && sizeBytes <= MaxUploadBytes
}
