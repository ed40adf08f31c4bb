package media

import "strings"

// mimeExtensions maps MIME types to file extensions for stored media.
var mimeExtensions = map[string]string{
	// PDF
	"application/pdf": "pdf",

	// Microsoft Office documents
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
	"application/vnd.ms-excel": "xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         "xlsx",
	"application/vnd.ms-powerpoint":                                             "ppt",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": "pptx",

	// CSV and text
	"text/csv":   "csv",
	"text/plain": "txt",
	"text/html":  "html",
	"text/xml":   "xml",

	// Images
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",

	// Audio
	"audio/mpeg": "mp3",
	"audio/mp3":  "mp3",
	"audio/wav":  "wav",
	"audio/ogg":  "ogg",
	"audio/m4a":  "m4a",
	"audio/amr":  "amr",

	// Video
	"video/mp4":       "mp4",
	"video/3gpp":      "3gp",
	"video/quicktime": "mov",
	"video/webm":      "webm",

	// Archives
	"application/zip":              "zip",
	"application/x-rar-compressed": "rar",
	"application/x-7z-compressed":  "7z",
	"application/x-tar":            "tar",
	"application/gzip":             "gz",

	// Other
	"application/octet-stream": "bin",
}

// businessDocumentMIMEs lists MIME types forwarded to the document API.
var businessDocumentMIMEs = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"text/csv":        true,
	"text/plain":      true,
	"application/zip": true,
}

// sizeLimits caps stored media per message type, in bytes.
var sizeLimits = map[string]int64{
	"image":    5 * 1024 * 1024,
	"video":    100 * 1024 * 1024,
	"audio":    16 * 1024 * 1024,
	"document": 100 * 1024 * 1024,
	"sticker":  1 * 1024 * 1024,
}

const defaultSizeLimit = 100 * 1024 * 1024

// ExtensionFor picks a file extension from the MIME type, falling back to the
// original filename's extension, then to a generic "bin".
func ExtensionFor(mimeType, filename string) string {
	if ext, ok := mimeExtensions[mimeType]; ok {
		return ext
	}
	if idx := strings.LastIndex(filename, "."); idx >= 0 && idx < len(filename)-1 {
		return strings.ToLower(filename[idx+1:])
	}
	return "bin"
}

// SubdirectoryFor chooses the storage subdirectory for a message type.
// Documents are filed by their actual content type.
func SubdirectoryFor(msgType, mimeType string) string {
	switch msgType {
	case "image", "video":
		return msgType + "s"
	case "audio":
		return "audio"
	case "document":
		switch {
		case strings.HasPrefix(mimeType, "image/"):
			return "images"
		case strings.HasPrefix(mimeType, "video/"):
			return "videos"
		case strings.HasPrefix(mimeType, "audio/"):
			return "audio"
		default:
			return "documents"
		}
	default:
		return "other"
	}
}

// MaxSizeFor returns the byte limit for a message type.
func MaxSizeFor(msgType string) int64 {
	if limit, ok := sizeLimits[msgType]; ok {
		return limit
	}
	return defaultSizeLimit
}

// IsBusinessDocument reports whether media of this MIME type should be
// forwarded to the document-processing API.
func IsBusinessDocument(mimeType string) bool {
	return businessDocumentMIMEs[mimeType]
}
