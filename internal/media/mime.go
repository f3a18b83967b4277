package media

import (
	"fmt"
	"path"
	"strings"

	"github.com/timelessstrands/storefront-backend/pkg/enums"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
)

var mimeKinds = map[string]enums.MediaKind{
	"image/png":  enums.MediaKindImage,
	"image/jpeg": enums.MediaKindImage,
	"image/webp": enums.MediaKindImage,
	"image/gif":  enums.MediaKindImage,
	"video/mp4":  enums.MediaKindVideo,
	"video/webm": enums.MediaKindVideo,
}

var extensionsByMime = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"video/mp4":  ".mp4",
	"video/webm": ".webm",
}

// kindForContentType maps an upload content type to the stored media kind.
func kindForContentType(contentType string) (enums.MediaKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(contentType))
	if kind, ok := mimeKinds[normalized]; ok {
		return kind, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation,
		fmt.Sprintf("unsupported content type %q", contentType))
}

// extensionFor picks the canonical extension for a content type, falling
// back to the uploaded file name's extension.
func extensionFor(contentType, fileName string) string {
	if ext, ok := extensionsByMime[strings.ToLower(strings.TrimSpace(contentType))]; ok {
		return ext
	}
	return strings.ToLower(path.Ext(fileName))
}
