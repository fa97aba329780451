package assets

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/vidtube/internal/domain/entity"
)

// ObjectKey builds the store-internal id for a new object:
// <kind>s/<owner>/<uuid><ext>
func ObjectKey(kind entity.AssetKind, ownerID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	owner := ownerID
	if owner == "" {
		owner = "anonymous"
	}
	return path.Join(string(kind)+"s", owner, uuid.NewString()+ext)
}
