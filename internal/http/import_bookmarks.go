package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookmarks/internal/services"
)

// maxImportSize caps uploaded bookmark exports at 10 MiB.
const maxImportSize = 10 << 20

// BookmarkImporter runs the import pipeline for one uploaded export.
type BookmarkImporter interface {
	Import(userKey string, raw []byte) (*services.Summary, error)
}

type ImportController struct {
	importer BookmarkImporter
	auditor  Auditor
}

func NewImportController(importer BookmarkImporter, auditor Auditor) *ImportController {
	return &ImportController{importer: importer, auditor: auditor}
}

// Import accepts a browser bookmark export (Netscape bookmark HTML) as a
// multipart upload and imports its links for the current user.
// POST /api/import/bookmarks (multipart field "file")
func (ic *ImportController) Import(c *gin.Context) {
	userID := GetUserID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "no file uploaded")
		return
	}
	if fileHeader.Size > maxImportSize {
		respondBadRequest(c, "file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondBadRequest(c, "failed to open uploaded file")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		respondInternalError(c, err, "read uploaded file")
		return
	}

	summary, err := ic.importer.Import(strconv.FormatUint(uint64(userID), 10), raw)
	if err != nil {
		if ic.auditor != nil {
			ic.auditor.LogImport(userID, "Bookmark import from "+fileHeader.Filename, 0, 0, 0, err)
		}

		switch {
		case errors.Is(err, services.ErrEmptyInput),
			errors.Is(err, services.ErrInvalidEncoding),
			errors.Is(err, services.ErrNothingToImport),
			errors.Is(err, services.ErrInvalidUser):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "import bookmarks")
		}
		return
	}

	if ic.auditor != nil {
		description := fmt.Sprintf("Imported %d bookmarks from %s", summary.Imported, fileHeader.Filename)
		ic.auditor.LogImport(userID, description, summary.Imported, summary.Skipped, summary.CollectionsCreated, nil)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":             "import completed",
		"imported":            summary.Imported,
		"skipped":             summary.Skipped,
		"collections_created": summary.CollectionsCreated,
	})
}
