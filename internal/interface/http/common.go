package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialnet/internal/infrastructure/gcs"
	"socialnet/pkg/apperr"
	"socialnet/pkg/response"
	"socialnet/pkg/validation"
)

// fail maps a service error to its HTTP shape.
func fail(c *gin.Context, err error) {
	response.Error[any](c, apperr.Status(err), apperr.Message(err), nil)
}

func badPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// uploadsFromForm converts the named multipart field into pending uploads.
func uploadsFromForm(form *multipart.Form, field string) ([]gcs.Upload, error) {
	files := form.File[field]
	ups := make([]gcs.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		ups = append(ups, gcs.Upload{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}
	return ups, nil
}

// singleUpload reads one named file field.
func singleUpload(c *gin.Context, field string) (gcs.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return gcs.Upload{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return gcs.Upload{}, err
	}
	return gcs.Upload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}
