package validators

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/CorrelAid/function_relay/models"
	"github.com/gin-gonic/gin"
)

var ErrNoFile = errors.New("file field is missing")

// FormFile returns the uploaded file in field. A missing field, or a body
// that is not a multipart form at all, reports ErrNoFile.
func FormFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, ErrNoFile
		}
		return nil, err
	}
	return file, nil
}

// BindProfile binds the posted form and runs the required-field checks.
func BindProfile(c *gin.Context) (models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := c.ShouldBind(&profile); err != nil {
		return models.CustomerProfile{}, err
	}
	return profile, nil
}
