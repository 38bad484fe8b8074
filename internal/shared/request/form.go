package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"restaurant-review-backend/internal/infrastructure/storage"
	"restaurant-review-backend/internal/shared/apperror"
)

const ErrCodeInvalidBody = "INVALID_BODY"

// Form is a create submission read from a JSON, urlencoded or multipart body.
// Values are kept as strings so every encoding is handled the same way.
type Form struct {
	values map[string]string
	Files  []*multipart.FileHeader
}

// ParseForm reads the request body. Uploaded files are only collected from
// the "images" multipart field.
func ParseForm(c *gin.Context) (*Form, error) {
	form := &Form{values: map[string]string{}}

	if strings.HasPrefix(c.ContentType(), "application/json") {
		var body map[string]interface{}
		decoder := json.NewDecoder(c.Request.Body)
		decoder.UseNumber()
		if err := decoder.Decode(&body); err != nil {
			return nil, apperror.Validation(ErrCodeInvalidBody, "Request body is not valid JSON.")
		}
		for key, value := range body {
			if value == nil {
				continue
			}
			s, ok := jsonFormValue(value)
			if !ok {
				return nil, apperror.Validation(ErrCodeInvalidBody, fmt.Sprintf("Field %q must be a string, number, boolean or list of strings.", key))
			}
			form.values[key] = s
		}
		return form, nil
	}

	multipartForm, err := c.MultipartForm()
	switch {
	case err == nil:
		for key, values := range multipartForm.Value {
			if len(values) > 0 {
				form.values[key] = values[0]
			}
		}
		form.Files = multipartForm.File["images"]
	case errors.Is(err, http.ErrNotMultipart):
		if err := c.Request.ParseForm(); err != nil {
			return nil, apperror.Validation(ErrCodeInvalidBody, "Request body could not be parsed.")
		}
		for key := range c.Request.PostForm {
			form.values[key] = c.Request.PostForm.Get(key)
		}
	default:
		return nil, apperror.Validation(ErrCodeInvalidBody, "Request body could not be parsed.")
	}

	return form, nil
}

// jsonFormValue flattens a JSON value the way a urlencoded body would carry
// it. String lists are comma joined, like the "images" field. Objects and
// mixed lists have no flat form.
func jsonFormValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case []interface{}:
		items := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return "", false
			}
			items[i] = s
		}
		return strings.Join(items, ","), true
	default:
		return "", false
	}
}

func (f *Form) Get(key string) string {
	return f.values[key]
}

// Images returns the submitted pictures. A non-empty "images" value (comma
// separated URLs) takes precedence over uploaded files.
func (f *Form) Images(encoder *storage.ImageEncoder) ([]string, error) {
	if raw := f.Get("images"); strings.TrimSpace(raw) != "" {
		return storage.ParseImageURLs(raw, encoder.MaxFiles)
	}
	if len(f.Files) == 0 {
		return nil, nil
	}
	return encoder.EncodeAll(f.Files)
}
