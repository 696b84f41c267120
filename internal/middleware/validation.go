package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "dgrhcli/internal/errors"
)

// ContentTypeValidator rejects write requests whose Content-Type is not
// in the allowed list. GET and HEAD pass through.
func ContentTypeValidator(contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			contentType := r.Header.Get("Content-Type")
			if contentType == "" {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, apierrors.New(
					http.StatusBadRequest,
					"MISSING_CONTENT_TYPE",
					"Content-Type header is required",
				))
				return
			}

			for _, allowed := range contentTypes {
				if strings.HasPrefix(contentType, allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			render.Status(r, http.StatusUnsupportedMediaType)
			render.JSON(w, r, apierrors.NewWithDetails(
				http.StatusUnsupportedMediaType,
				"UNSUPPORTED_MEDIA_TYPE",
				"Unsupported content type",
				map[string]interface{}{
					"content_type": contentType,
					"allowed":      contentTypes,
				},
			))
		})
	}
}

// NewUploadValidator returns a validator with the tablefile rule
// registered for upload request structs.
func NewUploadValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("tablefile", isTableFilename)
	return v
}

// isTableFilename accepts csv/xlsx upload names and blocks path
// traversal.
func isTableFilename(fl validator.FieldLevel) bool {
	return ValidTableFilename(fl.Field().String())
}

// ValidTableFilename reports whether name is a safe spreadsheet upload
// name: .csv or .xlsx, no path separators, no traversal.
func ValidTableFilename(name string) bool {
	if name == "" || len(name) > 255 {
		return false
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return false
	}
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".csv") || strings.HasSuffix(lower, ".xlsx")
}
