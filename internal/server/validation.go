package server

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

type createPostRequest struct {
	Slug        string   `json:"slug" validate:"notblank"`
	Title       string   `json:"title" validate:"notblank"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Content     string   `json:"content" validate:"notblank"`
}

// normalize trims the metadata fields. The body is stored as sent.
func (req *createPostRequest) normalize() {
	req.Slug = strings.TrimSpace(req.Slug)
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	tags := make([]string, 0, len(req.Tags))
	for _, tag := range req.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	req.Tags = tags
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrors {
		verr.Fields = append(verr.Fields, strings.ToLower(fe.Field()))
	}
	return verr
}

type previewRequest struct {
	Content string `json:"content"`
}

type previewResponse struct {
	HTML string `json:"html"`
}

type healthResponse struct {
	Status string `json:"status"`
}
