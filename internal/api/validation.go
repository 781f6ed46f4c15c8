package api

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/maoivy/fritter/internal/model"
)

// RegisterValidators installs the freet-specific binding rules on gin's
// validator engine so malformed payloads are rejected before any handler
// or service code runs.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("freetcategory", validCategory)
}

// validCategory: 1-24 chars, no surrounding whitespace. Mirrors the
// service-side rule; binding just fails faster.
func validCategory(fl validator.FieldLevel) bool {
	c := fl.Field().String()
	return c != "" && len(c) <= model.MaxCategoryLen && strings.TrimSpace(c) == c
}
