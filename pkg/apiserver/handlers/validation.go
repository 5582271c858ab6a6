package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/workplan/workplan/pkg/model"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// hours_range enforces the per-assignment weekly hours bounds at
		// binding time.
		_ = v.RegisterValidation("hours_range", func(fl validator.FieldLevel) bool {
			hours := fl.Field().Int()
			return hours >= model.MinHoursPerWeek && hours <= model.MaxHoursPerWeek
		})
	}
}
