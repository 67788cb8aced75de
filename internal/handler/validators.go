package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/healthmate/healthmate-api/internal/model"
)

// RegisterValidators installs the closed-enum validators on gin's binding
// engine so invalid categories and kinds are rejected at the boundary.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("report_type", func(fl validator.FieldLevel) bool {
		return model.ReportType(fl.Field().String()).Valid()
	})

	_ = v.RegisterValidation("file_type", func(fl validator.FieldLevel) bool {
		return model.FileType(fl.Field().String()).Valid()
	})

	_ = v.RegisterValidation("blood_sugar_type", func(fl validator.FieldLevel) bool {
		return model.BloodSugarType(fl.Field().String()).Valid()
	})

	_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case model.GenderMale, model.GenderFemale, model.GenderOther:
			return true
		}
		return false
	})

	_ = v.RegisterValidation("blood_group", func(fl validator.FieldLevel) bool {
		for _, g := range model.BloodGroups {
			if fl.Field().String() == g {
				return true
			}
		}
		return false
	})
}
