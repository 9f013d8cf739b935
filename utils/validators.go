package utils

import (
	"main/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	Validate.RegisterValidation("timerange", ValidateTimeRangeRule)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("timerange", ValidateTimeRangeRule)
	}
}

func ValidateTimeRangeRule(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // absent time range means "all time"
	}
	return model.TimeRange(value).Valid()
}
