package validator

import (
	"hiremind_backend/internal/auth"
	"hiremind_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила.
// Ошибка регистрации - ошибка программиста, поэтому паникуем.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic("failed to register validation tag '" + tag + "': " + err.Error())
		}
	}

	mustRegister("job_status", validateJobStatus)
	mustRegister("candidate_status", validateCandidateStatus)
	mustRegister("template_type", validateTemplateType)
	mustRegister("password", validatePassword)
}

// Пустые значения пропускаем, для этого есть 'required'

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.JobStatus(value).IsValid()
}

func validateCandidateStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.CandidateStatus(value).IsValid()
}

func validateTemplateType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.EmailTemplateType(value).IsValid()
}

func validatePassword(fl validator.FieldLevel) bool {
	return auth.ValidatePassword(fl.Field().String()) == nil
}
