package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/venturelens/assessment-engine/internal/models"
)

// Custom validation functions

func ValidateQuestionType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, validType := range models.QuestionTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func ValidateDifficultyLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, validLevel := range models.DifficultyLevels {
		if string(validLevel) == value {
			return true
		}
	}
	return false
}

func ValidateCompanyStage(fl validator.FieldLevel) bool {
	validStages := []models.CompanyStage{
		models.StageIdea,
		models.StagePrototype,
		models.StagePreSeed,
		models.StageSeed,
		models.StageSeriesA,
		models.StageSeriesB,
		models.StageGrowth,
		models.StageMature,
	}

	value := fl.Field().String()
	for _, validStage := range validStages {
		if string(validStage) == value {
			return true
		}
	}
	return false
}

func ValidateIndustry(fl validator.FieldLevel) bool {
	validIndustries := []models.Industry{
		models.IndustryB2BSaaS,
		models.IndustryEnterprise,
		models.IndustryConsumer,
		models.IndustryMarketplace,
	}

	value := fl.Field().String()
	for _, validIndustry := range validIndustries {
		if string(validIndustry) == value {
			return true
		}
	}
	return false
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", ValidateQuestionType)
	validate.RegisterValidation("difficulty_level", ValidateDifficultyLevel)
	validate.RegisterValidation("company_stage", ValidateCompanyStage)
	validate.RegisterValidation("industry", ValidateIndustry)

	// Register custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// NewValidator returns a validator with the custom rules registered.
func NewValidator() *validator.Validate {
	validate := validator.New()
	RegisterCustomValidators(validate)
	return validate
}
