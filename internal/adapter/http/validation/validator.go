package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"crmchat/internal/core/domain"
	"crmchat/internal/core/model/response"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names.
	Validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]

		if name == "-" {
			return ""
		}

		if name == "" {
			return field.Name
		}

		return name
	})

	english := en.New()
	uni := ut.New(english, english)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

func addCustomTranslations() {
	Validator.RegisterTranslation("required", Translator, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is required", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", fe.Field())
		return t
	})
}

// FormatValidationErrors renders validator, domain and JSON decoding
// errors as field/message pairs.
func FormatValidationErrors(err error) []response.ValidationError {
	var errs []response.ValidationError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			errs = append(errs, response.ValidationError{
				Field:   fieldError.Field(),
				Message: fieldError.Translate(Translator),
			})
		}

		return errs
	}

	var domainErr *domain.ValidationError
	if errors.As(err, &domainErr) {
		return []response.ValidationError{{Field: domainErr.Field, Message: domainErr.Message}}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}

		return []response.ValidationError{{Field: field, Message: field + " must be a " + typeErr.Type.String()}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []response.ValidationError{{Field: "body", Message: "malformed JSON"}}
	}

	if err != nil {
		errs = append(errs, response.ValidationError{Field: "body", Message: err.Error()})
	}

	return errs
}
