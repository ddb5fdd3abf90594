package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	en2 "github.com/go-playground/validator/translations/en"
	"gopkg.in/go-playground/validator.v9"
)

// ValidateStruct validates a struct (such as the demo gateway's request
// payload or the bootstrap Config) against its `validate` struct tags,
// translating field errors into a ValidationKnownFieldsError.
func ValidateStruct(s any) error {
	v, trans := newValidator()

	k := reflect.ValueOf(s).Kind()
	if k == reflect.Ptr {
		k = reflect.ValueOf(s).Elem().Kind()
	}

	if k != reflect.Struct {
		return nil
	}

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	return ValidationKnownFieldsError{
		Code:    "validation",
		Title:   "Invalid Request",
		Message: "One or more fields failed validation.",
		Fields:  fields(fieldErrs, trans),
	}
}

//nolint:ireturn
func newValidator() (*validator.Validate, ut.Translator) {
	locale := en.New()
	uni := ut.New(locale, locale)

	trans, _ := uni.GetTranslator("en")

	v := validator.New()

	if err := en2.RegisterDefaultTranslations(v, trans); err != nil {
		panic(err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v, trans
}

func fields(errs validator.ValidationErrors, trans ut.Translator) FieldValidations {
	if len(errs) == 0 {
		return nil
	}

	out := make(FieldValidations, len(errs))
	for _, e := range errs {
		out[e.Field()] = e.Translate(trans)
	}

	return out
}
