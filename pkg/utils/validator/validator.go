// Package validator wraps go-playground/validator with English and Indonesian
// error translations for request DTOs.
package validator

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
	idtrans "github.com/go-playground/validator/v10/translations/id"
)

// TagNotBlank rejects strings made only of whitespace.
const TagNotBlank = "notblank"

// Validator validates structs and renders failures in the caller's language.
type Validator struct {
	validate *validator.Validate
	uni      *ut.UniversalTranslator
}

var (
	defaultValidator *Validator
	once             sync.Once
)

// Default returns the process-wide validator.
func Default() *Validator {
	once.Do(func() {
		defaultValidator = New()
	})
	return defaultValidator
}

// New creates a validator with the custom rules and both translations registered.
func New() *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		uni:      ut.New(en.New(), en.New(), id.New()),
	}

	// 使用 json tag 作为字段名
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.validate.RegisterValidation(TagNotBlank, func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
	})

	if trans, ok := v.uni.GetTranslator("en"); ok {
		_ = entrans.RegisterDefaultTranslations(v.validate, trans)
		registerTranslation(v.validate, trans, TagNotBlank, "{0} must not be blank")
	}
	if trans, ok := v.uni.GetTranslator("id"); ok {
		_ = idtrans.RegisterDefaultTranslations(v.validate, trans)
		registerTranslation(v.validate, trans, TagNotBlank, "{0} tidak boleh kosong")
	}
	return v
}

// Struct validates s and returns nil or an *Error carrying translated messages.
func (v *Validator) Struct(s interface{}, lang string) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	trans := v.translator(lang)
	out := &Error{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		msg := fe.Translate(trans)
		out.Fields[fe.Field()] = msg
		out.Messages = append(out.Messages, msg)
	}
	return out
}

func (v *Validator) translator(lang string) ut.Translator {
	if strings.HasPrefix(strings.ToLower(lang), "id") {
		if trans, ok := v.uni.GetTranslator("id"); ok {
			return trans
		}
	}
	trans, _ := v.uni.GetTranslator("en")
	return trans
}

func registerTranslation(validate *validator.Validate, trans ut.Translator, tag, message string) {
	_ = validate.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		},
	)
}

// Error is a translated validation failure.
type Error struct {
	Fields   map[string]string
	Messages []string
}

// Error joins all messages.
func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}
