// Package validate envuelve go-playground/validator con mensajes en inglés
// y nombres de campo tomados del tag json.
package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Error es una falla de validación con el primer campo inválido.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	once  sync.Once
	v     *validator.Validate
	trans ut.Translator
)

func get() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ = uni.GetTranslator("en")

		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)
	})
	return v, trans
}

// Struct valida s. Devuelve *Error (primer campo) o nil.
func Struct(s any) error {
	val, tr := get()
	err := val.Struct(s)
	if err == nil {
		return nil
	}

	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return &Error{Message: inv.Error()}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &Error{Field: fe.Field(), Message: fe.Translate(tr)}
	}
	return &Error{Message: err.Error()}
}
