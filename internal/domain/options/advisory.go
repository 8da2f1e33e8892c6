package options

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osa030/trackbind/internal/domain/player"
)

// Advisory is a note about a value the native module will probably clamp,
// ignore or reject. Advisories never block a call.
type Advisory struct {
	Field   string
	Message string
}

func (a Advisory) String() string {
	return a.Field + ": " + a.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("ios_category", func(fl validator.FieldLevel) bool {
		return player.IOSCategory(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("ios_category_mode", func(fl validator.FieldLevel) bool {
		return player.IOSCategoryMode(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("ios_category_option", func(fl validator.FieldLevel) bool {
		return player.IOSCategoryOptions(fl.Field().String()).Valid()
	})
	return v
}

func advisories(s any) []Advisory {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Advisory{{Field: "", Message: err.Error()}}
	}
	out := make([]Advisory, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Advisory{
			Field:   fieldPath(fe.Namespace()),
			Message: describe(fe),
		})
	}
	return out
}

// fieldPath drops the struct name prefix from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("expected >= %s, got %v", fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("expected <= %s, got %v", fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("expected > %s, got %v", fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("at most %s entries are shown, got %v", fe.Param(), reflect.ValueOf(fe.Value()).Len())
	case "ios_category", "ios_category_mode", "ios_category_option":
		return fmt.Sprintf("unknown value %q", fe.Value())
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}

// Advisories reports advisory range problems. The options are still passed
// to the native module unchanged.
func (o PlayerOptions) Advisories() []Advisory {
	out := advisories(o)
	if o.MinBuffer != nil && o.MaxBuffer != nil && *o.MaxBuffer < *o.MinBuffer {
		out = append(out, Advisory{
			Field:   "maxBuffer",
			Message: fmt.Sprintf("smaller than minBuffer (%v < %v)", *o.MaxBuffer, *o.MinBuffer),
		})
	}
	return out
}

// Advisories reports advisory range problems. The options are still passed
// to the native module unchanged.
func (o MetadataOptions) Advisories() []Advisory {
	return advisories(o)
}
