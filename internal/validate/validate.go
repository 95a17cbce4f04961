// Package validate applies the declarative field rules carried in struct tags.
//
// Rules live next to the fields they guard (see model.ProfileInput):
//
//	Name string `json:"name" validate:"min=2,max=100" message:"Name must be between 2 and 100 characters"`
//
// Struct runs every rule on every field and reports all failures at once, in
// field declaration order, as an *apperror.ValidationError.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"github.com/sakif/portfolio-api/internal/apperror"
	"github.com/sakif/portfolio-api/internal/model"
)

// DefaultPhoneRegions are tried, in order, for phone numbers written
// without an international "+" prefix.
var DefaultPhoneRegions = []string{"US", "GB", "DE", "FR", "RU", "KZ", "IN"}

// Validator wraps a go-playground validator configured for this API.
// It is safe for concurrent use.
type Validator struct {
	v       *validator.Validate
	regions []string
}

// New builds a Validator. phoneRegions lists the national formats a phone
// number may be written in; nil means DefaultPhoneRegions.
func New(phoneRegions []string) (*Validator, error) {
	if len(phoneRegions) == 0 {
		phoneRegions = DefaultPhoneRegions
	}

	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under the JSON field name the client actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	val := &Validator{v: v, regions: phoneRegions}
	rules := map[string]validator.Func{
		"phone":   val.isPhone,
		"weburl":  val.isWebURL,
		"isarray": isArray,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("validate: registering %s rule: %w", tag, err)
		}
	}
	return val, nil
}

// Struct validates s, which must be a struct or a pointer to one.
// It returns nil when every rule passes.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: a programming mistake, not bad input.
		return fmt.Errorf("validate: %w", err)
	}

	typ := reflect.Indirect(reflect.ValueOf(s)).Type()
	out := &apperror.ValidationError{
		Violations: make([]apperror.Violation, 0, len(fieldErrs)),
	}
	for _, fe := range fieldErrs {
		out.Violations = append(out.Violations, apperror.Violation{
			Field:   fe.Field(),
			Message: messageFor(typ, fe),
		})
	}
	return out
}

// messageFor prefers the field's `message` tag and falls back to naming the
// rule that failed.
func messageFor(typ reflect.Type, fe validator.FieldError) string {
	if sf, ok := typ.FieldByName(fe.StructField()); ok {
		if msg := sf.Tag.Get("message"); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("%s failed the %q rule", fe.Field(), fe.Tag())
}

// isPhone accepts numbers in international form ("+7 778 095 8898") or in
// the national format of any configured region ("(650) 253-0000").
func (val *Validator) isPhone(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return false
	}

	if strings.HasPrefix(raw, "+") {
		num, err := phonenumbers.Parse(raw, "ZZ")
		return err == nil && phonenumbers.IsValidNumber(num)
	}

	for _, region := range val.regions {
		num, err := phonenumbers.Parse(raw, region)
		if err == nil && phonenumbers.IsValidNumber(num) {
			return true
		}
	}
	return false
}

// isWebURL accepts http(s) and ftp URLs with or without the scheme, so
// "github.com/ann" passes as well as "https://github.com/ann". The host must
// be a fully qualified domain name or an IP address, with no user info.
func (val *Validator) isWebURL(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" || strings.ContainsAny(raw, " \t\r\n") {
		return false
	}

	candidate := raw
	if !strings.Contains(raw, "://") {
		candidate = "https://" + raw
	}

	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" || u.User != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ftp":
	default:
		return false
	}

	host := u.Hostname()
	return val.v.Var(host, "fqdn") == nil || val.v.Var(host, "ip") == nil
}

// isArray fails a model.Skills value that was not a JSON array of strings.
func isArray(fl validator.FieldLevel) bool {
	skills, ok := fl.Field().Interface().(model.Skills)
	return ok && skills.Valid()
}
