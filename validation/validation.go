// Package validation checks client and contact input. Structural rules live
// in struct tags of the dto package, semantic rules are plain functions.
// Both return the rejected fields as a list instead of failing on the first
// problem.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/billingcat/clients/dto"
	"github.com/billingcat/clients/model"
	"github.com/biter777/countries"
	"github.com/go-playground/validator/v10"
)

// ErrValidationFailed is matched by every Errors value via errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// Errors is a list of field errors that satisfies error.
type Errors []dto.FieldError

// Error joins all field errors as "field - reason; field - reason".
func (e Errors) Error() string {
	if len(e) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.String()
	}
	return strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidationFailed) true for Errors.
func (e Errors) Is(target error) bool {
	return target == ErrValidationFailed
}

// ClientNameLookup answers whether a client name is already in use.
type ClientNameLookup interface {
	ClientNameExists(ctx context.Context, name string) (bool, error)
}

// Validator runs structural and semantic checks.
type Validator struct {
	validate *validator.Validate
	names    ClientNameLookup
}

// New creates a Validator. names may be nil, in which case the name
// uniqueness rule is skipped.
func New(names ClientNameLookup) *Validator {
	v := validator.New()
	// report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	// The error is only non-nil for an empty tag name or a nil func.
	_ = v.RegisterValidation("contacttype", func(fl validator.FieldLevel) bool {
		return model.ParseContactType(fl.Field().String()).IsValid()
	})
	return &Validator{validate: v, names: names}
}

// Struct applies the struct tag rules of v and returns one FieldError per
// failed field. A nil result means v is structurally valid.
func (v *Validator) Struct(s any) []dto.FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []dto.FieldError{{Field: "body", Message: err.Error()}}
	}
	fields := make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, dto.FieldError{Field: fe.Field(), Message: tagMessage(fe)})
	}
	return fields
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "contacttype":
		known := make([]string, len(model.ContactTypes))
		for i, t := range model.ContactTypes {
			known[i] = string(t)
		}
		return "must be one of: " + strings.Join(known, ", ")
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed on %s=%s", fe.Tag(), fe.Param())
		}
		return "failed on " + fe.Tag()
	}
}

// Client runs the semantic rules for a new client: the name must not be in
// use and a given country must be known. The returned error is only set
// when the name lookup itself failed.
func (v *Validator) Client(ctx context.Context, c dto.ClientDTO) ([]dto.FieldError, error) {
	var fields []dto.FieldError

	if name := strings.TrimSpace(c.Name); name != "" && v.names != nil {
		taken, err := v.names.ClientNameExists(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("cannot check client name: %w", err)
		}
		if taken {
			fields = append(fields, dto.FieldError{Field: "name", Message: "client with this name already exists"})
		}
	}

	if country := strings.TrimSpace(c.Country); country != "" && CountryCode(country) == "" {
		fields = append(fields, dto.FieldError{Field: "country", Message: "unknown country"})
	}
	return fields, nil
}

// ValidateClient returns the structural errors of c followed by the
// semantic ones. The name is checked in the form it is stored in, trimmed
// and with inner whitespace collapsed.
func (v *Validator) ValidateClient(ctx context.Context, c dto.ClientDTO) ([]dto.FieldError, error) {
	c.Name = NormalizeSpace(c.Name)
	fields := v.Struct(c)
	semantic, err := v.Client(ctx, c)
	if err != nil {
		return nil, err
	}
	return append(fields, semantic...), nil
}

// ValidateContact only checks the structure of a contact. Value rules that
// depend on the type are applied by the service.
func (v *Validator) ValidateContact(c dto.ContactDTO) []dto.FieldError {
	return v.Struct(c)
}

// NormalizeSpace trims s and collapses inner runs of whitespace to one space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CountryCode resolves a country name or code to its ISO alpha-2 code. It
// returns "" for unknown input.
func CountryCode(s string) string {
	c := countries.ByName(strings.TrimSpace(s))
	if c == countries.Unknown {
		return ""
	}
	return c.Alpha2()
}
