package domain

import (
	"fmt"
	"reflect"
	"strings"

	pkgerrors "github.com/angelmondragon/retail-decisions/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

var validate = newValidator()

type enumValue interface {
	IsValid() bool
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(enumValue)
		return ok && value.IsValid()
	})
	return v
}

// ValidateOrder checks an order snapshot. Empty orders are accepted.
func ValidateOrder(order Order) error {
	return formatValidationErrors(validate.Struct(order))
}

// ValidateCustomer checks a customer profile.
func ValidateCustomer(customer CustomerProfile) error {
	return formatValidationErrors(validate.Struct(customer))
}

// ValidatePromotionRules checks that every rate is a fraction in [0,1].
func ValidatePromotionRules(rules PromotionRules) error {
	return formatValidationErrors(validate.Struct(rules))
}

// ValidateWarehouses checks each warehouse snapshot.
func ValidateWarehouses(warehouses []WarehouseAvailability) error {
	var errs error
	for i := range warehouses {
		if err := validate.Struct(warehouses[i]); err != nil {
			errs = multierr.Append(errs, prefixed(fmt.Sprintf("warehouses[%d]", i), err))
		}
	}
	return formatValidationErrors(errs)
}

// ValidatePricingInput validates the full pricing tuple and reports every failure at once.
func ValidatePricingInput(order Order, customer CustomerProfile, rules PromotionRules) error {
	return mergeValidation(
		ValidateOrder(order),
		ValidateCustomer(customer),
		ValidatePromotionRules(rules),
	)
}

type prefixedErrors struct {
	prefix string
	errs   validator.ValidationErrors
}

func (p prefixedErrors) Error() string {
	return p.prefix + ": " + p.errs.Error()
}

func prefixed(prefix string, err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		return prefixedErrors{prefix: prefix, errs: errs}
	}
	return err
}

func mergeValidation(errs ...error) error {
	combined := multierr.Combine(errs...)
	if combined == nil {
		return nil
	}
	details := map[string]string{}
	for _, err := range multierr.Errors(combined) {
		if typed := pkgerrors.As(err); typed != nil {
			if fields, ok := typed.Details().(map[string]string); ok {
				for k, v := range fields {
					details[k] = v
				}
				continue
			}
		}
		details[fmt.Sprintf("error_%d", len(details))] = err.Error()
	}
	return pkgerrors.Wrap(pkgerrors.CodeInvalidInput, combined, "validation failed").WithDetails(details)
}

func formatValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	details := map[string]string{}
	for _, e := range multierr.Errors(err) {
		prefix := ""
		errs, ok := e.(validator.ValidationErrors)
		if p, isPrefixed := e.(prefixedErrors); isPrefixed {
			prefix, errs, ok = p.prefix+".", p.errs, true
		}
		if !ok {
			return pkgerrors.Wrap(pkgerrors.CodeInvalidInput, err, "validation failed")
		}
		for _, fieldErr := range errs {
			details[prefix+fieldErr.Namespace()] = validationMessage(fieldErr)
		}
	}
	return pkgerrors.New(pkgerrors.CodeInvalidInput, "validation failed").WithDetails(details)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "enum":
		return fmt.Sprintf("unknown value %q", fmt.Sprint(fe.Value()))
	}
	return "is invalid"
}
