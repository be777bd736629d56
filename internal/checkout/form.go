// Package checkout computes order totals, validates the contact and delivery
// form and submits orders built from a session cart.
package checkout

import (
	"reflect"
	"regexp"
	"strings"

	"shoe-storefront/internal/domain"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^\+?\d[\d\s-]{9,14}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// fieldMessages maps a form field to the message shown when any of its rules fail
var fieldMessages = map[string]string{
	"fullName":      "Full name is required.",
	"phone":         "Enter a valid phone number.",
	"email":         "Enter a valid email.",
	"address1":      "Address line is required.",
	"city":          "City is required.",
	"state":         "State is required.",
	"lga":           "LGA is required.",
	"paymentMethod": "Select a payment method.",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})

	return v
}

// Form is the checkout contact and delivery form
type Form struct {
	FullName      string               `json:"fullName" validate:"required"`
	Phone         string               `json:"phone" validate:"phone"`
	Email         string               `json:"email" validate:"looseemail"`
	Address1      string               `json:"address1" validate:"required"`
	Address2      string               `json:"address2"`
	City          string               `json:"city" validate:"required"`
	State         string               `json:"state" validate:"required"`
	LGA           string               `json:"lga" validate:"required"`
	Landmark      string               `json:"landmark"`
	Notes         string               `json:"notes"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" validate:"required,oneof=pay_on_delivery pay_now"`
}

// EmptyForm is the form a customer starts from, and the one they return to after an order is placed
func EmptyForm() Form {
	return Form{PaymentMethod: domain.PayOnDelivery}
}

// Normalize returns a copy with surrounding whitespace removed from every field
func (f Form) Normalize() Form {
	return Form{
		FullName:      strings.TrimSpace(f.FullName),
		Phone:         strings.TrimSpace(f.Phone),
		Email:         strings.TrimSpace(f.Email),
		Address1:      strings.TrimSpace(f.Address1),
		Address2:      strings.TrimSpace(f.Address2),
		City:          strings.TrimSpace(f.City),
		State:         strings.TrimSpace(f.State),
		LGA:           strings.TrimSpace(f.LGA),
		Landmark:      strings.TrimSpace(f.Landmark),
		Notes:         strings.TrimSpace(f.Notes),
		PaymentMethod: domain.PaymentMethod(strings.TrimSpace(string(f.PaymentMethod))),
	}
}

// Validate returns the message of every failing field keyed by its JSON name.
// An empty map means the form can be submitted.
func Validate(f Form) map[string]string {
	errs := map[string]string{}

	err := validate.Struct(f.Normalize())
	if err == nil {
		return errs
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = err.Error()
		return errs
	}

	for _, fe := range fieldErrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Invalid value."
		}
		errs[fe.Field()] = msg
	}

	return errs
}
