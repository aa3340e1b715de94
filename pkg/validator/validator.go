package validator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator"
)

var (
	global      *validator.Validate
	mobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var feeCategories = map[string]struct{}{
	"Research Scholars": {},
	"Faculty Delegates": {},
	"R&D/Industry":      {},
	"International":     {},
	"Listeners":         {},
}

var fieldLabels = map[string]string{
	"Name":             "Name",
	"Email":            "Email",
	"Phone":            "Phone number",
	"Message":          "Message",
	"PaperID":          "Paper ID",
	"PaperTitle":       "Paper title",
	"Institution":      "Institution/Organization",
	"Amount":           "Amount paid",
	"FeeCategory":      "Fee category",
	"TransactionID":    "Transaction ID",
	"RegistrationDate": "Registration date",
	"JournalName":      "Journal name",
}

func init() {
	SetValidator(New())
}

func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("inmobile", validateIndianMobile)
	_ = v.RegisterValidation("feecategory", validateFeeCategory)
	_ = v.RegisterValidation("dateformat", validateDateFormat)
	_ = v.RegisterValidation("pastdate", validatePastDate)
	return v
}

func SetValidator(v *validator.Validate) {
	global = v
}

func Validator() *validator.Validate {
	return global
}

// ParseDate accepts the date formats registration clients actually send:
// full RFC3339, a timestamp without zone, or a bare calendar date.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

func validateIndianMobile(fl validator.FieldLevel) bool {
	return mobileRegex.MatchString(fl.Field().String())
}

func validateFeeCategory(fl validator.FieldLevel) bool {
	_, ok := feeCategories[fl.Field().String()]
	return ok
}

func validateDateFormat(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

// Unparseable input passes here so the dateformat tag reports it instead.
func validatePastDate(fl validator.FieldLevel) bool {
	t, err := ParseDate(fl.Field().String())
	if err != nil {
		return true
	}
	return !t.After(time.Now())
}

func Validate(ctx context.Context, structure any) error {
	return parseValidationErrors(Validator().StructCtx(ctx, structure))
}

func parseValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	vErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(vErrors) == 0 {
		return nil
	}
	ve := vErrors[0]
	label, ok := fieldLabels[ve.Field()]
	if !ok {
		label = ve.Field()
	}
	var msg string
	switch ve.Tag() {
	case "required":
		msg = label + " is required"
	case "email":
		msg = "Please enter a valid email address"
	case "max":
		msg = label + " cannot exceed " + ve.Param() + " characters"
	case "gte":
		msg = label + " cannot be negative"
	case "inmobile":
		msg = "Invalid Indian phone number format"
	case "feecategory":
		msg = fmt.Sprintf("%v is not a valid fee category", ve.Value())
	case "dateformat":
		msg = "Invalid date format"
	case "pastdate":
		msg = "Registration date cannot be in the future"
	default:
		msg = label + " is invalid"
	}
	return errors.New(msg)
}
