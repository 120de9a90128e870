package form

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field names as they appear in the HTML form and in Errors.
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldLinkedIn    = "linkedin"
	FieldPortfolio   = "portfolio"
	FieldResume      = "resume"
	FieldCoverLetter = "coverLetter"
)

// space matches what browsers treat as whitespace: ASCII space characters, the Unicode
// separators and the BOM.
const space = `\s\p{Z}\x{FEFF}`

var (
	nameRegex      = regexp.MustCompile(`^[A-Za-z` + space + `-]{2,}$`)
	emailRegex     = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	phoneRegex     = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
	linkedInRegex  = regexp.MustCompile(`^(?:https?://)?(?:www\.)?linkedin\.com/in/[\w-]+/?$`)
	portfolioRegex = regexp.MustCompile(`^https?://.+\..+`)
)

type fieldMessages struct {
	required string
	invalid  string
}

var messages = map[string]fieldMessages{
	FieldFirstName: {required: "First name is required", invalid: "Please enter a valid first name"},
	FieldLastName:  {required: "Last name is required", invalid: "Please enter a valid last name"},
	FieldEmail:     {required: "Email is required", invalid: "Please enter a valid email address"},
	FieldPhone:     {invalid: "Please enter a valid phone number"},
	FieldLinkedIn:  {required: "LinkedIn URL is required", invalid: "Please enter a valid LinkedIn profile URL"},
	FieldPortfolio: {invalid: "Please enter a valid URL"},
	FieldResume:    {required: "Resume is required"},
}

// profile mirrors the text fields of State for struct validation.
type profile struct {
	FirstName string `form:"firstName" validate:"required,personname"`
	LastName  string `form:"lastName" validate:"required,personname"`
	Email     string `form:"email" validate:"required,applicantemail"`
	Phone     string `form:"phone" validate:"omitempty,usphone"`
	LinkedIn  string `form:"linkedin" validate:"required,linkedin"`
	Portfolio string `form:"portfolio" validate:"omitempty,portfolio"`
}

var validate = newValidator()

func regexRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	rules := map[string]*regexp.Regexp{
		"personname":     nameRegex,
		"applicantemail": emailRegex,
		"usphone":        phoneRegex,
		"linkedin":       linkedInRegex,
		"portfolio":      portfolioRegex,
	}
	for tag, re := range rules {
		if err := v.RegisterValidation(tag, regexRule(re)); err != nil {
			panic(err)
		}
	}
	return v
}

// Errors maps a field name to a user-facing message. An empty Errors means the form is valid.
type Errors map[string]string

// Error implements error so a failed validation can travel through error returns.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field has an error.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Validate evaluates every field rule against the state. No rule short-circuits another.
func Validate(s *State) Errors {
	errs := Errors{}

	p := profile{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Phone:     s.Phone,
		LinkedIn:  s.LinkedIn,
		Portfolio: s.Portfolio,
	}
	if err := validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			panic(err) // only reachable if profile stops being a struct
		}
		for _, fe := range fieldErrs {
			msgs := messages[fe.Field()]
			if fe.Tag() == "required" {
				errs[fe.Field()] = msgs.required
			} else {
				errs[fe.Field()] = msgs.invalid
			}
		}
	}

	if s.Resume == nil {
		errs[FieldResume] = messages[FieldResume].required
	} else if res := s.Resume.Validate(); !res.OK() {
		errs[FieldResume] = res.Message()
	}

	if s.CoverLetter != nil {
		if res := s.CoverLetter.Validate(); !res.OK() {
			errs[FieldCoverLetter] = res.Message()
		}
	}

	return errs
}

// ValidateField evaluates the rules and returns the message for a single field, or "".
func ValidateField(s *State, field string) string {
	return Validate(s)[field]
}
