package board

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("field"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// requiredFields are checked in declaration order, so the first missing field is reported first
type requiredFields struct {
	Course    string `field:"course" validate:"required"`
	Location  string `field:"location" validate:"required"`
	Vibe      string `field:"vibe" validate:"required"`
	SecretKey string `field:"secret_key" validate:"required"`
}

// CheckRequired reports the first missing text field of a post. Surfaces that parse the
// session window themselves call it first, so a missing field wins over a bad time.
func CheckRequired(course, location, vibe, secretKey string) error {
	return checkRequired(&requiredFields{
		Course:    strings.TrimSpace(course),
		Location:  strings.TrimSpace(location),
		Vibe:      strings.TrimSpace(vibe),
		SecretKey: strings.TrimSpace(secretKey),
	})
}

func checkRequired(fields *requiredFields) error {
	if err := validate.Struct(fields); err != nil {
		return translate(err)
	}
	return nil
}

// createFields is the trimmed form of a CreateSessionInput
type createFields struct {
	requiredFields
	Description string
	vibe        models.Vibe
}

// validateCreate runs the posting rules in order: required fields, lengths, vibe, interval, duration
func (s *service) validateCreate(input *CreateSessionInput) (*createFields, error) {
	fields := &createFields{
		requiredFields: requiredFields{
			Course:    strings.TrimSpace(input.Course),
			Location:  strings.TrimSpace(input.Location),
			Vibe:      strings.TrimSpace(input.Vibe),
			SecretKey: strings.TrimSpace(input.SecretKey),
		},
		Description: strings.TrimSpace(input.Description),
	}

	if err := checkRequired(&fields.requiredFields); err != nil {
		return nil, err
	}
	if input.StartTime.IsZero() {
		return nil, fieldError("start_time", ErrMissingField)
	}
	if input.EndTime.IsZero() {
		return nil, fieldError("end_time", ErrMissingField)
	}

	if err := checkLength("location", fields.Location, s.rules.MaxLocationLength); err != nil {
		return nil, err
	}
	if err := checkLength("description", fields.Description, s.rules.MaxDescriptionLength); err != nil {
		return nil, err
	}

	vibe, err := s.normalizeVibe(fields.Vibe)
	if err != nil {
		return nil, err
	}
	fields.vibe = vibe

	if !input.EndTime.After(input.StartTime) {
		return nil, ErrInvalidInterval
	}

	if s.rules.MaxDuration > 0 && input.EndTime.Sub(input.StartTime) > s.rules.MaxDuration {
		return nil, ErrDurationExceeded
	}

	return fields, nil
}

// validateLocation applies the create-time location rules to an edited location
func (s *service) validateLocation(location string) (string, error) {
	location = strings.TrimSpace(location)
	if err := validate.Var(location, "required"); err != nil {
		return "", fieldError("location", ErrMissingField)
	}
	if err := checkLength("location", location, s.rules.MaxLocationLength); err != nil {
		return "", err
	}
	return location, nil
}

// normalizeVibe accepts any vibe when the board has no fixed list, otherwise one of the list
// (case-insensitively), returned in its canonical spelling
func (s *service) normalizeVibe(vibe string) (models.Vibe, error) {
	if len(s.rules.Vibes) == 0 {
		return models.Vibe(vibe), nil
	}
	for _, allowed := range s.rules.Vibes {
		if strings.EqualFold(string(allowed), vibe) {
			return allowed, nil
		}
	}
	return "", fieldError("vibe", ErrInvalidVibe)
}

// checkLength enforces a character limit; limit <= 0 disables it
func checkLength(field, value string, limit int) error {
	if limit <= 0 {
		return nil
	}
	if err := validate.Var(value, "max="+strconv.Itoa(limit)); err != nil {
		return fieldError(field, ErrFieldTooLong)
	}
	return nil
}

// translate maps the first validator failure onto a board error
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	first := verrs[0]
	switch first.Tag() {
	case "required":
		return fieldError(first.Field(), ErrMissingField)
	case "max":
		return fieldError(first.Field(), ErrFieldTooLong)
	default:
		return fieldError(first.Field(), BoardError(first.Error()))
	}
}
