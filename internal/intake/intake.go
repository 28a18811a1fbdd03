// Package intake validates caller input before it reaches the pricing engine.
package intake

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/cleanquote/internal/pricing"
)

// ValidationError lists every field problem found in one input.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Job checks a job description: field ranges first, then enum membership.
func Job(job pricing.JobDescription) error {
	verr := &ValidationError{}

	if err := validate.Struct(job); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate job: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.add(strings.TrimPrefix(fe.Namespace(), "JobDescription."), describe(fe))
		}
	}

	if job.ProjectType != "" && !job.ProjectType.Valid() {
		verr.add("project_type", fmt.Sprintf("unknown project type %q", job.ProjectType))
	}
	if job.CleaningType != "" && !job.CleaningType.Valid() {
		verr.add("cleaning_type", fmt.Sprintf("unknown cleaning type %q", job.CleaningType))
	}
	if job.ServiceCategory != "" && !job.ServiceCategory.Valid() {
		verr.add("service_category", fmt.Sprintf("unknown service category %q", job.ServiceCategory))
	}
	for i, svc := range job.PressureWashingServices {
		if svc.Surface != "" && !svc.Surface.Valid() {
			verr.add(fmt.Sprintf("pressure_washing_services[%d].surface", i), fmt.Sprintf("unknown surface %q", svc.Surface))
		}
	}
	if job.Overnight && job.CrewSize == 0 {
		verr.add("crew_size", "must be at least 1 for overnight jobs")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// Adjustment checks a UI percentage and direction.
func Adjustment(adj pricing.Adjustment) error {
	verr := &ValidationError{}
	if !adj.Direction.Valid() {
		verr.add("direction", fmt.Sprintf("must be %q or %q", pricing.Markup, pricing.Markdown))
	}
	if adj.Percent.IsNegative() || adj.Percent.GreaterThan(decimal.NewFromInt(100)) {
		verr.add("percent", "must be between 0 and 100")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// DecodeJob reads a JSON job description and validates it.
func DecodeJob(r io.Reader) (pricing.JobDescription, error) {
	var job pricing.JobDescription
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&job); err != nil {
		return job, fmt.Errorf("decode job: %w", err)
	}
	return job, Job(job)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	}
	return "failed " + fe.Tag()
}
