// Package forms declares the fields of each submission form and coerces
// raw text input into a typed JSON payload.
package forms

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind is the expected type of a field value.
type Kind int

const (
	Text Kind = iota
	Number
	Integer
	Date
	// VehicleRef is an integer vehicle id chosen from the directory.
	VehicleRef
)

const dateLayout = "2006-01-02"

type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	// Default is used when the field is left blank.
	Default string
}

// Schema describes one form and the endpoint it posts to.
type Schema struct {
	Name          string
	Endpoint      string
	SuccessNotice string
	Fields        []Field
}

var FuelLog = Schema{
	Name:          "fuel_log",
	Endpoint:      "/fuel_logs",
	SuccessNotice: "Fuel log added successfully!",
	Fields: []Field{
		{Name: "vehicle_id", Label: "Vehicle", Kind: VehicleRef, Required: true},
		{Name: "log_date", Label: "Date", Kind: Date, Required: true},
		{Name: "fuel_amount", Label: "Fuel (L)", Kind: Number, Required: true},
		{Name: "fuel_cost", Label: "Cost", Kind: Number},
		{Name: "odometer", Label: "Odometer (km)", Kind: Number, Required: true},
		{Name: "fuel_type", Label: "Fuel type", Kind: Text, Required: true, Default: "petrol"},
		{Name: "notes", Label: "Notes", Kind: Text},
	},
}

var Trip = Schema{
	Name:          "trip",
	Endpoint:      "/trips",
	SuccessNotice: "Trip recorded successfully!",
	Fields: []Field{
		{Name: "vehicle_id", Label: "Vehicle", Kind: VehicleRef, Required: true},
		{Name: "trip_date", Label: "Date", Kind: Date, Required: true},
		{Name: "start_location", Label: "From", Kind: Text, Required: true},
		{Name: "end_location", Label: "To", Kind: Text, Required: true},
		{Name: "distance", Label: "Distance (km)", Kind: Number, Required: true},
		{Name: "duration", Label: "Duration (min)", Kind: Integer},
		{Name: "purpose", Label: "Purpose", Kind: Text, Default: "commute"},
		{Name: "notes", Label: "Notes", Kind: Text},
	},
}

// ValidationError maps field names to what is wrong with them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Defaults returns the initial value of every field: today's date for date
// fields, the declared default otherwise.
func (s Schema) Defaults(now time.Time) map[string]string {
	out := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		switch {
		case f.Kind == Date:
			out[f.Name] = now.Format(dateLayout)
		default:
			out[f.Name] = f.Default
		}
	}
	return out
}

// Coerce validates raw values against the schema and returns the JSON
// payload. Blank optional fields are omitted; unknown keys are dropped.
func (s Schema) Coerce(values map[string]string) (map[string]any, error) {
	payload := make(map[string]any, len(s.Fields))
	problems := make(map[string]string)

	for _, f := range s.Fields {
		raw := strings.TrimSpace(values[f.Name])
		if raw == "" {
			raw = f.Default
		}
		if raw == "" {
			if f.Required {
				problems[f.Name] = "required"
			}
			continue
		}

		v, err := coerceValue(f.Kind, raw)
		if err != nil {
			problems[f.Name] = err.Error()
			continue
		}
		payload[f.Name] = v
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Fields: problems}
	}
	return payload, nil
}

func coerceValue(k Kind, raw string) (any, error) {
	switch k {
	case Number:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("must be a number")
		}
		return f, nil
	case Integer, VehicleRef:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("must be a whole number")
		}
		return n, nil
	case Date:
		if _, err := time.Parse(dateLayout, raw); err != nil {
			return nil, fmt.Errorf("must be a date (YYYY-MM-DD)")
		}
		return raw, nil
	default:
		return raw, nil
	}
}
