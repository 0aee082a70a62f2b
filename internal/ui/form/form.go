package form

import (
	"fmt"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// Field is one name/value pair a control contributes to a submitted form
type Field struct {
	Name  string
	Value string
}

// Source is a control that contributes fields
type Source interface {
	Fields() []Field
}

// Form collects the fields of its sources at submit time
type Form struct {
	sources []Source
}

// New creates a form over sources
func New(sources ...Source) *Form {
	return &Form{sources: sources}
}

// Add appends a source
func (f *Form) Add(src Source) {
	f.sources = append(f.sources, src)
}

// Fields returns every field in source order
func (f *Form) Fields() []Field {
	var fields []Field
	for _, src := range f.sources {
		fields = append(fields, src.Fields()...)
	}
	return fields
}

// Values groups field values by name, keeping their order.
// Empty values are kept: an unselected single field submits [""].
func (f *Form) Values() map[string][]string {
	values := make(map[string][]string)
	for _, field := range f.Fields() {
		values[field.Name] = append(values[field.Name], field.Value)
	}
	return values
}

// Names returns the field names in the order they first appear
func (f *Form) Names() []string {
	var names []string
	for _, field := range f.Fields() {
		if !slices.Contains(names, field.Name) {
			names = append(names, field.Name)
		}
	}
	return names
}

// Encode renders the submitted values as a TOML table
func (f *Form) Encode() ([]byte, error) {
	data, err := toml.Marshal(f.Values())
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}
	return data, nil
}
