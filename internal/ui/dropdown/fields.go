package dropdown

import (
	"dropgrip/internal/domain"
	"dropgrip/internal/ui/form"
)

// Fields returns the form fields mirroring the current selection.
// Multiple mode yields one field per selected value in selection order, single
// mode exactly one field whose value may be empty, and an unnamed dropdown none.
func (m *Model) Fields() []form.Field {
	if m.cfg.name == "" {
		return nil
	}
	sel := m.selection.Selection()
	if m.cfg.mode == domain.ModeMultiple {
		fields := make([]form.Field, 0, sel.Len())
		for _, value := range sel.Values() {
			fields = append(fields, form.Field{Name: m.cfg.name, Value: value})
		}
		return fields
	}
	field := form.Field{Name: m.cfg.name}
	if opt, ok := sel.Option(); ok {
		field.Value = opt.Value
	}
	return []form.Field{field}
}
