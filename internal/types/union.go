package types

// Union represents exactly one of a fixed, ordered set of option types.
//
// Union-to-union equality compares option lists by exact order and count,
// not as sets: (or number string) and (or string number) are different
// types. Narrowed conditionals rely on this literal behavior, so it is
// preserved as is; see DESIGN.md for the fragility note.
type Union struct {
	name    string
	options []Type
}

// NewUnion builds a union over the given ordered options.
func NewUnion(name string, options []Type) *Union {
	return &Union{name: name, options: options}
}

func (u *Union) Name() string { return u.name }

// Options returns the ordered option types.
func (u *Union) Options() []Type { return u.options }

// Equals: self-identity; alias delegation; exact ordered match against
// another union; against a plain type, true when any option equals it.
func (u *Union) Equals(other Type) bool {
	switch o := other.(type) {
	case *Union:
		if o == u {
			return true
		}
		if len(o.options) != len(u.options) {
			return false
		}
		for i, opt := range u.options {
			if !opt.Equals(o.options[i]) {
				return false
			}
		}
		return true
	case *Alias:
		return o.Equals(u)
	default:
		for _, opt := range u.options {
			if opt.Equals(other) {
				return true
			}
		}
		return false
	}
}
