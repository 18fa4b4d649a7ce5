package mapper

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// FieldFunc copies one destination field from src into dst.
type FieldFunc[S, D any] func(src *S, dst *D)

type member[S, D any] struct {
	name string
	copy FieldFunc[S, D]
}

// Profile is the field table for one (source, destination) pair.
// Every exported field of D must be either mapped with ForMember or listed
// in Ignore; Validate enforces that once, when the Mapper is built.
type Profile[S, D any] struct {
	members []member[S, D]
	ignored map[string]struct{}
}

func NewProfile[S, D any]() *Profile[S, D] {
	return &Profile[S, D]{ignored: map[string]struct{}{}}
}

// ForMember registers the copy function for destination field name.
func (p *Profile[S, D]) ForMember(name string, fn FieldFunc[S, D]) *Profile[S, D] {
	p.members = append(p.members, member[S, D]{name: name, copy: fn})
	return p
}

// Ignore marks destination fields that Map must never write.
func (p *Profile[S, D]) Ignore(names ...string) *Profile[S, D] {
	for _, n := range names {
		p.ignored[n] = struct{}{}
	}
	return p
}

// Map copies every registered member from src into dst. A nil src leaves dst untouched.
func (p *Profile[S, D]) Map(src *S, dst *D) {
	if src == nil || dst == nil {
		return
	}
	for _, m := range p.members {
		m.copy(src, dst)
	}
}

// MapNew maps src onto a zero D.
func (p *Profile[S, D]) MapNew(src *S) D {
	var dst D
	p.Map(src, &dst)
	return dst
}

// Validate checks the table against D's exported fields: each field is
// mapped or ignored exactly once and no entry names a missing field.
func (p *Profile[S, D]) Validate() error {
	dt := reflect.TypeOf((*D)(nil)).Elem()
	st := reflect.TypeOf((*S)(nil)).Elem()
	pair := st.Name() + " -> " + dt.Name()

	fields := map[string]bool{}
	for _, f := range reflect.VisibleFields(dt) {
		if f.IsExported() && !f.Anonymous {
			fields[f.Name] = false
		}
	}

	var problems []string
	seen := func(name, kind string) {
		done, ok := fields[name]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("%s %q is not a field of %s", kind, name, dt.Name()))
		case done:
			problems = append(problems, fmt.Sprintf("field %q configured twice", name))
		default:
			fields[name] = true
		}
	}

	for _, m := range p.members {
		seen(m.name, "member")
	}
	for n := range p.ignored {
		seen(n, "ignored")
	}
	for name, done := range fields {
		if !done {
			problems = append(problems, fmt.Sprintf("unmapped field %q", name))
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("mapping %s: %s", pair, strings.Join(problems, "; "))
	}
	return nil
}
