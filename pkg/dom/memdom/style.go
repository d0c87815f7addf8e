package memdom

import "github.com/vango-dev/livetree/pkg/dom"

// Style keeps declarations in the order they were first set.
type Style struct {
	names  []string
	values map[string]string
}

var _ dom.Style = (*Style)(nil)

func newStyle() *Style {
	return &Style{values: make(map[string]string)}
}

// SetProperty sets a declaration. An empty value removes it.
func (s *Style) SetProperty(name, value string) {
	if value == "" {
		s.RemoveProperty(name)
		return
	}
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

// GetPropertyValue returns the declaration value or "".
func (s *Style) GetPropertyValue(name string) string {
	return s.values[name]
}

// RemoveProperty deletes a declaration.
func (s *Style) RemoveProperty(name string) {
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of declarations.
func (s *Style) Len() int { return len(s.names) }

// CSSText serializes the declarations as "name: value; ...".
func (s *Style) CSSText() string {
	var out []byte
	for i, name := range s.names {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, name...)
		out = append(out, ": "...)
		out = append(out, s.values[name]...)
		out = append(out, ';')
	}
	return string(out)
}
