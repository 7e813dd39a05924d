// Package material defines the session catalog of named surface appearances.
// Materials are immutable once defined and referenced by primitives; they are
// only retired wholesale when the authoring session is reset.
package material

import "fmt"

// Color is RGBA with components in 0..1.
type Color [4]float64

// Material is a named flat-shaded surface definition. An Emission strength
// above zero marks the surface self-illuminating (eyes, magical glow, fuses).
type Material struct {
	Name      string
	Color     Color
	Roughness float64
	Metallic  float64
	Emission  float64
}

// Option adjusts optional material attributes at definition time.
type Option func(*Material)

// WithRoughness overrides the default roughness of 0.9.
func WithRoughness(r float64) Option {
	return func(m *Material) { m.Roughness = r }
}

// WithMetallic overrides the default metallic of 0.
func WithMetallic(v float64) Option {
	return func(m *Material) { m.Metallic = v }
}

// WithEmission sets the emission strength. Values above zero render the
// material self-illuminating.
func WithEmission(e float64) Option {
	return func(m *Material) { m.Emission = e }
}

// Catalog holds the materials defined during one authoring session,
// in definition order.
type Catalog struct {
	byName map[string]*Material
	order  []*Material
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Material)}
}

// Define registers a named material. Re-defining a name with identical
// attributes returns the existing material, so idempotent regeneration can
// replay the same palette; re-defining with different attributes is an error.
func (c *Catalog) Define(name string, color Color, opts ...Option) (*Material, error) {
	m := &Material{
		Name:      name,
		Color:     color,
		Roughness: 0.9,
	}
	for _, opt := range opts {
		opt(m)
	}

	if prev, ok := c.byName[name]; ok {
		if *prev == *m {
			return prev, nil
		}
		return nil, fmt.Errorf("material: %q already defined with different attributes", name)
	}

	c.byName[name] = m
	c.order = append(c.order, m)
	return m, nil
}

// Get returns the material registered under name, if any.
func (c *Catalog) Get(name string) (*Material, bool) {
	m, ok := c.byName[name]
	return m, ok
}

// Len returns the number of defined materials.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Names returns material names in definition order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	for i, m := range c.order {
		names[i] = m.Name
	}
	return names
}
