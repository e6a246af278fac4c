package asset

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-blaster/vmath"
)

// ErrUnknownKind is returned for manifest entries or lookups with an unsupported kind
var ErrUnknownKind = errors.New("unknown template kind")

// Kind classifies a template by its role in the scene
type Kind string

const (
	KindBlaster    Kind = "blaster"
	KindProjectile Kind = "projectile"
	KindTarget     Kind = "target"
)

// Kinds lists every kind a scene needs
var Kinds = []Kind{KindBlaster, KindProjectile, KindTarget}

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	switch k {
	case KindBlaster, KindProjectile, KindTarget:
		return true
	}
	return false
}

// Template is a prepared, clonable object description
type Template struct {
	ID    uuid.UUID
	Name  string
	Kind  Kind
	Size  vmath.Vec3 // Bounds extent in world units
	Glyph rune
	Color string
}

// Manifest is the on-disk template list
type Manifest struct {
	Templates []Entry `yaml:"templates"`
}

// Entry is one manifest record before preparation
type Entry struct {
	Name  string    `yaml:"name"`
	Kind  Kind      `yaml:"kind"`
	Size  []float64 `yaml:"size"`
	Glyph string    `yaml:"glyph"`
	Color string    `yaml:"color"`
}

// ParseManifest decodes and validates a YAML manifest
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Templates) == 0 {
		return nil, errors.New("parse manifest: no templates")
	}
	for i, e := range m.Templates {
		if !e.Kind.Valid() {
			return nil, fmt.Errorf("templates[%d] %q: %w: %q", i, e.Name, ErrUnknownKind, e.Kind)
		}
		if len(e.Size) != 0 && len(e.Size) != 3 {
			return nil, fmt.Errorf("templates[%d] %q: size needs 3 components, got %d", i, e.Name, len(e.Size))
		}
	}
	return &m, nil
}

// Prepare converts a manifest entry into a template
func (e Entry) Prepare() (Template, error) {
	t := Template{
		ID:    uuid.New(),
		Name:  e.Name,
		Kind:  e.Kind,
		Color: e.Color,
		Glyph: '?',
	}
	if !e.Kind.Valid() {
		return t, fmt.Errorf("%q: %w: %q", e.Name, ErrUnknownKind, e.Kind)
	}
	if len(e.Size) == 3 {
		for _, v := range e.Size {
			if v < 0 {
				return t, fmt.Errorf("%q: negative size component %v", e.Name, v)
			}
		}
		t.Size = vmath.Vec3{e.Size[0], e.Size[1], e.Size[2]}
	}
	if e.Glyph != "" {
		r, _ := utf8.DecodeRuneInString(e.Glyph)
		t.Glyph = r
	}
	return t, nil
}
