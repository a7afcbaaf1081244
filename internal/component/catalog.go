package component

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/bitworld/bitworld/internal/core/ecs"
)

var ErrUnknownKind = errors.New("unknown component kind")

// Kind is a component type that scene files refer to by name.
type Kind struct {
	Name     string
	Type     reflect.Type
	register func(*ecs.Registry) (ecs.BitIndex, error)
	decode   func(*yaml.Node) (any, error)
}

// Catalog maps scene names to component types.
type Catalog struct {
	kinds map[string]Kind
}

// NewCatalog returns a catalog holding Name, Age and Health.
func NewCatalog() *Catalog {
	c := &Catalog{kinds: make(map[string]Kind, 8)}
	Define[Name](c, "Name")
	Define[Age](c, "Age")
	Define[Health](c, "Health")
	return c
}

// Define adds C to the catalog under name, replacing any earlier definition.
func Define[C any](c *Catalog, name string) {
	c.kinds[name] = Kind{
		Name:     name,
		Type:     reflect.TypeOf((*C)(nil)).Elem(),
		register: ecs.Register[C],
		decode: func(node *yaml.Node) (any, error) {
			var v C
			if node != nil && node.Kind != 0 {
				if err := node.Decode(&v); err != nil {
					return nil, err
				}
			}
			return v, nil
		},
	}
}

func (c *Catalog) Lookup(name string) (Kind, bool) {
	k, ok := c.kinds[name]
	return k, ok
}

// Names returns the defined kind names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.kinds))
	for n := range c.kinds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) kind(name string) (Kind, error) {
	k, ok := c.kinds[name]
	if !ok {
		return Kind{}, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// Register registers the named kinds with r, in order.
func (c *Catalog) Register(r *ecs.Registry, names ...string) error {
	for _, name := range names {
		k, err := c.kind(name)
		if err != nil {
			return err
		}
		if _, err := k.register(r); err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
	}
	return nil
}

// Decode builds a component value of the named kind from a YAML node. A nil
// or empty node yields the zero value.
func (c *Catalog) Decode(name string, node *yaml.Node) (any, error) {
	k, err := c.kind(name)
	if err != nil {
		return nil, err
	}
	v, err := k.decode(node)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return v, nil
}

// Type returns the Go type behind a kind name.
func (c *Catalog) Type(name string) (reflect.Type, error) {
	k, err := c.kind(name)
	if err != nil {
		return nil, err
	}
	return k.Type, nil
}
