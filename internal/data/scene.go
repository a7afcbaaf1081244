package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Handler names a scene system can bind to.
const (
	HandlerGreeter = "greeter"
	HandlerAging   = "aging"
	HandlerScript  = "script"
)

// Query match modes. "any" is the world's own Query semantics.
const (
	MatchAny = "any"
	MatchAll = "all"
)

// MaxQueryTypes is the number of component types a scene query may combine.
const MaxQueryTypes = 3

// Scene describes the component kinds, entities and systems a world starts with.
type Scene struct {
	Components []string      `yaml:"components"` // kinds to register, in index order
	Entities   []EntitySpawn `yaml:"entities"`
	Systems    []SystemEntry `yaml:"systems"`
}

// EntitySpawn spawns Count identical entities.
type EntitySpawn struct {
	Count      int              `yaml:"count"` // 0 means 1
	Components []ComponentEntry `yaml:"components"`
}

// ComponentEntry is one component value; Value is decoded by the component catalog.
type ComponentEntry struct {
	Type  string    `yaml:"type"`
	Value yaml.Node `yaml:"value"`
}

// SystemEntry binds a query over up to three kinds to a handler.
type SystemEntry struct {
	Name     string   `yaml:"name"`
	Query    []string `yaml:"query"`
	Match    string   `yaml:"match"` // "any" (default) or "all"
	Handler  string   `yaml:"handler"`
	Script   string   `yaml:"script"`    // Lua function, handler "script" only
	MaxYears int      `yaml:"max_years"` // handler "aging" only; 0 disables despawn
}

// LoadScene loads a scene from a YAML file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes and validates a scene document.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) validate() error {
	for i := range s.Entities {
		e := &s.Entities[i]
		if e.Count < 0 {
			return fmt.Errorf("entities[%d]: negative count %d", i, e.Count)
		}
		if e.Count == 0 {
			e.Count = 1
		}
		for j, c := range e.Components {
			if c.Type == "" {
				return fmt.Errorf("entities[%d].components[%d]: missing type", i, j)
			}
		}
	}
	for i := range s.Systems {
		sys := &s.Systems[i]
		switch sys.Match {
		case "":
			sys.Match = MatchAny
		case MatchAny, MatchAll:
		default:
			return fmt.Errorf("systems[%d] %q: unknown match %q", i, sys.Name, sys.Match)
		}
		if len(sys.Query) == 0 || len(sys.Query) > MaxQueryTypes {
			return fmt.Errorf("systems[%d] %q: query needs 1 to %d kinds, got %d", i, sys.Name, MaxQueryTypes, len(sys.Query))
		}
		switch sys.Handler {
		case HandlerGreeter, HandlerAging:
		case HandlerScript:
			if sys.Script == "" {
				return fmt.Errorf("systems[%d] %q: script handler without script", i, sys.Name)
			}
		default:
			return fmt.Errorf("systems[%d] %q: unknown handler %q", i, sys.Name, sys.Handler)
		}
	}
	return nil
}

// EntityCount returns the number of entities the scene spawns.
func (s *Scene) EntityCount() int {
	n := 0
	for _, e := range s.Entities {
		n += e.Count
	}
	return n
}
