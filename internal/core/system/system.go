package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: external commands
	PhasePreUpdate               // 1: deliver last tick's events
	PhaseUpdate                  // 2: world systems
	PhasePostUpdate              // 3: scripted systems
	PhaseCleanup                 // 4: flush deferred despawns
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is anything the Runner drives once per tick.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
