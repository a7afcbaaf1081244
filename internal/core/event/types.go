package event

// World lifecycle events. IDs are widened to uint64 so subscribers do not
// depend on a world's id type.

type EntitySpawned struct {
	World string
	ID    uint64
	Mask  string
}

type EntityDespawned struct {
	World string
	ID    uint64
}

// ComponentDropped is emitted when a spawned component's type is unknown to
// the world's registry or does not fit its mask width.
type ComponentDropped struct {
	World string
	ID    uint64
	Type  string
}
