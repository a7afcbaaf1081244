package component

// Age counts the ticks an entity has lived through the aging system.
type Age struct {
	Years int `yaml:"years"`
}
