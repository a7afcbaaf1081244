package component

// Health is a hit-point pool.
type Health struct {
	HP  int `yaml:"hp"`
	Max int `yaml:"max"`
}

func (h Health) Alive() bool { return h.HP > 0 }
