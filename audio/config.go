package audio

// Config controls the ambient drone
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0..1
	SampleRate   int
	BaseFreq     float64 // Hz, root of the drone chord
}

// DefaultConfig returns a quiet drone rooted on A2
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   48000,
		BaseFreq:     110,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.SampleRate <= 0 {
		c.SampleRate = d.SampleRate
	}
	if c.BaseFreq <= 0 {
		c.BaseFreq = d.BaseFreq
	}
	c.MasterVolume = min(max(c.MasterVolume, 0), 1)
	return c
}
