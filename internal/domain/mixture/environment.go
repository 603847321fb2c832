package mixture

import "github.com/irrelephant-io/essentia/pkg/physics"

// Environment is the flask's ambient state: current temperature and the
// simulated clock. Mutated only by the step loop: Thermal products move
// Temperature, and every step advances Time by its delta_time regardless
// of what else happened.
type Environment struct {
	Temperature physics.Temperature
	Time        physics.Time
}

// NewEnvironment returns an Environment starting at room temperature
// (293 000 mK) and tick zero.
func NewEnvironment() Environment {
	return Environment{Temperature: physics.DefaultTemperature(), Time: physics.NewTime(0)}
}

// WithTemperature returns an Environment starting at the given temperature
// instead of the default, clock still at zero.
func WithTemperature(temperature physics.Temperature) Environment {
	return Environment{Temperature: temperature, Time: physics.NewTime(0)}
}
