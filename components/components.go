// Package components defines ECS components for the agent simulations.
package components

// Boid marks a flocking agent. Predators chase regular boids and ignore flocking rules.
type Boid struct {
	MaxSpeed   float64
	MaxForce   float64
	IsPredator bool
}

// Forager is an ant. Position lives in its own component.
type Forager struct {
	ID      int
	HasFood bool
	Heading float64    // radians
	Path    []Position // recent positions, oldest first
	Trips   int        // completed food deliveries
}
