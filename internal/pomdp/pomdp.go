package pomdp

// RandSource yields uniform values in [0,1). *math/rand.Rand satisfies it.
// Callers own seeding; independent trajectories need independent sources.
type RandSource interface {
	Float64() float64
}

// Model is a generative POMDP: it exposes sampling of the next
// state/observation/reward triple rather than explicit probability tables.
// The model holds parameters only; the caller owns the state between steps.
type Model[S, A, O any] interface {
	// Step advances the process by one discrete time step, consuming at
	// most two draws from rng. It is a pure mapping given the source's
	// next values.
	Step(state S, action A, rng RandSource) (next S, obs O, reward float64)
	Initial() Distribution[S]
	Discount() float64
}
