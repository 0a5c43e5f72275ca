package lineartable

// minCapacity is the smallest capacity this table will ever run at.
const minCapacity = 8

// defaultLoadFactor matches the default used elsewhere in this module; the
// linear table's real growth trigger is maxPSL, but this still bounds
// ordinary growth at typical loads.
const defaultLoadFactor = 0.5

type config[K Key] struct {
	initialCapacity uint32
	loadFactor      float64
	equal           func(a, b K) bool
}

// Option configures a Table at construction time.
type Option[K Key] func(*config[K])

// WithCapacity sets the initial capacity, rounded up to the next power of
// two and floored at 8.
func WithCapacity[K Key](n uint32) Option[K] {
	return func(c *config[K]) { c.initialCapacity = n }
}

// WithLoadFactor sets the load factor used to size growth alongside the
// max-PSL trigger.
func WithLoadFactor[K Key](f float64) Option[K] {
	return func(c *config[K]) { c.loadFactor = f }
}

// WithEqual overrides the key-equality comparator used to resolve hash
// collisions. By default K's built-in == is used.
func WithEqual[K Key](eq func(a, b K) bool) Option[K] {
	return func(c *config[K]) { c.equal = eq }
}

func defaultEqual[K Key](a, b K) bool { return a == b }
