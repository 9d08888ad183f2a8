package policy

// Descriptor describes a load-balancing policy at connection build time.
//
// A descriptor is a value, not a live policy: driver adapters translate it
// into their native host-selection policy when the connection is built. A nil
// Descriptor means "absent" - no load-balancing option is passed to the
// driver and the cluster default applies.
//
// Descriptors are constructed fresh on each connection (re)build and never
// mutated, so a rebuilt connection always reflects the current configuration.
type Descriptor interface {
	// kind returns a short name for logging.
	kind() string
}

// DCAwareRoundRobin routes requests round-robin among replicas within the
// named datacenter, preferring local replicas over remote ones.
type DCAwareRoundRobin struct {
	// Datacenter is the local datacenter name, e.g. "dc1".
	Datacenter string
}

func (DCAwareRoundRobin) kind() string { return "dc_aware_round_robin" }

// TokenAware prefers replicas that own the statement's partition token,
// reducing cross-node hops, and delegates host ordering to Fallback.
type TokenAware struct {
	// Fallback is the inner policy consulted for hosts that are not token
	// owners, typically a DCAwareRoundRobin.
	Fallback Descriptor
}

func (TokenAware) kind() string { return "token_aware" }

// Custom carries a caller-supplied driver policy object.
//
// The object is passed through to the driver adapter unchanged; it must be of
// the type the chosen adapter expects (e.g. gocql.HostSelectionPolicy for the
// v1 adapter). Build never inspects or wraps it.
type Custom struct {
	// Policy is the driver-native policy object.
	Policy any
}

func (Custom) kind() string { return "custom" }

// Build composes a load-balancing policy descriptor from a datacenter hint
// and an optional explicit policy.
//
// Precedence:
//   - explicit is returned unchanged when non-nil, regardless of datacenter
//   - a non-empty datacenter yields a token-aware policy wrapping a
//     datacenter-aware round-robin scoped to that datacenter (token-awareness
//     wraps datacenter-awareness, not the reverse)
//   - otherwise nil is returned and the cluster default applies
//
// Build is pure composition: no fallible inputs, no side effects, and a fresh
// descriptor per call since datacenter or policy may change across reconnects.
//
// Parameters:
//   - datacenter: Local datacenter name, or "" when unset
//   - explicit: Caller-supplied descriptor taking precedence, or nil
//
// Returns:
//   - Descriptor: The composed descriptor, or nil for "absent"
func Build(datacenter string, explicit Descriptor) Descriptor {
	if explicit != nil {
		return explicit
	}

	if datacenter != "" {
		return TokenAware{Fallback: DCAwareRoundRobin{Datacenter: datacenter}}
	}

	return nil
}
