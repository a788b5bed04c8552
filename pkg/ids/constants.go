package ids

// ID space boundaries, taken verbatim from the wire-compat constants this
// allocator must never change for a given wire version.
const (
	ServiceMin = 32
	ServiceMax = 64999

	MethodMin = 16
	MethodMax = 239

	MessageMin = 32
	MessageMax = 64000
)

// Probe budgets from §4.4.2: global spaces (services, messages) get more
// attempts than the narrower per-service method space.
const (
	globalProbeLimit = 4096
	methodProbeLimit = 1024
)

// maxAliasHops bounds alias-chain resolution (§4.4.6).
const maxAliasHops = 10
