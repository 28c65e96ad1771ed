package alloc

// Policy selects the free-list discipline used to index free blocks.
type Policy uint8

const (
	// PolicySegregated indexes free blocks in size-class buckets with
	// address-ordered lists. This is the default.
	PolicySegregated Policy = iota

	// PolicyExplicit indexes free blocks in a single LIFO list scanned
	// first-fit.
	PolicyExplicit
)

// String returns the policy name as used in CLI flags and dump output.
func (p Policy) String() string {
	switch p {
	case PolicySegregated:
		return "segregated"
	case PolicyExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a policy name to its value. It accepts the strings
// produced by Policy.String.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "segregated":
		return PolicySegregated, true
	case "explicit":
		return PolicyExplicit, true
	default:
		return PolicySegregated, false
	}
}

// Config controls allocator construction. The zero value selects the
// segregated policy.
type Config struct {
	// Policy selects the free-list discipline.
	Policy Policy
}

// DefaultConfig returns the configuration used when New receives nil.
func DefaultConfig() *Config {
	return &Config{Policy: PolicySegregated}
}
