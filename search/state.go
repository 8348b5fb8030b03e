package search

// State is the search engine's mode state machine.
//
// Transitions: Idle -> KeywordSearching on query input while the smart
// toggle is off or the client is offline; Idle -> SmartSearching on query
// input with the toggle on and online; SmartSearching -> Degraded on ranker
// timeout/error, immediately followed by a synchronous re-entry into
// KeywordSearching with the same query.
type State int32

const (
	StateIdle State = iota
	StateKeywordSearching
	StateSmartSearching
	StateDegraded
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateKeywordSearching:
		return "keyword-searching"
	case StateSmartSearching:
		return "smart-searching"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// DegradeReason explains why smart search fell back to keyword mode.
// Surfaced to the UI as a passive indicator, never as a blocking error.
type DegradeReason string

const (
	DegradeNone     DegradeReason = ""
	DegradeTimeout  DegradeReason = "timeout"
	DegradeError    DegradeReason = "error"
	DegradeOffline  DegradeReason = "offline"
	DegradeDisabled DegradeReason = "disabled"
)

// Mode identifies which strategy produced a result.
type Mode int

const (
	ModeKeyword Mode = iota
	ModeSmart
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == ModeSmart {
		return "smart"
	}
	return "keyword"
}
