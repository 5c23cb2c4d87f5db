package tqsdk

// State is the lifecycle of the adapter's provider session.
//
//	Uninitialized --Initialize--> Ready --query/Close--> Closed --Initialize--> Ready
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
