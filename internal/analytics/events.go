package analytics

import "time"

// Kind names the lookup operation that produced an event.
type Kind string

const (
	KindBanks    Kind = "banks"
	KindBank     Kind = "bank"
	KindBranches Kind = "branches"
	KindBranch   Kind = "branch"
)

// LookupEvent records one answered (or failed) lookup.
type LookupEvent struct {
	Kind       Kind      `json:"kind"`
	Mode       string    `json:"mode"`
	BankCode   string    `json:"bank_code,omitempty"`
	BranchCode string    `json:"branch_code,omitempty"`
	Found      bool      `json:"found"`
	Error      string    `json:"error,omitempty"`
	LatencyUs  int64     `json:"latency_us"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
}
