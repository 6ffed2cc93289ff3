// Package status translates the workshop API's booking status enumeration
// into the tokens, labels and badge variants the dashboard renders, and back.
// All functions are pure and case-insensitive.
package status

import "strings"

// Frontend filter keys. This set is closed: every backend status maps into it.
const (
	KeyPending    = "pending"
	KeyConfirmed  = "confirmed"
	KeyAssigned   = "assigned"
	KeyPaid       = "paid"
	KeyInProgress = "in_progress"
	KeyCompleted  = "completed"
	KeyCancelled  = "cancelled"
	KeyRejected   = "rejected"
)

// The "all" sentinel bypasses status filtering entirely.
const KeyAll = "all"

type Badge string

const (
	BadgeWarning     Badge = "warning"
	BadgeInfo        Badge = "info"
	BadgeSuccess     Badge = "success"
	BadgeMuted       Badge = "muted"
	BadgeDestructive Badge = "destructive"
)

type mapping struct {
	key   string
	label string
	badge Badge
}

// Backend enumeration table, keyed by the upper-cased wire token.
var table = map[string]mapping{
	"PENDING":                 {KeyPending, "Pending", BadgeWarning},
	"CONFIRMED":               {KeyConfirmed, "Confirmed", BadgeInfo},
	"TECHNICIAN_ASSIGNED":     {KeyAssigned, "Assigned", BadgeInfo},
	"PAID":                    {KeyPaid, "Paid", BadgeSuccess},
	"MAINTENANCE_IN_PROGRESS": {KeyInProgress, "In Progress", BadgeInfo},
	"MAINTENANCE_COMPLETE":    {KeyCompleted, "Completed", BadgeSuccess},
	"CANCELLED":               {KeyCancelled, "Cancelled", BadgeMuted},
	"REJECTED":                {KeyRejected, "Rejected", BadgeDestructive},
}

// Key maps a backend status to its frontend filter token. Unknown statuses
// fall back to "pending"; callers that care about drift should check Known
// first and log.
func Key(s string) string {
	if m, ok := table[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return m.key
	}
	return KeyPending
}

// Label maps a backend status to its display label. Unknown input is returned
// unchanged rather than treated as an error.
func Label(s string) string {
	if m, ok := table[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return m.label
	}
	return s
}

func BadgeFor(s string) Badge {
	if m, ok := table[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return m.badge
	}
	return BadgeWarning
}

// Known reports whether s is part of the backend enumeration.
func Known(s string) bool {
	_, ok := table[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}

// IsTerminal reports whether a frontend key names a terminal lifecycle state.
// Display-level only: the workshop API remains the authority on transitions.
func IsTerminal(key string) bool {
	switch key {
	case KeyCompleted, KeyCancelled, KeyRejected:
		return true
	default:
		return false
	}
}

// Keys returns the closed frontend token set in lifecycle order.
func Keys() []string {
	return []string{
		KeyPending,
		KeyConfirmed,
		KeyAssigned,
		KeyPaid,
		KeyInProgress,
		KeyCompleted,
		KeyCancelled,
		KeyRejected,
	}
}

// FilterOption pairs a frontend key with its label for filter dropdowns.
type FilterOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

func FilterOptions() []FilterOption {
	options := []FilterOption{{Key: KeyAll, Label: "All"}}
	labels := map[string]string{}
	for _, m := range table {
		labels[m.key] = m.label
	}
	for _, key := range Keys() {
		options = append(options, FilterOption{Key: key, Label: labels[key]})
	}
	return options
}
