package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_KnownStatuses(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"PENDING", KeyPending},
		{"CONFIRMED", KeyConfirmed},
		{"TECHNICIAN_ASSIGNED", KeyAssigned},
		{"PAID", KeyPaid},
		{"MAINTENANCE_IN_PROGRESS", KeyInProgress},
		{"MAINTENANCE_COMPLETE", KeyCompleted},
		{"CANCELLED", KeyCancelled},
		{"REJECTED", KeyRejected},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.backend))
		})
	}
}

func TestKey_CaseInsensitive(t *testing.T) {
	assert.Equal(t, KeyCompleted, Key("maintenance_complete"))
	assert.Equal(t, KeyCompleted, Key("Maintenance_Complete"))
	assert.Equal(t, KeyConfirmed, Key("  confirmed  "))
}

func TestKey_UnknownFallsBackToPending(t *testing.T) {
	assert.Equal(t, KeyPending, Key("AWAITING_PARTS"))
	assert.Equal(t, KeyPending, Key(""))
	assert.Equal(t, KeyPending, Key("???"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "In Progress", Label("MAINTENANCE_IN_PROGRESS"))
	assert.Equal(t, "Completed", Label("maintenance_complete"))

	// Unknown input comes back unchanged, not as an error.
	assert.Equal(t, "AWAITING_PARTS", Label("AWAITING_PARTS"))
}

func TestKey_Deterministic(t *testing.T) {
	for _, s := range []string{"PAID", "paid", "bogus", ""} {
		first := Key(s)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Key(s))
		}
	}
}

func TestBadgeFor(t *testing.T) {
	assert.Equal(t, BadgeSuccess, BadgeFor("PAID"))
	assert.Equal(t, BadgeDestructive, BadgeFor("REJECTED"))
	assert.Equal(t, BadgeMuted, BadgeFor("cancelled"))
	assert.Equal(t, BadgeWarning, BadgeFor("no-such-status"))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("MAINTENANCE_COMPLETE"))
	assert.True(t, Known("pending"))
	assert.False(t, Known("AWAITING_PARTS"))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(KeyCompleted))
	assert.True(t, IsTerminal(KeyCancelled))
	assert.True(t, IsTerminal(KeyRejected))
	assert.False(t, IsTerminal(KeyPending))
	assert.False(t, IsTerminal(KeyInProgress))
}

func TestKeysRoundTripThroughTable(t *testing.T) {
	// Every frontend key is reachable from at least one backend status, and
	// mapping a backend status twice is stable.
	reachable := map[string]bool{}
	for _, backend := range []string{
		"PENDING", "CONFIRMED", "TECHNICIAN_ASSIGNED", "PAID",
		"MAINTENANCE_IN_PROGRESS", "MAINTENANCE_COMPLETE", "CANCELLED", "REJECTED",
	} {
		key := Key(backend)
		assert.Equal(t, key, Key(backend))
		reachable[key] = true
	}
	for _, key := range Keys() {
		assert.True(t, reachable[key], "key %s has no backend status", key)
	}
}

func TestFilterOptions(t *testing.T) {
	options := FilterOptions()
	assert.Equal(t, KeyAll, options[0].Key)
	assert.Len(t, options, len(Keys())+1)
	for _, opt := range options[1:] {
		assert.NotEmpty(t, opt.Label)
	}
}
