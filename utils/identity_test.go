package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRecordKeyDeterministic(t *testing.T) {
	a := DeriveRecordKey("Asha Rao", "9876543210", "")
	b := DeriveRecordKey("Asha Rao", "9876543210", "")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestDeriveRecordKeyNameCaseInsensitive(t *testing.T) {
	a := DeriveRecordKey("Asha Rao", "9876543210", "")
	b := DeriveRecordKey("  ASHA RAO  ", "9876543210", "")
	assert.Equal(t, a, b)
}

func TestDeriveRecordKeyMobilePreferred(t *testing.T) {
	withBoth := DeriveRecordKey("Asha Rao", "9876543210", "12-3456-7890-0001")
	mobileOnly := DeriveRecordKey("Asha Rao", "9876543210", "")
	assert.Equal(t, mobileOnly, withBoth)
}

func TestDeriveRecordKeyDistinctIdentities(t *testing.T) {
	keys := map[string]bool{
		DeriveRecordKey("Asha Rao", "9876543210", ""):        true,
		DeriveRecordKey("Asha Rao", "9876543211", ""):        true,
		DeriveRecordKey("Ravi Rao", "9876543210", ""):        true,
		DeriveRecordKey("Asha Rao", "", "12-3456-7890-0001"): true,
		DeriveRecordKey("Asha Rao", "", ""):                  true,
	}
	assert.Len(t, keys, 5)
}
