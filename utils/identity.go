package utils

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// DeriveRecordKey computes the stable storage key for a patient identity.
// The key is the SHA3-256 hex digest of "<identifier>_<name>", where the
// identifier is the mobile number (preferred) or ABHA id, and the name is
// trimmed and lowercased so capitalization differences map to the same
// record. Same inputs always yield the same key; a collision between
// distinct identities is possible in theory but not detected.
func DeriveRecordKey(name, mobile, abhaID string) string {
	identifier := strings.TrimSpace(mobile)
	if identifier == "" {
		identifier = strings.TrimSpace(abhaID)
	}
	if identifier == "" {
		identifier = "unknown"
	}
	seed := identifier + "_" + strings.ToLower(strings.TrimSpace(name))
	sum := sha3.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}
