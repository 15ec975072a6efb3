package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// slotDigestLen is the number of hex characters of the identity digest kept in
// a slot name. Twelve characters are plenty for uniqueness while keeping slot
// names readable.
const slotDigestLen = 12

// Identity uniquely designates a package variant in the store.
// It is not content-derived: the same bytes published under two names are two
// distinct identities, and no byte-level deduplication happens on top of it.
type Identity struct {
	Name    string
	Version string
}

// NewIdentity creates an Identity for the given name and version.
func NewIdentity(name, version string) Identity {
	return Identity{Name: name, Version: version}
}

// String returns the canonical name@version form.
func (id Identity) String() string {
	return id.Name + "@" + id.Version
}

// Digest returns the truncated sha256 digest of the identity. It is a pure
// function of name and version, so repeated calls always agree.
func (id Identity) Digest() string {
	sum := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(sum[:])[:slotDigestLen]
}

// Slot returns the on-disk directory name for this identity: the sanitized
// human-readable name@version joined with the identity digest. The digest
// guarantees uniqueness; the readable prefix keeps the store operable.
func (id Identity) Slot() string {
	return sanitizePathComponent(id.String()) + "-" + id.Digest()
}

// MetadataFile returns the metadata file name for this identity.
func (id Identity) MetadataFile() string {
	return sanitizePathComponent(id.String()) + ".json"
}

// sanitizePathComponent makes a package identifier safe as a single path
// component. Scoped names such as @scope/pkg contain a separator.
func sanitizePathComponent(s string) string {
	return strings.ReplaceAll(s, "/", "+")
}
