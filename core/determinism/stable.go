// Package determinism provides content fingerprints for calculations.
// Two calculations with the same fingerprint produce the same results.
package determinism

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/bytedance/sonic"

	"pricing-calculator/core/types"
	"pricing-calculator/internal/errors"
)

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Hex()[:16]
}

// fingerprintInput is the canonical form hashed by Fingerprint. Presentation
// fields such as names and notes are left out; only what the engine reads is kept.
type fingerprintInput struct {
	Structure       types.BaseStructure    `json:"structure"`
	Parameters      map[string]string      `json:"parameters"`
	VolumeDiscounts []types.VolumeDiscount `json:"volume_discounts"`
	Inputs          types.ResolvedInputs   `json:"inputs"`
}

// Fingerprint hashes everything the engine reads from model and inputs.
// Parameter order does not matter; discount order does.
func Fingerprint(model *types.PricingModel, in types.CalculationInputs) (ContentHash, error) {
	canonical := fingerprintInput{
		Parameters: map[string]string{},
		Inputs:     in.Resolved(),
	}
	if model != nil {
		canonical.Structure = model.BaseStructure
		canonical.VolumeDiscounts = model.VolumeDiscounts
		for kind, value := range model.Parameters {
			canonical.Parameters[string(kind)] = value.String()
		}
	}

	// ConfigStd sorts map keys
	data, err := sonic.ConfigStd.Marshal(canonical)
	if err != nil {
		return ContentHash{}, errors.Internal("failed to encode fingerprint input", err)
	}
	return ComputeHash(data), nil
}

// SortedKeys returns the keys of m in ascending order
func SortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
