package state

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/wolfprint3d/mako/internal/core/domain"
	"github.com/wolfprint3d/mako/internal/core/ports"
)

// Fingerprinter implements ports.Hasher over configure plans.
type Fingerprinter struct{}

var _ ports.Hasher = (*Fingerprinter)(nil)

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{}
}

// Fingerprint computes a stable xxhash over the plan's options, flags and
// resolved injections. Options and flags hash in insertion order; resolved
// variables hash in sorted key order so map iteration cannot leak in.
func (f *Fingerprinter) Fingerprint(plan domain.ConfigurePlan) string {
	h := xxhash.New()

	writeField(h, "target", plan.Target)
	for _, opt := range plan.Options {
		writeField(h, "opt", opt.String())
	}
	for _, flag := range plan.Flags {
		writeField(h, "flag", flag)
	}

	keys := make([]string, 0, len(plan.Resolved))
	for key := range plan.Resolved {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		writeField(h, "var", key+"="+plan.Resolved[key])
	}

	return fmt.Sprintf("%016x", h.Sum64())
}

func writeField(h *xxhash.Digest, kind, value string) {
	_, _ = h.WriteString(kind)
	_, _ = h.WriteString(":")
	_, _ = h.WriteString(value)
	_, _ = h.WriteString(";")
}
