package core

import (
	"testing"
)

// TestNewHashDeterminism tests that equal input produces equal hashes
func TestNewHashDeterminism(t *testing.T) {
	a := NewHash([]byte("seismic"))
	b := NewHash([]byte("seismic"))
	if !a.Equals(b) {
		t.Errorf("Expected identical hashes for identical input, got %s and %s", a, b)
	}
	if len(a.String()) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(a.String()))
	}

	c := NewHash([]byte("seismic "))
	if a.Equals(c) {
		t.Error("Expected different input to produce a different hash")
	}
}

// TestHashIsEmpty tests hash emptiness check
func TestHashIsEmpty(t *testing.T) {
	if !Hash("").IsEmpty() {
		t.Error("Expected empty hash to be empty")
	}
	if NewHash([]byte("x")).IsEmpty() {
		t.Error("Expected computed hash to not be empty")
	}
}

// TestDeriveSeedStreams tests that named streams stay apart but
// reproducible
func TestDeriveSeedStreams(t *testing.T) {
	if DeriveSeed(42, "mask") != DeriveSeed(42, "mask") {
		t.Error("Expected identical derivation for identical inputs")
	}
	if DeriveSeed(42, "mask") == DeriveSeed(42, "data") {
		t.Error("Expected different stream names to derive different seeds")
	}
	if DeriveSeed(42, "mask") == DeriveSeed(43, "mask") {
		t.Error("Expected different base seeds to derive different seeds")
	}
}
