package oauth

import (
	"testing"

	"github.com/brieflyhq/briefly/internal/infrastructure/cache"
)

func TestStateManager_GenerateAndValidate(t *testing.T) {
	sm := NewStateManager(cache.NewMemoryStore())

	state, err := sm.GenerateState()
	if err != nil {
		t.Fatalf("GenerateState failed: %v", err)
	}
	if state == "" {
		t.Fatal("expected a non-empty state token")
	}

	if !sm.ValidateState(state) {
		t.Fatal("freshly generated state must validate")
	}
}

func TestStateManager_OneTimeUse(t *testing.T) {
	sm := NewStateManager(cache.NewMemoryStore())

	state, err := sm.GenerateState()
	if err != nil {
		t.Fatalf("GenerateState failed: %v", err)
	}

	if !sm.ValidateState(state) {
		t.Fatal("first validation must succeed")
	}
	if sm.ValidateState(state) {
		t.Fatal("second validation of the same state must fail")
	}
}

func TestStateManager_UnknownState(t *testing.T) {
	sm := NewStateManager(cache.NewMemoryStore())

	if sm.ValidateState("never-issued") {
		t.Fatal("unknown state must not validate")
	}
}

func TestStateManager_DistinctStates(t *testing.T) {
	sm := NewStateManager(cache.NewMemoryStore())

	a, err := sm.GenerateState()
	if err != nil {
		t.Fatalf("GenerateState failed: %v", err)
	}
	b, err := sm.GenerateState()
	if err != nil {
		t.Fatalf("GenerateState failed: %v", err)
	}
	if a == b {
		t.Fatal("consecutive states must differ")
	}
}
