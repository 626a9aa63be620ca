package main

import (
	"context"
	"testing"
)

func TestRunRequiresCommand(t *testing.T) {
	if err := run(context.Background(), nil); err == nil {
		t.Fatal("expected usage error for missing command")
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if err := run(context.Background(), []string{"solve"}); err == nil {
		t.Fatal("expected usage error for unknown command")
	}
}

func TestSimulateCommandMemoryStore(t *testing.T) {
	args := []string{
		"simulate",
		"--store", "memory",
		"--policy", "never-feed",
		"--episodes", "2",
		"--steps", "5",
		"--seed", "3",
	}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("simulate command: %v", err)
	}
}

func TestSimulateCommandRejectsUnknownPolicy(t *testing.T) {
	args := []string{"simulate", "--store", "memory", "--policy", "solver"}
	if err := run(context.Background(), args); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestPoliciesCommand(t *testing.T) {
	if err := run(context.Background(), []string{"policies"}); err != nil {
		t.Fatalf("policies command: %v", err)
	}
}
