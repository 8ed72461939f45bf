package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hyperengineering/cartwright/internal/types"
)

func TestInterpretCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"interpret", "add", "milk,", "bread"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	var result types.CommandResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}

	if result.Intent != types.IntentAdd {
		t.Errorf("expected ADD intent, got %q", result.Intent)
	}
	if len(result.Items) != 2 || result.Items[0] != "milk" {
		t.Errorf("unexpected items: %v", result.Items)
	}
	if result.Quantity.Count != 1 || result.Quantity.Unit != "piece" {
		t.Errorf("unexpected quantity: %+v", result.Quantity)
	}
}

func TestInterpretCommand_NoArgs(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"interpret"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for missing arguments")
	}
}
