// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestErrKeyConstant(t *testing.T) {
	if ErrKey != "error" {
		t.Errorf("expected ErrKey to be 'error', got %q", ErrKey)
	}
}

func TestAppendCtx(t *testing.T) {
	attr := slog.String("key1", "value1")
	ctx := AppendCtx(context.TODO(), attr)

	if ctx == nil {
		t.Fatal("expected non-nil context")
	}

	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		if len(attrs) != 1 {
			t.Errorf("expected 1 attribute, got %d", len(attrs))
		}
		if attrs[0].Key != "key1" {
			t.Errorf("expected key 'key1', got %q", attrs[0].Key)
		}
		if attrs[0].Value.String() != "value1" {
			t.Errorf("expected value 'value1', got %q", attrs[0].Value.String())
		}
	} else {
		t.Error("expected slog attributes in context")
	}
}

func TestAppendCtx_WithParent(t *testing.T) {
	parentCtx := context.Background()
	parentCtx = AppendCtx(parentCtx, slog.String("parent_key", "parent_value"))

	childCtx := AppendCtx(parentCtx, slog.String("child_key", "child_value"))

	if attrs, ok := childCtx.Value(slogFields).([]slog.Attr); ok {
		if len(attrs) != 2 {
			t.Errorf("expected 2 attributes, got %d", len(attrs))
		}
		if attrs[0].Key != "parent_key" || attrs[1].Key != "child_key" {
			t.Errorf("unexpected attribute order: %v", attrs)
		}
	} else {
		t.Error("expected slog attributes in context")
	}
}

func TestPriority(t *testing.T) {
	attr := Priority("high")
	if attr.Key != "priority" {
		t.Errorf("expected key 'priority', got %q", attr.Key)
	}
	if attr.Value.String() != "high" {
		t.Errorf("expected value 'high', got %q", attr.Value.String())
	}
}

func TestPriorityCritical(t *testing.T) {
	attr := PriorityCritical()
	if attr.Key != "priority" {
		t.Errorf("expected key 'priority', got %q", attr.Key)
	}
	if attr.Value.String() != priorityCritical {
		t.Errorf("expected value %q, got %q", priorityCritical, attr.Value.String())
	}
}
