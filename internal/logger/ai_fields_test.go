package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestCommonFields(t *testing.T) {
	fields := CommonFields("gemini", "gemini-2.5-flash")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != FieldProvider || fields[0].String != "gemini" {
		t.Fatalf("unexpected provider field: %+v", fields[0])
	}
	if fields[1].Key != FieldModel || fields[1].String != "gemini-2.5-flash" {
		t.Fatalf("unexpected model field: %+v", fields[1])
	}
}

func TestCommonFieldsSkipsEmptyValues(t *testing.T) {
	if fields := CommonFields("  ", ""); len(fields) != 0 {
		t.Fatalf("expected no fields for blank values, got %d", len(fields))
	}

	fields := CommonFields("gemini", "  ")
	if len(fields) != 1 || fields[0].Key != FieldProvider {
		t.Fatalf("expected only the provider field, got %+v", fields)
	}
}

func TestWithCommonFieldsNilLogger(t *testing.T) {
	logger := WithCommonFields(nil, "gemini", "gemini-2.5-flash")
	if logger == nil {
		t.Fatal("expected a usable logger")
	}
	logger.Info("no panic expected")
}

func TestWithCommonFieldsNoValues(t *testing.T) {
	base := zap.NewNop()
	if got := WithCommonFields(base, "", ""); got != base {
		t.Fatal("expected the original logger when no fields apply")
	}
}
