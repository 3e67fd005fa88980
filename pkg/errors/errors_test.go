package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(CodeDependency, cause, "load order")

	if err.Code() != CodeDependency {
		t.Fatalf("code = %s", err.Code())
	}
	if err.Unwrap() != cause {
		t.Fatal("expected cause to be preserved")
	}
	typed := As(fmt.Errorf("outer: %w", err))
	if typed == nil || typed.Code() != CodeDependency {
		t.Fatal("expected typed error through wrap chain")
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("WAT"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("status = %d", meta.HTTPStatus)
	}
}

func TestMetadataStatuses(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:    http.StatusBadRequest,
		CodeUnauthorized:  http.StatusUnauthorized,
		CodeForbidden:     http.StatusForbidden,
		CodeNotFound:      http.StatusNotFound,
		CodeConflict:      http.StatusConflict,
		CodeStateConflict: http.StatusUnprocessableEntity,
	}
	for code, want := range cases {
		if got := MetadataFor(code).HTTPStatus; got != want {
			t.Fatalf("%s status = %d, want %d", code, got, want)
		}
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeConflict, fmt.Errorf("inner"), "outer")
	dump := Dump(err)
	if dump.Code != CodeConflict {
		t.Fatalf("dump code = %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected chain of at least 2, got %d", len(dump.Chain))
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "validation failed").WithDetails(map[string]string{"name": "is required"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["name"] != "is required" {
		t.Fatalf("unexpected details: %v", err.Details())
	}
}
