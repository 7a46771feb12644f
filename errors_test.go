package formskema_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	formskema "github.com/reoring/formskema"
)

func TestIssues_ErrorSummary(t *testing.T) {
	var iss formskema.Issues
	if iss.Error() != "" {
		t.Fatalf("empty issues should render empty, got %q", iss.Error())
	}
	for i := 0; i < 5; i++ {
		iss = formskema.AppendIssues(iss, formskema.Issue{Path: fmt.Sprintf("k%d", i), Code: formskema.CodeInvalidKey})
	}
	msg := iss.Error()
	if !strings.HasPrefix(msg, "invalid_key at k0; invalid_key at k1; invalid_key at k2") {
		t.Fatalf("unexpected summary: %q", msg)
	}
	if !strings.HasSuffix(msg, "(total 5)") {
		t.Fatalf("expected total suffix, got %q", msg)
	}
}

func TestAsIssues_Wrapped(t *testing.T) {
	_, err := formskema.Expand([]formskema.Entry{{Key: "a..b", Value: "1"}}, formskema.Options{})
	wrapped := fmt.Errorf("decode signup: %w", err)

	iss, ok := formskema.AsIssues(wrapped)
	if !ok || len(iss) != 1 || iss[0].Code != formskema.CodeInvalidKey {
		t.Fatalf("expected one invalid_key issue, got %v (ok=%v)", iss, ok)
	}
	var target formskema.Issues
	if !errors.As(wrapped, &target) {
		t.Fatalf("errors.As should extract Issues")
	}
	if _, ok := formskema.AsIssues(nil); ok {
		t.Fatalf("nil error must not yield issues")
	}
	if _, ok := formskema.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain error must not yield issues")
	}
}
