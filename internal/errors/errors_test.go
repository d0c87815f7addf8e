package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "tree error",
			code:    "E001",
			wantMsg: "Invalid node kind",
			wantCat: CategoryTree,
		},
		{
			name:    "driver error",
			code:    "E003",
			wantMsg: "Application not attached",
			wantCat: CategoryDriver,
		},
		{
			name:    "journal error",
			code:    "E021",
			wantMsg: "Journal record corrupt",
			wantCat: CategoryJournal,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryConfig, "file %q not found", "livetree.json")
	if err.Message != `file "livetree.json" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `file "livetree.json" not found`)
	}
	if err.Category != CategoryConfig {
		t.Errorf("Category = %q, want %q", err.Category, CategoryConfig)
	}
}

func TestError_Error(t *testing.T) {
	err := New("E001")
	got := err.Error()
	want := "E001: Invalid node kind"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err2 := &Error{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}

	err3 := New("E020").Wrap(fmt.Errorf("disk full"))
	if got := err3.Error(); got != "E020: Journal unavailable: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestError_Builders(t *testing.T) {
	err := New("E001").
		WithSuggestion("Pass a tag name").
		WithExample(`vdom.Construct("div", nil)`).
		WithDetailf("got %T", 42)

	if err.Suggestion != "Pass a tag name" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
	if err.Example != `vdom.Construct("div", nil)` {
		t.Errorf("Example = %q", err.Example)
	}
	if err.Detail != "got int" {
		t.Errorf("Detail = %q, want %q", err.Detail, "got int")
	}
}

func TestError_Wrap(t *testing.T) {
	inner := New("E002")
	outer := New("E001").Wrap(inner)

	if outer.Wrapped != inner {
		t.Error("Wrapped error mismatch")
	}
	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("mounting: %w", New("E001").WithDetail("got int"))

	if !stderrors.Is(err, New("E001")) {
		t.Error("errors.Is should match by code through wrapping")
	}
	if stderrors.Is(err, New("E002")) {
		t.Error("errors.Is should not match a different code")
	}
	if !HasCode(err, "E001") {
		t.Error("HasCode(E001) = false, want true")
	}
	if HasCode(&Error{Message: "uncoded"}, "") {
		t.Error("uncoded errors must not match")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E001") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	e := New("E001")
	if FromError(e, "E002") != e {
		t.Error("FromError should return *Error as-is")
	}
	if FromError(fmt.Errorf("wrapped: %w", e), "E002") != e {
		t.Error("FromError should find a wrapped *Error")
	}

	stdErr := &testError{msg: "test error"}
	result := FromError(stdErr, "E020")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
	if result.Code != "E020" {
		t.Errorf("Code = %q, want E020", result.Code)
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

func TestFormat(t *testing.T) {
	SetColor(false)
	defer SetColor(true)

	err := New("E001").
		WithSuggestion("Pass a tag name or a vdom.ComponentFunc").
		WithExample(`vdom.Construct("div", vdom.Props{})`).
		Wrap(fmt.Errorf("got int"))

	want := `error E001 [tree]: Invalid node kind
  A virtual node can only be constructed from a tag name or a component function.
  caused by: got int
  hint: Pass a tag name or a vdom.ComponentFunc
  example:
    vdom.Construct("div", vdom.Props{})
  docs: https://livetree.dev/docs/errors/E001
`
	if got := err.Format(); got != want {
		t.Errorf("Format() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatCauseChain(t *testing.T) {
	SetColor(false)
	defer SetColor(true)

	err := New("E005").Wrap(New("E004").Wrap(fmt.Errorf("in item")))
	got := err.Format()

	for _, want := range []string{
		"error E005 [driver]: Update cycle panicked\n",
		"  caused by: E004: Component rendered nothing\n  caused by: in item\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() missing %q:\n%s", want, got)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(New("E020").Wrap(fmt.Errorf("locked")))
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	for key, want := range map[string]string{
		"code":     "E020",
		"category": "journal",
		"message":  "Journal unavailable",
		"cause":    "locked",
	} {
		if got[key] != want {
			t.Errorf("%s = %q, want %q", key, got[key], want)
		}
	}
	if _, ok := got["suggestion"]; ok {
		t.Error("empty suggestion should be omitted")
	}
}

func TestFprint(t *testing.T) {
	SetColor(false)
	defer SetColor(true)

	var b strings.Builder
	Fprint(&b, fmt.Errorf("load: %w", New("E010")))
	if !strings.HasPrefix(b.String(), "error E010 [config]: Config file not found\n") {
		t.Errorf("coded error = %q", b.String())
	}

	b.Reset()
	Fprint(&b, fmt.Errorf("plain"))
	if b.String() != "error: plain\n" {
		t.Errorf("plain error = %q", b.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Error("GetAllCodes() should return codes")
	}

	found := false
	for _, code := range codes {
		if code == "E001" {
			found = true
			break
		}
	}
	if !found {
		t.Error("E001 should be in the codes list")
	}
}

func TestGetTemplate(t *testing.T) {
	template, ok := GetTemplate("E001")
	if !ok {
		t.Error("E001 should exist")
	}
	if template.Message != "Invalid node kind" {
		t.Error("Template message mismatch")
	}

	_, ok = GetTemplate("E999")
	if ok {
		t.Error("E999 should not exist")
	}
}

func TestRegister(t *testing.T) {
	Register("E999", ErrorTemplate{
		Category: CategoryTree,
		Message:  "Custom test error",
		Detail:   "This is a test error",
		DocURL:   "https://test.dev/E999",
	})
	defer delete(registry, "E999")

	err := New("E999")
	if err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}
}

func TestPaint(t *testing.T) {
	if got := paint(styleError, "x"); got != "\033[1;31mx\033[0m" {
		t.Errorf("paint() = %q", got)
	}

	SetColor(false)
	defer SetColor(true)
	if got := paint(styleError, "x"); got != "x" {
		t.Errorf("paint() without color = %q", got)
	}
}
