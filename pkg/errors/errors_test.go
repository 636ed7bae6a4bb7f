package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"
)

func TestTickErrorString(t *testing.T) {
	err := &TickError{
		Op:   "config.Resolve",
		Kind: KindConfig,
		Err:  fmt.Errorf("fps must be positive"),
	}
	got := err.Error()
	want := "config.Resolve [config]: fps must be positive"
	if got != want {
		t.Errorf("TickError.Error() = %q, want %q", got, want)
	}
}

func TestTickErrorWithPath(t *testing.T) {
	err := &TickError{
		Op:   "config.Load",
		Kind: KindParsing,
		Path: "tickring.yaml",
		Err:  fmt.Errorf("bad indent"),
	}
	want := "path=tickring.yaml"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestTickErrorUnwrap(t *testing.T) {
	err := &TickError{Op: "config.Load", Kind: KindParsing, Err: fs.ErrNotExist}
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("expected errors.Is to see the wrapped error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindParsing, "parsing"},
		{KindRender, "render"},
		{KindPanic, "panic"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "tickring.frame"
	if got, want := err.Error(), "panic in tickring.frame: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *TickError
	handler := &testHandler{
		onError: func(err *TickError) {
			captured = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&TickError{Op: "test.op", Kind: KindRender, Err: fmt.Errorf("boom")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	oldHandler := DefaultHandler
	SetHandler(&testHandler{
		onError: func(*TickError) { called = true },
		onPanic: func(*PanicError) { called = true },
	})
	defer SetHandler(oldHandler)

	Report(nil)
	ReportPanic(nil)

	if called {
		t.Error("nil errors should not reach the handler")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	oldHandler := DefaultHandler
	SetHandler(&testHandler{
		onPanic: func(err *PanicError) {
			captured = err
		},
	})
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	oldHandler := DefaultHandler
	SetHandler(&testHandler{})
	defer SetHandler(oldHandler)

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()

	if got != 42 {
		t.Errorf("callback received %v, want 42", got)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	oldHandler := DefaultHandler
	defer SetHandler(oldHandler)

	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}

	h.HandleError(&TickError{Op: "raster.EncodePNG", Kind: KindRender, Err: fmt.Errorf("short write")})
	if got, want := buf.String(), "[tickring error] raster.EncodePNG: short write\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	buf.Reset()
	h.Verbose = true
	h.HandleError(&TickError{Op: "config.Load", Kind: KindParsing, Path: "a.yaml", Err: fmt.Errorf("bad")})
	if got := buf.String(); !strings.Contains(got, "[parsing] path=a.yaml: bad") {
		t.Errorf("verbose output = %q", got)
	}

	buf.Reset()
	h.HandlePanic(&PanicError{Op: "tickring.frame", Value: "oops"})
	if got := buf.String(); !strings.HasPrefix(got, "[tickring panic] tickring.frame: oops") {
		t.Errorf("panic output = %q", got)
	}
}

type testHandler struct {
	onError func(*TickError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *TickError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
