package errors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind      *Error
		err       error
		wantMatch bool
	}{
		"instance of the same error": {
			kind:      ErrNotFound,
			err:       ErrNotFound,
			wantMatch: true,
		},
		"wrapped instance of the same error": {
			kind:      ErrNotFound,
			err:       Wrap(ErrNotFound, "gone"),
			wantMatch: true,
		},
		"deeply wrapped instance": {
			kind:      ErrNotFound,
			err:       Wrap(Wrap(ErrNotFound, "gone"), "dead"),
			wantMatch: true,
		},
		"different error": {
			kind:      ErrNotFound,
			err:       ErrDuplicate,
			wantMatch: false,
		},
		"wrapped different error": {
			kind:      ErrNotFound,
			err:       Wrap(ErrDuplicate, "again"),
			wantMatch: false,
		},
		"stdlib error": {
			kind:      ErrNotFound,
			err:       errors.New("stdlib"),
			wantMatch: false,
		},
		"nil error": {
			kind:      ErrNotFound,
			err:       nil,
			wantMatch: false,
		},
		"nil kind matches nil error": {
			kind:      nil,
			err:       nil,
			wantMatch: true,
		},
		"nil kind does not match an error": {
			kind:      nil,
			err:       ErrNotFound,
			wantMatch: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.wantMatch {
				t.Fatalf("want match=%v, got %v", tc.wantMatch, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "whatever"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
	if err := Wrapf(nil, "whatever %d", 42); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
}

func TestWrapMessage(t *testing.T) {
	err := Wrap(ErrNotFound, "gone")
	if got, want := err.Error(), "gone: not found"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	err = Wrapf(ErrNotFound, "token %d", 5)
	if got, want := err.Error(), "token 5: not found"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestNew(t *testing.T) {
	err := ErrNotFound.New("gone")
	if !ErrNotFound.Is(err) {
		t.Fatalf("unexpected kind: %+v", err)
	}
	err = ErrNotFound.Newf("token %d", 5)
	if got, want := err.Error(), "token 5: not found"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRegisterDuplicateCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	// code 2 is taken by ErrUnauthorized
	Register(2, "clone")
}

func TestRegisterRestrictedCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Register(1, "internal")
}

func TestWrapAttachesStackTraceOnce(t *testing.T) {
	err := Wrap(ErrNotFound, "inner")
	inner := stackTrace(err)
	if inner == nil {
		t.Fatal("no stack trace attached")
	}
	outer := stackTrace(Wrap(err, "outer"))
	if fmt.Sprintf("%v", inner) != fmt.Sprintf("%v", outer) {
		t.Fatal("wrapping again must not replace the stack trace")
	}
}

func TestRecover(t *testing.T) {
	fail := func() (err error) {
		defer Recover(&err)
		panic("blew up")
	}
	err := fail()
	if !ErrPanic.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}
