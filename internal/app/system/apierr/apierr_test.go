package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(NotFound("user")); got != KindNotFound {
		t.Errorf("got %q, want %q", got, KindNotFound)
	}
	if got := KindOf(Invalid("bad input")); got != KindInvalid {
		t.Errorf("got %q, want %q", got, KindInvalid)
	}
	if got := KindOf(errors.New("raw")); got != KindInternal {
		t.Errorf("raw error kind: got %q, want %q", got, KindInternal)
	}

	// Wrapped domain errors keep their kind.
	wrapped := fmt.Errorf("while updating: %w", Conflict("duplicate"))
	if got := KindOf(wrapped); got != KindConflict {
		t.Errorf("wrapped kind: got %q, want %q", got, KindConflict)
	}
}

func TestMessageOf_SanitizesNonDomainErrors(t *testing.T) {
	if got := MessageOf(errors.New("connection string leaked")); got != "internal server error" {
		t.Errorf("got %q, want sanitized message", got)
	}
	if got := MessageOf(NotFound("role")); got != "role not found" {
		t.Errorf("got %q, want %q", got, "role not found")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:    http.StatusNotFound,
		KindInvalid:     http.StatusBadRequest,
		KindConflict:    http.StatusConflict,
		KindUnavailable: http.StatusServiceUnavailable,
		KindInternal:    http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := HTTPStatus(kind); got != want {
			t.Errorf("HTTPStatus(%q): got %d, want %d", kind, got, want)
		}
	}
}

func TestFromMongo(t *testing.T) {
	if got := FromMongo(nil, "user", ""); got != nil {
		t.Errorf("nil error should pass through, got %v", got)
	}

	err := FromMongo(mongo.ErrNoDocuments, "user", "")
	if KindOf(err) != KindNotFound {
		t.Errorf("ErrNoDocuments kind: got %q, want %q", KindOf(err), KindNotFound)
	}
	if err.Error() != "user not found" {
		t.Errorf("message: got %q", err.Error())
	}

	err = FromMongo(context.DeadlineExceeded, "user", "")
	if KindOf(err) != KindUnavailable {
		t.Errorf("deadline kind: got %q, want %q", KindOf(err), KindUnavailable)
	}

	err = FromMongo(errors.New("some driver failure"), "user", "")
	if KindOf(err) != KindInternal {
		t.Errorf("unknown kind: got %q, want %q", KindOf(err), KindInternal)
	}
	if MessageOf(err) != "internal server error" {
		t.Errorf("unknown errors must be sanitized, got %q", MessageOf(err))
	}
}

func TestFromMongo_Duplicate(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	err := FromMongo(dup, "user", "a user with this phone number already exists")
	if KindOf(err) != KindConflict {
		t.Fatalf("dup kind: got %q, want %q", KindOf(err), KindConflict)
	}
	if MessageOf(err) != "a user with this phone number already exists" {
		t.Errorf("dup message: got %q", MessageOf(err))
	}
}
