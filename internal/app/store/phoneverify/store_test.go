package phoneverify

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/sitedesk/internal/testutil"
)

const testPhone = "+911234567890"

func TestCreateAndVerify(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, time.Minute)
	code, err := store.Create(ctx, testPhone)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(code) != CodeLength {
		t.Fatalf("code length: got %d, want %d", len(code), CodeLength)
	}

	if err := store.VerifyCode(ctx, testPhone, code); err != nil {
		t.Fatalf("VerifyCode failed: %v", err)
	}

	// Codes are single use.
	if err := store.VerifyCode(ctx, testPhone, code); !errors.Is(err, ErrNotFound) {
		t.Errorf("second verify: got %v, want ErrNotFound", err)
	}
}

func TestVerify_WrongCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, time.Minute)
	code, err := store.Create(ctx, testPhone)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "111111"
	}
	if err := store.VerifyCode(ctx, testPhone, wrong); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("got %v, want ErrInvalidCode", err)
	}

	// The right code still works after one failure.
	if err := store.VerifyCode(ctx, testPhone, code); err != nil {
		t.Errorf("VerifyCode after failure: %v", err)
	}
}

func TestVerify_AttemptLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, time.Minute)
	code, err := store.Create(ctx, testPhone)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "111111"
	}
	for i := 0; i < MaxVerifyAttempts; i++ {
		if err := store.VerifyCode(ctx, testPhone, wrong); !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("attempt %d: got %v, want ErrInvalidCode", i+1, err)
		}
	}

	// Even the correct code is refused once the limit is hit.
	if err := store.VerifyCode(ctx, testPhone, code); !errors.Is(err, ErrTooManyAttempts) {
		t.Errorf("got %v, want ErrTooManyAttempts", err)
	}
}

func TestCreate_ResendLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, time.Minute)
	for i := 0; i <= MaxResends; i++ {
		if _, err := store.Create(ctx, testPhone); err != nil {
			t.Fatalf("create %d failed: %v", i+1, err)
		}
	}
	if _, err := store.Create(ctx, testPhone); !errors.Is(err, ErrTooManyResends) {
		t.Errorf("got %v, want ErrTooManyResends", err)
	}
}

func TestCreate_ReplacesPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, time.Minute)
	first, err := store.Create(ctx, testPhone)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := store.Create(ctx, testPhone)
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	// Only the newest code is valid. (If the two random codes happen to
	// collide there is nothing to assert.)
	if first != second {
		if err := store.VerifyCode(ctx, testPhone, first); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("stale code: got %v, want ErrInvalidCode", err)
		}
	}
	if err := store.VerifyCode(ctx, testPhone, second); err != nil {
		t.Errorf("fresh code: %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, time.Millisecond)
	code, err := store.Create(ctx, testPhone)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if err := store.VerifyCode(ctx, testPhone, code); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired code: got %v, want ErrNotFound", err)
	}
}
