package errors

import (
	"fmt"
	"testing"
)

func TestLensError_Error(t *testing.T) {
	err := &LensError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "String does not exist in the system",
	}

	expected := "NOT_FOUND: String does not exist in the system"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("min_length must be an integer")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "min_length must be an integer" {
		t.Errorf("Message = %q, want %q", err.Message, "min_length must be an integer")
	}
}

func TestNewUnparseableQuery(t *testing.T) {
	err := NewUnparseableQuery("show me something")

	if err.Code != ErrUnparseableQuery {
		t.Errorf("Code = %q, want %q", err.Code, ErrUnparseableQuery)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Details["query"] != "show me something" {
		t.Errorf("Details[query] = %v, want %q", err.Details["query"], "show me something")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("abc123")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["id"] != "abc123" {
		t.Errorf("Details[id] = %v, want %q", err.Details["id"], "abc123")
	}
}

func TestNewAlreadyExists(t *testing.T) {
	err := NewAlreadyExists("abc123")

	if err.Code != ErrAlreadyExists {
		t.Errorf("Code = %q, want %q", err.Code, ErrAlreadyExists)
	}
	if err.Status != 409 {
		t.Errorf("Status = %d, want 409", err.Status)
	}
}

func TestNewUnprocessable(t *testing.T) {
	err := NewUnprocessable(`"value" must be a string`)

	if err.Code != ErrUnprocessable {
		t.Errorf("Code = %q, want %q", err.Code, ErrUnprocessable)
	}
	if err.Status != 422 {
		t.Errorf("Status = %d, want 422", err.Status)
	}
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := NewInternal(fmt.Errorf("database connection failed"))

		if err.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		// Message should be generic (not leak internal details)
		if err.Message != "Internal Server Error" {
			t.Errorf("Message = %q, want %q", err.Message, "Internal Server Error")
		}
		if err.Details["internal_error"] != "database connection failed" {
			t.Errorf("Details[internal_error] = %q, want %q", err.Details["internal_error"], "database connection failed")
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)

		if err.Details == nil {
			t.Error("Details should not be nil")
		}
		if _, ok := err.Details["internal_error"]; ok {
			t.Error("Details[internal_error] should be absent for nil cause")
		}
	})
}

func TestAs(t *testing.T) {
	t.Run("LensError passes through", func(t *testing.T) {
		in := NewNotFound("x")
		if got := As(in); got != in {
			t.Errorf("As() = %v, want the same error", got)
		}
	})

	t.Run("wrapped LensError is unwrapped", func(t *testing.T) {
		in := NewAlreadyExists("x")
		if got := As(fmt.Errorf("insert: %w", in)); got != in {
			t.Errorf("As() = %v, want the wrapped error", got)
		}
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := As(fmt.Errorf("boom"))
		if got.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", got.Code, ErrInternal)
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		if !Is(NewNotFound("test"), ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		if Is(NewNotFound("test"), ErrAlreadyExists) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("non-LensError", func(t *testing.T) {
		if Is(fmt.Errorf("plain error"), ErrNotFound) {
			t.Error("Is() = true, want false for non-LensError")
		}
	})

	t.Run("wrapped LensError", func(t *testing.T) {
		wrapped := fmt.Errorf("delete: %w", NewNotFound("test"))
		if !Is(wrapped, ErrNotFound) {
			t.Error("Is() = false, want true for wrapped LensError")
		}
	})
}
