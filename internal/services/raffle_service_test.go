package services

import (
	"errors"
	"testing"
	"time"

	"wordraffle/internal/random"
)

func TestRaffleService_Submit(t *testing.T) {
	const testSessionID = "test-session"
	service := NewRaffleService(newTestEngine(t, random.New(99)))

	t.Run("Test new session starts with the default form", func(t *testing.T) {
		session := service.Snapshot(testSessionID)
		if session.Form.Raw != "100" || session.Form.State != StateValid {
			t.Errorf("Expected a valid default form of 100, but got %+v", session.Form)
		}
		if session.Result != nil {
			t.Error("Expected no result before the first raffle")
		}
	})

	t.Run("Test successful raffle", func(t *testing.T) {
		session, err := service.Submit(testSessionID, "100")
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if session.Result == nil {
			t.Fatal("Expected a result, but got nil")
		}
		if session.Result.NumberOfWords != 100 {
			t.Errorf("Expected 100 words, but got %d", session.Result.NumberOfWords)
		}
	})

	t.Run("Test invalid input keeps the previous result", func(t *testing.T) {
		before := service.Snapshot(testSessionID).Result

		for _, raw := range []string{"0", "2028", "abc", "3.5"} {
			session, err := service.Submit(testSessionID, raw)
			if err == nil {
				t.Fatalf("Expected an error for %q, but got nil", raw)
			}
			if session.Form.State != StateInvalid {
				t.Errorf("Expected the form to be invalid for %q", raw)
			}
			if session.Form.Message() != err.Error() {
				t.Errorf("Expected message %q, but got %q", err.Error(), session.Form.Message())
			}
			if session.Result != before {
				t.Errorf("Expected the previous result to be kept for %q", raw)
			}
		}
	})

	t.Run("Test blur validation does not draw", func(t *testing.T) {
		before := service.Snapshot(testSessionID).Result

		form := service.Validate(testSessionID, "2028")
		if !errors.Is(form.Err, ErrTooLarge) {
			t.Errorf("Expected ErrTooLarge, but got %v", form.Err)
		}
		form = service.Validate(testSessionID, "10")
		if form.State != StateValid || form.Message() != "" {
			t.Errorf("Expected the error to clear, but got %+v", form)
		}
		if service.Snapshot(testSessionID).Result != before {
			t.Error("Expected blur validation to leave the result unchanged")
		}
	})

	t.Run("Test sessions are isolated", func(t *testing.T) {
		other := service.Snapshot("other-session")
		if other.Result != nil {
			t.Error("Expected a fresh session to have no result")
		}
	})
}

func TestRaffleService_Sessions(t *testing.T) {
	service := NewRaffleService(newTestEngine(t, random.New(1)))
	clock := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return clock }

	service.Snapshot("old")
	clock = clock.Add(2 * time.Hour)
	service.Snapshot("fresh")

	if removed := service.CleanUpInactiveSessions(time.Hour); removed != 1 {
		t.Errorf("Expected 1 session removed, but got %d", removed)
	}
	if service.SessionCount() != 1 {
		t.Errorf("Expected 1 session left, but got %d", service.SessionCount())
	}

	service.ClearSession("fresh")
	if service.SessionCount() != 0 {
		t.Errorf("Expected no sessions, but got %d", service.SessionCount())
	}
}

func TestForm_Apply(t *testing.T) {
	form := NewForm()
	next := form.Apply("abc")
	if form.State != StateValid {
		t.Error("Expected Apply to leave the receiver unchanged")
	}
	if next.State != StateInvalid || next.Raw != "abc" {
		t.Errorf("Expected an invalid form holding the raw text, but got %+v", next)
	}
	if next.State.String() != "invalid" || form.State.String() != "valid" {
		t.Error("Unexpected state names")
	}
}
