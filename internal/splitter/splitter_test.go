package splitter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	apperrors "github.com/julianstephens/routina/internal/errors"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient("test-key", srv.URL), srv
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		response    string
		wantErr     bool
		wantTitle   string
		wantEmoji   string
		wantSubLens int
	}{
		{
			name:        "valid response",
			status:      http.StatusOK,
			response:    `{"title":"Clean the kitchen","emoji":"🧽","tasks":[{"title":"Clear counters","duration":5},{"title":"Wash dishes","duration":15}]}`,
			wantTitle:   "Clean the kitchen",
			wantEmoji:   "🧽",
			wantSubLens: 2,
		},
		{
			name:        "missing emoji is allowed",
			status:      http.StatusOK,
			response:    `{"title":"Read","tasks":[{"title":"Pick a chapter","duration":2}]}`,
			wantTitle:   "Read",
			wantEmoji:   "",
			wantSubLens: 1,
		},
		{
			name:     "missing title",
			status:   http.StatusOK,
			response: `{"tasks":[{"title":"Step","duration":5}]}`,
			wantErr:  true,
		},
		{
			name:     "empty task list",
			status:   http.StatusOK,
			response: `{"title":"Something","tasks":[]}`,
			wantErr:  true,
		},
		{
			name:     "subtask with empty title",
			status:   http.StatusOK,
			response: `{"title":"Something","tasks":[{"title":"  ","duration":5}]}`,
			wantErr:  true,
		},
		{
			name:     "subtask with zero duration",
			status:   http.StatusOK,
			response: `{"title":"Something","tasks":[{"title":"Step","duration":0}]}`,
			wantErr:  true,
		},
		{
			name:     "not json",
			status:   http.StatusOK,
			response: `<html>oops</html>`,
			wantErr:  true,
		},
		{
			name:     "service error with message",
			status:   http.StatusBadRequest,
			response: `{"error":{"message":"description too long","code":"too_long"}}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
					t.Errorf("Authorization = %q", got)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.response))
			})
			defer srv.Close()

			got, err := client.Split(context.Background(), "some chore")
			if tt.wantErr {
				if err == nil {
					t.Fatal("Split() expected error, got nil")
				}
				if !errors.Is(err, apperrors.ErrRemoteSplit) {
					t.Errorf("Split() error = %v, want ErrRemoteSplit", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if got.Title != tt.wantTitle || got.Emoji != tt.wantEmoji {
				t.Errorf("Split() = %q/%q, want %q/%q", got.Title, got.Emoji, tt.wantTitle, tt.wantEmoji)
			}
			if len(got.Tasks) != tt.wantSubLens {
				t.Errorf("Split() returned %d subtasks, want %d", len(got.Tasks), tt.wantSubLens)
			}
		})
	}
}

func TestSplitEmptyDescription(t *testing.T) {
	client := NewClient("test-key", "http://unused.invalid")
	if _, err := client.Split(context.Background(), "   "); !errors.Is(err, apperrors.ErrRemoteSplit) {
		t.Errorf("Split() error = %v, want ErrRemoteSplit", err)
	}
}

func TestSplitMissingAPIKey(t *testing.T) {
	client := NewClient("", "http://unused.invalid")
	if _, err := client.Split(context.Background(), "chore"); !errors.Is(err, apperrors.ErrRemoteSplit) {
		t.Errorf("Split() error = %v, want ErrRemoteSplit", err)
	}
}

func TestSplitRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"title":"Retry","tasks":[{"title":"Step","duration":1}]}`))
	})
	defer srv.Close()

	got, err := client.Split(context.Background(), "chore")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if got.Title != "Retry" {
		t.Errorf("Split() title = %q", got.Title)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("server called %d times, want 2", n)
	}
}

func TestSplitDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	if _, err := client.Split(context.Background(), "chore"); err == nil {
		t.Fatal("Split() expected error")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server called %d times, want 1", n)
	}
}
