package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientListEpics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Path != "/api/epics" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "25" {
			t.Errorf("per_page = %q, want 25", got)
		}

		json.NewEncoder(w).Encode(epicsResponse{
			Epics: []RemoteEpic{
				{Key: "WP-10", Summary: "billing rework", Status: "open", Department: "platform", Team: "core", EstimatedHours: 40},
			},
			HasMore: true,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token")
	epics, hasMore, err := client.ListEpics(context.Background(), 2, 25)
	if err != nil {
		t.Fatalf("ListEpics() error = %v", err)
	}
	if !hasMore {
		t.Error("hasMore = false, want true")
	}
	if len(epics) != 1 || epics[0].Key != "WP-10" {
		t.Errorf("epics = %+v", epics)
	}
}

func TestClientListEpicsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token")
	if _, _, err := client.ListEpics(context.Background(), 1, 50); err == nil {
		t.Error("ListEpics() expected error on 502")
	}
}
