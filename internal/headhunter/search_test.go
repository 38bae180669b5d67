package headhunter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func TestSearchIDsCollectsAllPages(t *testing.T) {
	pages := [][]map[string]any{
		{{"id": "1"}, {"id": "2"}, {"id": "2"}},
		{{"id": "3"}, {"id": "4", "archived": true}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(map[string]any{
			"items": pages[page],
			"found": 120,
			"pages": len(pages),
			"page":  page,
		})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, nil)

	result, err := c.SearchIDs(context.Background(), &SearchParams{Text: "backend developer", MaxPages: 5})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if result.Found != 120 {
		t.Fatalf("expected found 120, got %d", result.Found)
	}

	want := []string{"1", "2", "3"}
	if len(result.IDs) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, result.IDs)
	}
	for i, id := range want {
		if result.IDs[i] != id {
			t.Fatalf("expected ids %v, got %v", want, result.IDs)
		}
	}

	if !strings.Contains(result.SearchURL, "text=backend+developer") {
		t.Fatalf("unexpected search url: %s", result.SearchURL)
	}
}

func TestSearchIDsStopsEarlyOnLastPage(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{{"id": "1"}},
			"found": 1,
			"pages": 1,
			"page":  0,
		})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, nil)

	if _, err := c.SearchIDs(context.Background(), &SearchParams{Text: "designer", MaxPages: 10}); err != nil {
		t.Fatalf("search: %v", err)
	}

	if requests != 1 {
		t.Fatalf("expected a single request when upstream has one page, got %d", requests)
	}
}

func TestSearchIDsPropagatesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, nil)

	if _, err := c.SearchIDs(context.Background(), &SearchParams{Text: "x"}); err == nil {
		t.Fatalf("expected an error on upstream failure")
	}
}

func TestGetVacancyRequiresID(t *testing.T) {
	c := testClient(t, "http://unused", nil)
	if _, err := c.GetVacancy(context.Background(), ""); err == nil {
		t.Fatalf("expected an error for empty id")
	}
}
