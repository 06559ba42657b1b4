package notion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testDatabaseID = "11111111-1111-1111-1111-111111111111"

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("secret-test-token", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestQueryDatabase(t *testing.T) {
	var gotReq QueryRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		wantPath := "/v1/databases/" + testDatabaseID + "/query"
		if r.URL.Path != wantPath {
			t.Errorf("path = %s, want %s", r.URL.Path, wantPath)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != apiVersion {
			t.Errorf("Notion-Version = %q, want %q", got, apiVersion)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		json.NewEncoder(w).Encode(QueryResponse{
			Results: []Page{{
				ID:  "page-1",
				URL: "https://notion.so/page-1",
				Properties: map[string]any{
					"Name": map[string]any{"type": "title"},
				},
			}},
			HasMore:    true,
			NextCursor: "cursor-2",
		})
	}))

	resp, err := client.QueryDatabase(context.Background(), testDatabaseID, &QueryRequest{
		PageSize:    MaxPageSize,
		StartCursor: "cursor-1",
	})
	if err != nil {
		t.Fatalf("QueryDatabase: %v", err)
	}
	if gotReq.PageSize != MaxPageSize || gotReq.StartCursor != "cursor-1" {
		t.Errorf("request body = %+v", gotReq)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != "page-1" {
		t.Errorf("results = %+v", resp.Results)
	}
	if !resp.HasMore || resp.NextCursor != "cursor-2" {
		t.Errorf("pagination = has_more %v, cursor %q", resp.HasMore, resp.NextCursor)
	}
}

func TestQueryDatabaseNilRequest(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(QueryResponse{})
	}))

	if _, err := client.QueryDatabase(context.Background(), testDatabaseID, nil); err != nil {
		t.Fatalf("QueryDatabase with nil request: %v", err)
	}
}

func TestCreatePage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/pages" {
			t.Errorf("%s %s, want POST /v1/pages", r.Method, r.URL.Path)
		}
		var body struct {
			Parent     pageParent     `json:"parent"`
			Properties map[string]any `json:"properties"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.Parent.DatabaseID != testDatabaseID {
			t.Errorf("parent = %+v", body.Parent)
		}
		if _, ok := body.Properties["Name"]; !ok {
			t.Errorf("properties = %v", body.Properties)
		}

		json.NewEncoder(w).Encode(Page{ID: "page-new"})
	}))

	page, err := client.CreatePage(context.Background(), testDatabaseID, map[string]any{
		"Name": map[string]any{"title": []any{}},
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if page.ID != "page-new" {
		t.Errorf("page id = %q", page.ID)
	}
}

func TestUpdatePage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/v1/pages/page-7" {
			t.Errorf("%s %s, want PATCH /v1/pages/page-7", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if _, ok := body["archived"]; ok {
			t.Error("plain update should not set archived")
		}

		json.NewEncoder(w).Encode(Page{ID: "page-7"})
	}))

	page, err := client.UpdatePage(context.Background(), "page-7", map[string]any{
		"Notes": map[string]any{"rich_text": []any{}},
	})
	if err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}
	if page.ID != "page-7" {
		t.Errorf("page id = %q", page.ID)
	}
}

func TestArchivePage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if archived, _ := body["archived"].(bool); !archived {
			t.Errorf("body = %v, want archived true", body)
		}
		json.NewEncoder(w).Encode(Page{ID: "page-7", Archived: true})
	}))

	page, err := client.ArchivePage(context.Background(), "page-7")
	if err != nil {
		t.Fatalf("ArchivePage: %v", err)
	}
	if !page.Archived {
		t.Error("page should be archived")
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"code":    "object_not_found",
			"message": "Could not find database",
		})
	}))

	_, err := client.QueryDatabase(context.Background(), testDatabaseID, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Code != "object_not_found" {
		t.Errorf("api error = %+v", apiErr)
	}
	if !apiErr.IsNotFound() {
		t.Error("IsNotFound should report true")
	}
	if !strings.Contains(apiErr.Error(), "object_not_found") {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestAPIErrorNonJSONBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))

	_, err := client.QueryDatabase(context.Background(), testDatabaseID, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Message != http.StatusText(http.StatusBadGateway) {
		t.Errorf("message = %q, want status text fallback", apiErr.Message)
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		err  *APIError
		want bool
	}{
		{&APIError{Status: 404}, true},
		{&APIError{Status: 400, Code: "object_not_found"}, true},
		{&APIError{Status: 400, Code: "validation_error"}, false},
		{&APIError{Status: 500}, false},
	}
	for _, tt := range tests {
		if got := tt.err.IsNotFound(); got != tt.want {
			t.Errorf("IsNotFound(%+v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.QueryDatabase(ctx, testDatabaseID, nil); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
