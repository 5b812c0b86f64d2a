package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenLibrary_Books(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "danube history" || q.Get("limit") != "2" {
			t.Errorf("unexpected query: %v", q)
		}
		fmt.Fprint(w, `{"docs":[
			{"key":"/works/OL1W","title":"The Danube","author_name":["Claudio Magris"],"first_publish_year":1986},
			{"key":"/works/OL2W","title":"A History of the Danube","author_name":["John Doe"],"first_publish_year":2001}
		]}`)
	}))
	defer srv.Close()

	o := NewOpenLibrary()
	o.baseURL = srv.URL

	results, err := o.Books(context.Background(), "danube history", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "The Danube" || results[0].Authors[0] != "Claudio Magris" || results[0].Year != 1986 {
		t.Fatalf("unexpected result: %+v", results[0])
	}
	if results[0].URL != srv.URL+"/works/OL1W" {
		t.Errorf("unexpected URL: %q", results[0].URL)
	}
}

func TestOpenLibrary_EmptyQuery(t *testing.T) {
	o := NewOpenLibrary()
	results, err := o.Books(context.Background(), "  ", 5)
	if err != nil || results != nil {
		t.Fatalf("expected nil results without error, got %v / %v", results, err)
	}
}
