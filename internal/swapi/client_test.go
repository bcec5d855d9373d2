package swapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchPage_SendsPageAndParsesResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/people/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "3" {
			t.Fatalf("unexpected page query: %s", r.URL.RawQuery)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Fatalf("unexpected accept header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":23,"next":null,"previous":"x","results":[{"name":"Luke Skywalker","height":"172","mass":"77","hair_color":"blond","skin_color":"fair","eye_color":"blue","birth_year":"19BBY","gender":"male","films":["https://swapi.dev/api/films/1/"],"url":"https://swapi.dev/api/people/1/"}]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, ts.Client())
	page, err := c.FetchPage(context.Background(), 3)
	if err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}

	if page.Count != 23 {
		t.Fatalf("unexpected count: %d", page.Count)
	}
	if len(page.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(page.Entries))
	}
	luke := page.Entries[0]
	if luke.Name != "Luke Skywalker" || luke.HairColor != "blond" || luke.BirthYear != "19BBY" {
		t.Fatalf("unexpected entry: %+v", luke)
	}
	if luke.ID() != "1" {
		t.Fatalf("unexpected entry id: %s", luke.ID())
	}
	if len(luke.Films) != 1 {
		t.Fatalf("expected film references, got %+v", luke.Films)
	}
}

func TestFetchPage_EmptyResultsIsNonNil(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":0}`))
	}))
	defer ts.Close()

	page, err := NewClient(ts.URL, ts.Client()).FetchPage(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}
	if page.Entries == nil || len(page.Entries) != 0 {
		t.Fatalf("expected empty non-nil entries, got %#v", page.Entries)
	}
}

func TestFetchEntry_UsesIdentifierPath(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/people/12/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"name":"Wilhuff Tarkin","films":[],"url":"https://swapi.dev/api/people/12/"}`))
	}))
	defer ts.Close()

	entry, err := NewClient(ts.URL+"/", ts.Client()).FetchEntry(context.Background(), "12")
	if err != nil {
		t.Fatalf("FetchEntry returned error: %v", err)
	}
	if entry.Name != "Wilhuff Tarkin" {
		t.Fatalf("unexpected name: %s", entry.Name)
	}
}

func TestFetchEntry_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found"}`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, ts.Client()).FetchEntry(context.Background(), "999")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrTransport) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected transport + not found error, got %v", err)
	}
	var te *TransportError
	if !errors.As(err, &te) || te.StatusCode != http.StatusNotFound {
		t.Fatalf("expected TransportError with status 404, got %#v", err)
	}
	if !strings.Contains(err.Error(), "Not found") {
		t.Fatalf("expected body excerpt in error, got %v", err)
	}
}

func TestFetchEntry_EmptyIdentifier(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:0", nil).FetchEntry(context.Background(), " / ")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestFetchDependent_UsesURLAsIs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/films/2/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"title":"The Empire Strikes Back","director":"Irvin Kershner","producer":"Gary Kurtz, Rick McCallum","release_date":"1980-05-17"}`))
	}))
	defer ts.Close()

	film, err := NewClient("http://unused.invalid", ts.Client()).FetchDependent(context.Background(), ts.URL+"/films/2/")
	if err != nil {
		t.Fatalf("FetchDependent returned error: %v", err)
	}
	if film.Title != "The Empire Strikes Back" || film.ReleaseDate != "1980-05-17" {
		t.Fatalf("unexpected film: %+v", film)
	}
	if film.URL != ts.URL+"/films/2/" {
		t.Fatalf("expected reference URL to be kept, got %s", film.URL)
	}
}

func TestFetchDependent_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title":`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, ts.Client()).FetchDependent(context.Background(), ts.URL+"/films/1/")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error for malformed body, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("malformed body should not match not found: %v", err)
	}
}

func TestFetchPage_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, ts.Client()).FetchPage(context.Background(), 1)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Fatalf("expected status in message, got %v", err)
	}
}

func TestFetchPage_NetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := ts.URL
	ts.Close()

	_, err := NewClient(baseURL, nil).FetchPage(context.Background(), 1)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestFetchEntry_TranscodesDeclaredCharset(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=iso-8859-1")
		_, _ = w.Write([]byte("{\"name\":\"Padm\xe9 Amidala\"}"))
	}))
	defer ts.Close()

	entry, err := NewClient(ts.URL, ts.Client()).FetchEntry(context.Background(), "35")
	if err != nil {
		t.Fatalf("FetchEntry returned error: %v", err)
	}
	if entry.Name != "Padmé Amidala" {
		t.Fatalf("expected transcoded name, got %q", entry.Name)
	}
}

func TestIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://swapi.dev/api/people/1/":  "1",
		"https://swapi.dev/api/people/12":  "12",
		"https://swapi.dev/api/people/7//": "7",
		"42":                               "42",
		"":                                 "",
	}
	for in, want := range cases {
		if got := IDFromURL(in); got != want {
			t.Fatalf("IDFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}
