package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/sksahoo1435/scintillate-project/internal/logging"
	"github.com/sksahoo1435/scintillate-project/internal/timeouts"
)

// Entry is a catalog record (a character). Immutable once fetched.
type Entry struct {
	Name      string   `json:"name"`
	Height    string   `json:"height"`
	Mass      string   `json:"mass"`
	Gender    string   `json:"gender"`
	HairColor string   `json:"hair_color"`
	SkinColor string   `json:"skin_color"`
	EyeColor  string   `json:"eye_color"`
	BirthYear string   `json:"birth_year"`
	Films     []string `json:"films"`
	URL       string   `json:"url"`
}

// ID is the identifier derived from the entry's canonical URL.
func (e Entry) ID() string {
	return IDFromURL(e.URL)
}

// Film is a dependent resource referenced from an Entry.
type Film struct {
	Title       string `json:"title"`
	Director    string `json:"director"`
	Producer    string `json:"producer"`
	ReleaseDate string `json:"release_date"`
	URL         string `json:"url"`
}

// Page is one page of the people listing.
type Page struct {
	Entries []Entry `json:"results"`
	Count   int     `json:"count"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.Request}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// FetchPage lists one page of entries together with the catalog's total count.
func (c *Client) FetchPage(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		page = 1
	}

	q := make(url.Values)
	q.Set("page", strconv.Itoa(page))

	var out Page
	if err := c.getJSON(ctx, "list people", c.baseURL+"/people/?"+q.Encode(), &out); err != nil {
		return Page{}, err
	}
	if out.Entries == nil {
		out.Entries = []Entry{}
	}
	return out, nil
}

// FetchEntry loads a single entry by identifier.
func (c *Client) FetchEntry(ctx context.Context, id string) (Entry, error) {
	id = strings.Trim(strings.TrimSpace(id), "/")
	if id == "" {
		return Entry{}, &TransportError{Op: "get person", Err: fmt.Errorf("empty identifier")}
	}

	var out Entry
	if err := c.getJSON(ctx, "get person "+id, c.baseURL+"/people/"+url.PathEscape(id)+"/", &out); err != nil {
		return Entry{}, err
	}
	return out, nil
}

// FetchDependent loads the resource behind a reference URL taken from an
// Entry. The URL is used as-is.
func (c *Client) FetchDependent(ctx context.Context, rawURL string) (Film, error) {
	var out Film
	if err := c.getJSON(ctx, "get film", rawURL, &out); err != nil {
		return Film{}, err
	}
	if out.URL == "" {
		out.URL = rawURL
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, op, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return &TransportError{Op: op, URL: fullURL, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	logger := logging.FromContext(ctx)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug().Err(err).Str("url", fullURL).Dur("duration", time.Since(start)).Msg("catalog request failed")
		return &TransportError{Op: op, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	logger.Debug().
		Str("url", fullURL).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("catalog request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &TransportError{
			Op:         op,
			URL:        fullURL,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	reader, err := bodyReader(resp)
	if err != nil {
		return &TransportError{Op: op, URL: fullURL, Err: err}
	}
	if err := json.NewDecoder(reader).Decode(out); err != nil {
		return &TransportError{Op: op, URL: fullURL, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// bodyReader transcodes the body to UTF-8 when the response declares a
// non-UTF-8 charset.
func bodyReader(resp *http.Response) (io.Reader, error) {
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return resp.Body, nil
	}
	label := strings.ToLower(strings.TrimSpace(params["charset"]))
	if label == "" || label == "utf-8" || label == "utf8" {
		return resp.Body, nil
	}
	reader, err := charset.NewReaderLabel(label, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode charset %q: %w", label, err)
	}
	return reader, nil
}

// IDFromURL returns the trailing non-empty path segment of a catalog URL,
// so "https://swapi.dev/api/people/12/" yields "12".
func IDFromURL(raw string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
