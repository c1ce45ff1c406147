package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/ihmgraph/pkg/cache"
	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/errors"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
	"github.com/matzehuels/ihmgraph/pkg/integrations"
)

// DefaultBaseURL is the NCBI E-utilities endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Summary is the part of an esummary record that makes up a citation.
// It is what gets cached.
type Summary struct {
	PMID    string   `json:"pmid"`
	Title   string   `json:"title"`
	Journal string   `json:"journal"`
	Volume  string   `json:"volume,omitempty"`
	Pages   string   `json:"pages,omitempty"`
	Year    string   `json:"year,omitempty"`
	DOI     string   `json:"doi,omitempty"`
	Authors []string `json:"authors,omitempty"`
}

// Client fetches citations from PubMed.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
	apiKey  string
	keyer   cache.Keyer
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another E-utilities server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithAPIKey sets the NCBI API key sent with every request.
func WithAPIKey(key string) Option { return func(c *Client) { c.apiKey = key } }

// WithKeyer sets how cache keys are built.
func WithKeyer(k cache.Keyer) Option { return func(c *Client) { c.keyer = k } }

// NewClient creates a PubMed client caching summaries in backend for
// cacheTTL. A nil backend disables caching.
func NewClient(backend cache.Cache, cacheTTL time.Duration, opts ...Option) *Client {
	c := &Client{
		Client:  integrations.NewClient(backend, "", cacheTTL, map[string]string{"Accept": "application/json"}),
		baseURL: DefaultBaseURL,
		keyer:   cache.NewDefaultKeyer(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FetchSummary returns the summary of one PubMed record.
//
// If refresh is true, the cache is bypassed. Returns an INVALID_INPUT error
// for malformed ids and wraps [integrations.ErrNotFound] when PubMed has no
// such record.
func (c *Client) FetchSummary(ctx context.Context, pmid string, refresh bool) (*Summary, error) {
	pmid = strings.TrimSpace(pmid)
	if err := errors.ValidatePMID(pmid); err != nil {
		return nil, err
	}
	var s Summary
	err := c.Cached(ctx, c.keyer.CitationKey(pmid), refresh, &s, func() error {
		return c.fetch(ctx, pmid, &s)
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FetchCitation returns a new citation for the PubMed record pmid. The
// result is not attached to any system.
func (c *Client) FetchCitation(ctx context.Context, pmid string, refresh bool) (*ihm.Citation, error) {
	s, err := c.FetchSummary(ctx, pmid, refresh)
	if err != nil {
		return nil, err
	}
	return s.Citation(), nil
}

// Citation converts the summary. Empty fields stay absent.
func (s *Summary) Citation() *ihm.Citation {
	c := &ihm.Citation{
		PMID:    cif.OptStr(s.PMID),
		Title:   cif.OptStr(s.Title),
		Journal: cif.OptStr(s.Journal),
		Volume:  cif.OptStr(s.Volume),
		Year:    cif.OptStr(s.Year),
		DOI:     cif.OptStr(s.DOI),
		Authors: append([]string(nil), s.Authors...),
	}
	first, last, _ := strings.Cut(s.Pages, "-")
	c.PageFirst = cif.OptStr(strings.TrimSpace(first))
	c.PageLast = cif.OptStr(strings.TrimSpace(last))
	return c
}

type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type esummaryRecord struct {
	UID     string `json:"uid"`
	Title   string `json:"title"`
	Source  string `json:"source"`
	Volume  string `json:"volume"`
	Pages   string `json:"pages"`
	PubDate string `json:"pubdate"`
	Error   string `json:"error"`
	Authors []struct {
		Name     string `json:"name"`
		AuthType string `json:"authtype"`
	} `json:"authors"`
	ArticleIDs []struct {
		IDType string `json:"idtype"`
		Value  string `json:"value"`
	} `json:"articleids"`
}

func (c *Client) fetch(ctx context.Context, pmid string, s *Summary) error {
	q := url.Values{}
	q.Set("db", "pubmed")
	q.Set("retmode", "json")
	q.Set("rettype", "abstract")
	q.Set("id", pmid)
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}

	var resp esummaryResponse
	if err := c.Get(ctx, c.baseURL+"/esummary.fcgi?"+q.Encode(), &resp); err != nil {
		return err
	}
	raw, ok := resp.Result[pmid]
	if !ok {
		return fmt.Errorf("%w: pubmed id %s", integrations.ErrNotFound, pmid)
	}
	var rec esummaryRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "pubmed record %s", pmid)
	}
	if rec.Error != "" {
		return fmt.Errorf("%w: pubmed id %s: %s", integrations.ErrNotFound, pmid, rec.Error)
	}
	*s = fromRecord(pmid, &rec)
	return nil
}

func fromRecord(pmid string, rec *esummaryRecord) Summary {
	s := Summary{
		PMID:    pmid,
		Title:   rec.Title,
		Journal: rec.Source,
		Volume:  rec.Volume,
		Pages:   rec.Pages,
	}
	if f := strings.Fields(rec.PubDate); len(f) > 0 {
		s.Year = f[0]
	}
	for _, a := range rec.Authors {
		if a.AuthType == "Author" {
			s.Authors = append(s.Authors, a.Name)
		}
	}
	for _, id := range rec.ArticleIDs {
		if id.IDType == "doi" {
			s.DOI = id.Value
			break
		}
	}
	return s
}
