// Package websearch provides the knowledge-lookup tool, backed by the
// Tavily search API.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/chatmodel"
	"github.com/effective-security/agentic/llmutils"
	"github.com/effective-security/agentic/schema"
	"github.com/effective-security/agentic/tools"
	tavilygo "github.com/diverged/tavily-go"
	tavilyModels "github.com/diverged/tavily-go/models"
)

// ToolName is the registry key for the knowledge-lookup tool.
const ToolName = "WebSearch"

// TokenEnvVarName is the environment variable for the API key.
const TokenEnvVarName = "TAVILY_API_KEY"

// SearchRequest represents the tool input.
type SearchRequest struct {
	Query string `json:"Query" yaml:"Query" jsonschema:"title=Query,description=The query to search web."`
}

// SearchItem is a single knowledge-lookup hit.
type SearchItem struct {
	Title   string `json:"Title" yaml:"Title" jsonschema:"title=Title,description=The title of the result."`
	Summary string `json:"Summary" yaml:"Summary" jsonschema:"title=Summary,description=The summary of the result content."`
	URL     string `json:"URL" yaml:"URL" jsonschema:"title=URL,description=The source URL of the result."`
}

// SearchResult represents the structure for a search response.
// NoResults is set when the search returned nothing.
type SearchResult struct {
	Results   []SearchItem `json:"Results,omitempty" yaml:"Results,omitempty" jsonschema:"title=Results,description=The results from a web search."`
	Answer    string       `json:"Answer,omitempty" yaml:"Answer,omitempty" jsonschema:"title=Answer,description=The aggregated answer from a web search."`
	NoResults bool         `json:"NoResults,omitempty" yaml:"NoResults,omitempty" jsonschema:"title=NoResults,description=Set when the search returned no results."`
}

// GetContent implements the ContentProvider interface.
func (r *SearchResult) GetContent() string {
	return llmutils.ToJSON(r)
}

func (r *SearchResult) String() string {
	var buf bytes.Buffer
	if r.NoResults {
		buf.WriteString("NO RESULTS\n")
		return buf.String()
	}
	if r.Answer != "" {
		fmt.Fprintf(&buf, "ANSWER: %s\n", r.Answer)
	}
	for _, result := range r.Results {
		fmt.Fprintf(&buf, "- URL: %s\n", result.URL)
		fmt.Fprintf(&buf, "  TITLE: %s\n", result.Title)
		fmt.Fprintf(&buf, "  SUMMARY: %s\n", result.Summary)
	}
	return buf.String()
}

// Tool is a tool that provides a web search functionality.
type Tool struct {
	name        string
	description string

	apikey     string
	baseURL    string
	httpClient *http.Client
}

var _ tools.Tool[SearchRequest, SearchResult] = (*Tool)(nil)

// New creates the knowledge-lookup tool.
// The API key is read from the TAVILY_API_KEY environment variable
// unless overridden with WithToken.
func New() (*Tool, error) {
	tool := &Tool{
		name:        ToolName,
		description: "A tool that searches the web for knowledge and returns titles, summaries and source URLs.",
		apikey:      os.Getenv(TokenEnvVarName),
		httpClient:  http.DefaultClient,
	}
	if tool.apikey == "" {
		return nil, errors.Errorf("%s is not set", TokenEnvVarName)
	}
	return tool, nil
}

func (t *Tool) WithToken(token string) *Tool {
	t.apikey = token
	return t
}

func (t *Tool) WithBaseURL(baseURL string) *Tool {
	t.baseURL = baseURL
	return t
}

func (t *Tool) WithHTTPClient(client *http.Client) *Tool {
	t.httpClient = client
	return t
}

func (t *Tool) Name() string {
	return t.name
}

func (t *Tool) Description() string {
	return t.description
}

func (t *Tool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(SearchRequest{}))
	return sc.Parameters
}

func (t *Tool) Run(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	if req.Query == "" {
		return nil, errors.New("invalid request: empty query")
	}

	client := tavilygo.NewClient(t.apikey)
	if t.baseURL != "" {
		client.BaseURL = t.baseURL
	}
	if t.httpClient != nil {
		client.HTTPClient = t.httpClient
	}

	searchReq := tavilyModels.SearchRequest{
		Query:         req.Query,
		SearchDepth:   "basic",
		IncludeAnswer: true,
	}

	searchResp, err := tavilygo.Search(client, searchReq)
	if err != nil {
		return nil, errors.Wrap(err, "failed to perform search")
	}

	res := &SearchResult{
		Answer: searchResp.Answer,
	}
	for _, item := range searchResp.Results {
		res.Results = append(res.Results, SearchItem{
			Title:   item.Title,
			Summary: item.Content,
			URL:     item.URL,
		})
	}
	if len(res.Results) == 0 && res.Answer == "" {
		res.NoResults = true
	}

	return res, nil
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	var req SearchRequest
	if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithMessage(chatmodel.ErrFailedUnmarshalInput, err.Error())
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return llmutils.ToJSON(out), nil
}
