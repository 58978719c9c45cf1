// Package weather provides the weather-lookup tool. When the
// OpenWeather API key is configured the tool queries the live API,
// otherwise it falls back to a deterministic simulated report so the
// agent can still complete the plan.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/chatmodel"
	"github.com/effective-security/agentic/llmutils"
	"github.com/effective-security/agentic/schema"
	"github.com/effective-security/agentic/tools"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/agentic", "weather")

// ToolName is the registry key for the weather-lookup tool.
const ToolName = "Weather"

// TokenEnvVarName is the environment variable for the API key.
const TokenEnvVarName = "OPENWEATHER_API_KEY"

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// SourceLive and SourceSimulation identify where a report came from.
const (
	SourceLive       = "openweathermap"
	SourceSimulation = "simulation"
)

// WeatherRequest represents the tool input.
type WeatherRequest struct {
	Location string `json:"Location" yaml:"Location" jsonschema:"title=Location,description=The city or place to report the weather for."`
}

// WeatherReport represents the structure for a weather response.
type WeatherReport struct {
	Location    string  `json:"Location" yaml:"Location" jsonschema:"title=Location,description=The location the report is for."`
	Temperature float64 `json:"Temperature" yaml:"Temperature" jsonschema:"title=Temperature,description=The temperature in degrees Celsius."`
	Conditions  string  `json:"Conditions" yaml:"Conditions" jsonschema:"title=Conditions,description=A short description of the sky conditions."`
	Humidity    int     `json:"Humidity" yaml:"Humidity" jsonschema:"title=Humidity,description=The relative humidity in percent."`
	Source      string  `json:"Source" yaml:"Source" jsonschema:"title=Source,description=Whether the report is live or simulated."`
}

// GetContent implements the ContentProvider interface.
func (r *WeatherReport) GetContent() string {
	return llmutils.ToJSON(r)
}

func (r *WeatherReport) String() string {
	return fmt.Sprintf("%s: %.1f°C, %s, humidity %d%% (%s)",
		r.Location, r.Temperature, r.Conditions, r.Humidity, r.Source)
}

// Tool is a tool that reports the current weather for a location.
type Tool struct {
	name        string
	description string

	apikey     string
	baseURL    string
	httpClient *http.Client
}

var _ tools.Tool[WeatherRequest, WeatherReport] = (*Tool)(nil)

// New creates the weather-lookup tool. A missing API key is not an
// error, the tool reports simulated conditions instead.
func New() *Tool {
	return &Tool{
		name:        ToolName,
		description: "A tool that reports the current weather conditions for a given location.",
		apikey:      os.Getenv(TokenEnvVarName),
		baseURL:     defaultBaseURL,
		httpClient:  http.DefaultClient,
	}
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
	sc, _ := schema.New(reflect.TypeOf(WeatherRequest{}))
	return sc.Parameters
}

func (t *Tool) Run(ctx context.Context, req *WeatherRequest) (*WeatherReport, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, errors.New("invalid request: empty location")
	}

	if t.apikey == "" {
		logger.ContextKV(ctx, xlog.DEBUG,
			"reason", "api key not configured",
			"location", location,
		)
		return simulate(location), nil
	}

	report, err := t.fetch(ctx, location)
	if err != nil {
		// Degrade to a simulated report rather than failing the step.
		logger.ContextKV(ctx, xlog.WARNING,
			"reason", "live lookup failed",
			"location", location,
			"err", err.Error(),
		)
		return simulate(location), nil
	}
	return report, nil
}

// openWeatherResponse is the subset of the OpenWeather body the tool uses.
type openWeatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
}

func (t *Tool) fetch(ctx context.Context, location string) (*WeatherReport, error) {
	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", t.apikey)
	q.Set("units", "metric")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query weather API")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var body openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}

	conditions := "unknown"
	if len(body.Weather) > 0 {
		conditions = body.Weather[0].Description
	}

	return &WeatherReport{
		Location:    location,
		Temperature: body.Main.Temp,
		Conditions:  conditions,
		Humidity:    body.Main.Humidity,
		Source:      SourceLive,
	}, nil
}

var simulatedConditions = []string{
	"clear sky",
	"few clouds",
	"scattered clouds",
	"overcast",
	"light rain",
	"fog",
}

// simulate produces a stable report for a location so repeated calls
// in one session do not contradict each other.
func simulate(location string) *WeatherReport {
	h := xxhash.Sum64String(strings.ToLower(location))
	return &WeatherReport{
		Location:    location,
		Temperature: float64(int(h%350))/10.0 - 5.0,
		Conditions:  simulatedConditions[h%uint64(len(simulatedConditions))],
		Humidity:    int(30 + h%61),
		Source:      SourceSimulation,
	}
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	var req WeatherRequest
	if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithMessage(chatmodel.ErrFailedUnmarshalInput, err.Error())
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return llmutils.ToJSON(out), nil
}
