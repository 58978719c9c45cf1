// Package metricskey describes the metrics emitted by the agent.
package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	StatsOracleCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_oracle_calls_succeeded",
		Help:         "stats_oracle_calls_succeeded provides total oracle calls succeeded",
		RequiredTags: []string{"provider", "model"},
	}

	StatsOracleCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_oracle_calls_failed",
		Help:         "stats_oracle_calls_failed provides total oracle calls failed",
		RequiredTags: []string{"provider", "model"},
	}

	StatsOracleRateLimited = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_oracle_rate_limited",
		Help:         "stats_oracle_rate_limited provides total oracle calls rejected with a backoff signal",
		RequiredTags: []string{"provider", "model"},
	}

	StatsCyclesSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_agent_cycles_succeeded",
		Help:         "stats_agent_cycles_succeeded provides total message cycles that reached the responded state",
		RequiredTags: []string{"agent"},
	}

	StatsCyclesFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_agent_cycles_failed",
		Help:         "stats_agent_cycles_failed provides total message cycles that failed on an oracle error",
		RequiredTags: []string{"agent"},
	}

	StatsParseFallbacks = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_agent_parse_fallbacks",
		Help:         "stats_agent_parse_fallbacks provides total oracle replies that required fallback construction",
		RequiredTags: []string{"agent", "phase"},
	}

	StatsToolCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_succeeded",
		Help:         "stats_tool_calls_succeeded provides total tool calls succeeded",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_failed",
		Help:         "stats_tool_calls_failed provides total tool calls failed",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsNotFound = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_not_found",
		Help:         "stats_tool_calls_not_found provides total plan steps naming an unknown tool",
		RequiredTags: []string{"tool"},
	}
)

// Perf
var (
	PerfCycle = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_agent_cycle",
		Help:         "perf_agent_cycle provides the full message cycle duration",
		RequiredTags: []string{"agent"},
	}

	PerfOracleCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_oracle_call",
		Help:         "perf_oracle_call provides the oracle completion call duration",
		RequiredTags: []string{"provider", "model"},
	}

	PerfToolCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_tool_call",
		Help:         "perf_tool_call provides the tool call duration",
		RequiredTags: []string{"tool"},
	}
)

// Metrics returns all defined metrics, to be registered with the provider.
var Metrics = []*metrics.Describe{
	&StatsOracleCallsSucceeded,
	&StatsOracleCallsFailed,
	&StatsOracleRateLimited,
	&StatsCyclesSucceeded,
	&StatsCyclesFailed,
	&StatsParseFallbacks,
	&StatsToolCallsSucceeded,
	&StatsToolCallsFailed,
	&StatsToolCallsNotFound,
	&PerfCycle,
	&PerfOracleCall,
	&PerfToolCall,
}
