package ai

import (
	"context"
	"errors"
	"strings"

	"kennedy-digital-arts/backend/pkg/logger"
	"kennedy-digital-arts/backend/pkg/resilience"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FallbackText is returned when every configured provider has failed. It is
// a deliberate user-facing degradation, not an error.
const FallbackText = "I apologize, but I am unable to respond at this moment. Please try again later."

var (
	providerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "text_provider_failures_total",
		Help: "Text generation provider failures by provider and reason.",
	}, []string{"provider", "reason"})

	providerSuccesses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "text_provider_successes_total",
		Help: "Successful text generations by provider.",
	}, []string{"provider"})
)

// Chain tries an ordered list of text providers until one succeeds. Each
// provider is attempted exactly once per call, with no backoff; exhausting
// the list yields FallbackText rather than an error.
type Chain struct {
	providers []TextProvider
	breakers  map[string]*resilience.CircuitBreaker
	log       *logger.Logger
}

// NewChain builds a chain over the given providers, in order. Every
// provider gets its own circuit breaker so a flapping upstream is skipped
// quickly instead of adding latency to each turn.
func NewChain(log *logger.Logger, providers ...TextProvider) *Chain {
	breakers := make(map[string]*resilience.CircuitBreaker, len(providers))
	for _, p := range providers {
		breakers[p.Name()] = resilience.NewCircuitBreaker(
			resilience.DefaultCircuitBreakerConfig("text-provider-"+p.Name()), log)
	}
	return &Chain{
		providers: providers,
		breakers:  breakers,
		log:       log,
	}
}

// Providers returns the configured provider names in chain order.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Generate returns text from the first provider that succeeds. On full
// exhaustion it returns FallbackText with a nil error; provider failures
// never escape to the caller.
func (c *Chain) Generate(ctx context.Context, req *GenerationRequest) (string, error) {
	if req == nil || strings.TrimSpace(req.Prompt) == "" {
		return "", ErrEmptyPrompt
	}

	for _, p := range c.providers {
		var text string

		breaker := c.breakers[p.Name()]
		err := breaker.Execute(func() error {
			generated, genErr := p.Generate(ctx, req)
			if genErr != nil {
				return genErr
			}
			text = generated
			return nil
		})

		if err == nil && text != "" {
			providerSuccesses.WithLabelValues(p.Name()).Inc()
			return text, nil
		}

		reason := failureReason(err)
		providerFailures.WithLabelValues(p.Name(), reason).Inc()
		c.log.Warn("text provider failed, advancing to next",
			"provider", p.Name(),
			"reason", reason,
			"error", errString(err),
		)
	}

	c.log.Warn("all text providers exhausted, returning fallback text",
		"providers", strings.Join(c.Providers(), ","),
	)
	return FallbackText, nil
}

func failureReason(err error) string {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Reason
	}
	if err != nil && err.Error() == "circuit open" {
		return ReasonCircuitOpen
	}
	return ReasonNetwork
}

func errString(err error) string {
	if err == nil {
		return "empty result"
	}
	return err.Error()
}
