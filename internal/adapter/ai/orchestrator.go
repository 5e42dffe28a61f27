// Package ai selects and drives the response sources.
//
// The orchestrator is the single entry point for obtaining model output. It
// is total: whatever happens to the live backend, callers always receive a
// usable response, degraded to the demo responder when necessary. Only the
// status surface reveals which mode actually served a request.
package ai

import (
	"log/slog"
	"net"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/learnovatex/platform/internal/config"
	"github.com/learnovatex/platform/internal/domain"
	"github.com/learnovatex/platform/internal/observability"
)

// Probe reports whether the network path to the live backend looks usable.
// It is a cheap out-of-band check, distinct from the model call itself.
type Probe func(ctx domain.Context) bool

// DialProbe probes connectivity by opening a TCP connection to addr.
func DialProbe(addr string, timeout time.Duration) Probe {
	return func(ctx domain.Context) bool {
		d := net.Dialer{Timeout: timeout}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}
}

// Orchestrator routes generation requests to the live client or the demo
// responder and owns the retry/fallback policy.
type Orchestrator struct {
	cfg   config.Config
	live  domain.ResponseSource
	demo  domain.ResponseSource
	probe Probe
}

// New constructs an Orchestrator. live may be nil when the deployment runs
// demo-only; probe may be nil to use the configured dial probe.
func New(cfg config.Config, live, demo domain.ResponseSource, probe Probe) *Orchestrator {
	if probe == nil {
		probe = DialProbe(cfg.ProbeAddr, cfg.ProbeTimeout)
	}
	return &Orchestrator{cfg: cfg, live: live, demo: demo, probe: probe}
}

// Respond obtains a response for req. It never returns an error: every
// failure path degrades to the demo responder.
func (o *Orchestrator) Respond(ctx domain.Context, req domain.GenerationRequest) domain.RawResponse {
	if req.Domain == domain.DomainAuto {
		req.Domain = ClassifyPrompt(req.Prompt)
	}
	if req.SystemInstruction == "" {
		req.SystemInstruction = SystemInstructionFor(req.Domain)
	}

	start := time.Now()
	resp := o.respond(ctx, req)
	observability.AIRequestsTotal.WithLabelValues(string(resp.Source), string(req.Domain)).Inc()
	observability.AIRequestDuration.WithLabelValues(string(resp.Source), string(req.Domain)).Observe(time.Since(start).Seconds())
	return resp
}

func (o *Orchestrator) respond(ctx domain.Context, req domain.GenerationRequest) domain.RawResponse {
	lg := observability.LoggerFromContext(ctx)

	if o.cfg.AIMode != config.AIModeLive || o.live == nil {
		lg.Debug("demo mode active, serving canned response", slog.String("domain", string(req.Domain)))
		return o.fallback(ctx, req)
	}
	if !o.cfg.LiveConfigured() {
		lg.Warn("live backend not configured, falling back to demo mode")
		observability.AIFallbacksTotal.WithLabelValues("unconfigured").Inc()
		return o.fallback(ctx, req)
	}
	if !o.probe(ctx) {
		lg.Warn("connectivity probe failed, falling back to demo mode")
		observability.AIFallbacksTotal.WithLabelValues("unreachable").Inc()
		return o.fallback(ctx, req)
	}

	var out domain.RawResponse
	op := func() error {
		resp, err := o.live.Generate(ctx, req)
		if err != nil {
			return err
		}
		out = resp
		return nil
	}
	// Delays between the three attempts: 0s, then backoff, then 2x backoff.
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = o.cfg.AIRetryBackoff
	expo.Multiplier = 2
	expo.RandomizationFactor = 0
	expo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(o.cfg.AIMaxAttempts-1)), ctx)
	notify := func(err error, wait time.Duration) {
		lg.Warn("live call failed, retrying",
			slog.Any("error", err),
			slog.Duration("wait", wait))
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		lg.Warn("live backend exhausted retries, falling back to demo mode", slog.Any("error", err))
		observability.AIFallbacksTotal.WithLabelValues("exhausted").Inc()
		return o.fallback(ctx, req)
	}
	return out
}

// fallback serves the demo responder; it cannot fail.
func (o *Orchestrator) fallback(ctx domain.Context, req domain.GenerationRequest) domain.RawResponse {
	resp, _ := o.demo.Generate(ctx, req)
	return resp
}

// ClassifyPrompt assigns a domain by lightweight keyword inspection.
// Ties resolve code > resume > interview; tutor is the default.
func ClassifyPrompt(prompt string) domain.Domain {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "code") || strings.Contains(lower, "evaluate"):
		return domain.DomainCode
	case strings.Contains(lower, "resume") || strings.Contains(lower, "credibility"):
		return domain.DomainResume
	case strings.Contains(lower, "interview") || strings.Contains(prompt, "Q1:") || strings.Contains(prompt, "Q2:"):
		return domain.DomainInterview
	default:
		return domain.DomainTutor
	}
}

// SystemInstructionFor returns the default system instruction for a domain.
func SystemInstructionFor(d domain.Domain) string {
	switch d {
	case domain.DomainCode:
		return "You are a code reviewer and programming expert. Analyze code for correctness, efficiency, and best practices. Provide constructive feedback."
	case domain.DomainResume:
		return "You are a career counselor and resume expert. Analyze resumes for ATS compatibility, content quality, and improvement suggestions."
	case domain.DomainInterview:
		return "You are an experienced interviewer. Ask relevant technical questions and provide constructive feedback on answers."
	default:
		return "You are an expert tutor and programming instructor. Provide clear, step-by-step explanations with code examples when appropriate."
	}
}

// Status describes the AI layer for the health/status surface.
type Status struct {
	Mode       string `json:"mode"`
	Configured bool   `json:"configured"`
	Endpoint   string `json:"endpoint,omitempty"`
	Deployment string `json:"deployment,omitempty"`
}

// Status reports the active mode and credential presence. Read-only.
func (o *Orchestrator) Status() Status {
	st := Status{Mode: config.AIModeDemo, Configured: o.cfg.LiveConfigured()}
	if o.cfg.AIMode == config.AIModeLive {
		st.Mode = config.AIModeLive
	}
	if st.Configured {
		st.Endpoint = o.cfg.OpenAIEndpoint
		st.Deployment = o.cfg.OpenAIDeployment
	}
	return st
}
