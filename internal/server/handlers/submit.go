package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/formrelay/formrelay/internal/form"
	"github.com/formrelay/formrelay/internal/mailer"
	"github.com/formrelay/formrelay/internal/metrics"
	"github.com/formrelay/formrelay/internal/ratelimit"
	"github.com/formrelay/formrelay/internal/server/middleware"
)

// Headers consulted for the client identity, in order. The literal
// "unknown" is used when neither is present; those clients then share
// one rate-limit bucket.
const (
	forwardedForHeader = "X-Forwarded-For"
	realIPHeader       = "X-Real-IP"
	unknownClient      = "unknown"
)

// SubmitHandler runs the admission pipeline for POST /api/submit:
// validate, allowlist, rate limit, notify.
type SubmitHandler struct {
	Sites    form.AllowedSites
	Limiter  *ratelimit.Limiter
	Notifier mailer.Notifier
	Logger   *zap.Logger

	// Clock stamps admitted submissions. Overridable in tests.
	Clock func() time.Time
}

// NewSubmitHandler wires the pipeline dependencies. logger may be nil.
func NewSubmitHandler(sites form.AllowedSites, limiter *ratelimit.Limiter, notifier mailer.Notifier, logger *zap.Logger) *SubmitHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmitHandler{
		Sites:    sites,
		Limiter:  limiter,
		Notifier: notifier,
		Logger:   logger,
		Clock:    time.Now,
	}
}

// ServeHTTP sequences the pipeline, short-circuiting at the first
// failing stage.
func (h *SubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var raw form.Submission
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		metrics.RecordSubmission(metrics.OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, Response{
			OK:      false,
			Error:   "validation_error",
			Details: []string{string(form.CodeInvalidJSON)},
		})
		return
	}

	codes, cleaned := form.Validate(raw)
	if len(codes) > 0 {
		metrics.RecordSubmission(metrics.OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, Response{
			OK:      false,
			Error:   "validation_error",
			Details: form.Strings(codes),
		})
		return
	}

	clientID := clientID(r)

	if !h.Sites.Contains(cleaned.Site) {
		metrics.RecordSubmission(metrics.OutcomeForbidden)
		h.Logger.Info("submission rejected for unlisted site",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("site", cleaned.Site),
			zap.String("client_id", clientID))
		writeError(w, http.StatusForbidden, "forbidden_site")
		return
	}

	if !h.Limiter.Admit(clientID) {
		metrics.RecordSubmission(metrics.OutcomeRateLimited)
		h.Logger.Info("submission rate limited",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("site", cleaned.Site),
			zap.String("client_id", clientID))
		writeError(w, http.StatusTooManyRequests, "rate_limited")
		return
	}

	notification := mailer.Notification{
		Submission: cleaned,
		ClientID:   clientID,
		UserAgent:  userAgent(r),
		ReceivedAt: h.Clock(),
	}

	if err := h.Notifier.Notify(r.Context(), notification); err != nil {
		if errors.Is(err, mailer.ErrMisconfigured) {
			metrics.RecordSubmission(metrics.OutcomeMisconfigured)
			h.Logger.Warn("mail configuration incomplete, submission dropped",
				zap.String("request_id", middleware.GetRequestID(r.Context())),
				zap.String("site", cleaned.Site),
				zap.String("client_id", clientID))
			writeError(w, http.StatusInternalServerError, "server_error")
			return
		}

		metrics.RecordSubmission(metrics.OutcomeSendFailed)
		h.Logger.Error("notification dispatch failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("site", cleaned.Site),
			zap.String("client_id", clientID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "email_send_failed")
		return
	}

	metrics.RecordSubmission(metrics.OutcomeAccepted)
	writeOK(w)
}

// clientID derives the rate-limit key: first X-Forwarded-For entry,
// then X-Real-IP, then "unknown". RemoteAddr is deliberately not used;
// behind the expected proxy it is the proxy's address.
func clientID(r *http.Request) string {
	if xff := r.Header.Get(forwardedForHeader); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(r.Header.Get(realIPHeader)); ip != "" {
		return ip
	}
	return unknownClient
}

func userAgent(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}
	return unknownClient
}
