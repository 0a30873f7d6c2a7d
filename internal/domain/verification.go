package domain

import "time"

// ProbeMode selects the timeout and redirect budget used when probing a store
type ProbeMode int

const (
	// ProbeThorough uses long timeouts and allows more redirects
	ProbeThorough ProbeMode = iota
	// ProbeFast trades accuracy for latency
	ProbeFast
)

func (m ProbeMode) String() string {
	if m == ProbeFast {
		return "fast"
	}
	return "thorough"
}

// ProbeSettings holds the per-request limits for one probe mode
type ProbeSettings struct {
	HeadTimeout  time.Duration
	GetTimeout   time.Duration
	MaxRedirects int
}

// URLVariants is the number of scheme and www combinations probed per store
const URLVariants = 4

// WorstCase is the longest verifying one candidate can take: HEAD and GET on every
// variant for liveness, then GET on every variant for the homepage.
func (s ProbeSettings) WorstCase() time.Duration {
	return URLVariants*(s.HeadTimeout+s.GetTimeout) + URLVariants*s.GetTimeout
}

// DefaultProbeSettings returns the built-in limits for a mode
func DefaultProbeSettings(mode ProbeMode) ProbeSettings {
	if mode == ProbeFast {
		return ProbeSettings{HeadTimeout: 1200 * time.Millisecond, GetTimeout: 2500 * time.Millisecond, MaxRedirects: 1}
	}
	return ProbeSettings{HeadTimeout: 5 * time.Second, GetTimeout: 9 * time.Second, MaxRedirects: 2}
}

// LivenessStatus is the outcome of probing a store for liveness
type LivenessStatus int

const (
	// LivenessUnknown means no probe completed (e.g. the context ended first)
	LivenessUnknown LivenessStatus = iota
	// LivenessLive means some URL variant answered with a 2xx/3xx status
	LivenessLive
	// LivenessDead means every URL variant failed both HEAD and GET
	LivenessDead
)

func (s LivenessStatus) String() string {
	switch s {
	case LivenessLive:
		return "live"
	case LivenessDead:
		return "dead"
	default:
		return "unknown"
	}
}

// LivenessResult describes the outcome of a liveness probe
type LivenessResult struct {
	Status     LivenessStatus
	URL        string // variant that confirmed liveness
	Method     string
	StatusCode int
	Err        error // last transport error seen, if any
}

// Live reports whether the store answered
func (r LivenessResult) Live() bool {
	return r.Status == LivenessLive
}

// PageResult is the homepage body fetched for a store
type PageResult struct {
	HTML     string
	FinalURL string
	Err      error
}

// Found reports whether any variant produced an HTML body
func (p PageResult) Found() bool {
	return p.FinalURL != ""
}

// QualificationVerdict is the outcome of the high-ticket dropshipping classifier
type QualificationVerdict int

const (
	// NotQualified means the store failed the heuristics
	NotQualified QualificationVerdict = iota
	// Qualified means the store passed the heuristics
	Qualified
)

func (v QualificationVerdict) String() string {
	if v == Qualified {
		return "qualified"
	}
	return "not_qualified"
}

// QualificationResult carries the verdict and the signals that produced it
type QualificationResult struct {
	Verdict      QualificationVerdict
	Reason       string
	MaxPrice     float64
	Installments bool
	Dropship     bool
}

// Qualifies reports whether the verdict is Qualified
func (r QualificationResult) Qualifies() bool {
	return r.Verdict == Qualified
}

// HighTicket reports whether the page showed a large price or financing
func (r QualificationResult) HighTicket() bool {
	return r.MaxPrice >= HighTicketThreshold || r.Installments
}

// HighTicketThreshold is the minimum dollar amount treated as high-ticket
const HighTicketThreshold = 500.0

// VerificationResult is the per-candidate outcome of the verification gates
type VerificationResult struct {
	Store         StoreRecord
	Liveness      LivenessResult
	Qualification QualificationResult
	Relevant      bool
	Reason        string
}

// Accepted reports whether the store passed every gate
func (v VerificationResult) Accepted() bool {
	return v.Liveness.Live() && v.Qualification.Qualifies() && v.Relevant
}
