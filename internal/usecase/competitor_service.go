package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BeefBowl03/domain-generator/internal/domain"
	"github.com/BeefBowl03/domain-generator/internal/logger"
)

const (
	// DefaultMaxAttempts bounds the generator retry rounds
	DefaultMaxAttempts = 8

	wideBatchSize      = 10
	primaryBatchSize   = 10
	generatedBatchSize = 8
	globalBatchSize    = 12

	variationWaveWidth  = 4
	retryVariationLimit = 6

	// GeneratorGrace is how long a generator call may run past the deadline
	GeneratorGrace = 2 * time.Second
)

// MaxOverrun bounds how long a run can continue after its deadline: either one batch
// already in flight under the given probe settings, or a generator call cut off at
// GeneratorGrace. No new batch starts after a generator call returns late.
func MaxOverrun(settings ...domain.ProbeSettings) time.Duration {
	worst := GeneratorGrace
	for _, ps := range settings {
		worst = max(worst, ps.WorstCase())
	}
	return worst
}

// DiscoveryOptions controls one orchestrator run
type DiscoveryOptions struct {
	// Fast skips verification and returns curated stores topped up by the generator
	Fast bool
	// Deadline gates the start of new waves and batches; the zero value never expires
	Deadline Deadline
	// MaxAttempts bounds generator retry rounds; values below 1 use DefaultMaxAttempts
	MaxAttempts int
	// FastVerify probes with the fast timeouts in every wave, not only the global fallback
	FastVerify bool
}

// DiscoveryResult is the outcome of an orchestrator run
type DiscoveryResult struct {
	Niche      string
	Normalized string
	Canonical  string
	Stores     []domain.StoreRecord
	// TimedOut is set when the deadline cut the run short
	TimedOut bool
	Waves    []WaveStat
}

// WaveStat summarizes a single wave
type WaveStat struct {
	Name       string        `json:"name"`
	Candidates int           `json:"candidates"`
	Accepted   int           `json:"accepted"`
	Elapsed    time.Duration `json:"elapsed"`
}

// CompetitorService finds verified competitor stores for a niche
type CompetitorService struct {
	normalizer *NicheNormalizer
	seeds      *SeedSource
	prober     domain.SiteProber
	generator  domain.CandidateGenerator
	qualifier  *Qualifier
	relevance  *RelevanceFilter
	logger     logger.Logger

	generatorGrace time.Duration
}

// NewCompetitorService creates the orchestrator. generator may be nil, in which case
// the generation waves contribute nothing.
func NewCompetitorService(
	normalizer *NicheNormalizer,
	seeds *SeedSource,
	prober domain.SiteProber,
	generator domain.CandidateGenerator,
	log logger.Logger,
) *CompetitorService {
	if log == nil {
		log = logger.NewNop()
	}
	return &CompetitorService{
		normalizer: normalizer,
		seeds:      seeds,
		prober:     prober,
		generator:  generator,
		qualifier:  NewQualifier(prober),
		relevance:  NewRelevanceFilter(normalizer, prober),
		logger:     log,

		generatorGrace: GeneratorGrace,
	}
}

// discoveryRun is the per-call state; it is only touched from the orchestrator goroutine
type discoveryRun struct {
	niche     string
	canonical string
	opts      DiscoveryOptions
	verified  []domain.StoreRecord
	seen      map[string]bool
	timedOut  bool
	waves     []WaveStat
	log       logger.Logger
}

// stopped reports whether no further work should start
func (r *discoveryRun) stopped(ctx context.Context) bool {
	if len(r.verified) >= domain.MaxCompetitors {
		return true
	}
	if r.opts.Deadline.TimedOut() || ctx.Err() != nil {
		if !r.timedOut {
			r.log.Info("discovery deadline reached", logger.Int("verified", len(r.verified)))
		}
		r.timedOut = true
		return true
	}
	return false
}

// fresh drops candidates already seen in this run or belonging to excluded retailers,
// and marks the survivors as seen.
func (r *discoveryRun) fresh(candidates []domain.StoreRecord, excluded func(domain.StoreRecord) bool) []domain.StoreRecord {
	out := make([]domain.StoreRecord, 0, len(candidates))
	for _, c := range candidates {
		c = c.Normalized()
		key := c.Key()
		if key == "" || r.seen[key] || excluded(c) {
			continue
		}
		r.seen[key] = true
		out = append(out, c)
	}
	return out
}

func (r *discoveryRun) accept(store domain.StoreRecord) bool {
	if len(r.verified) >= domain.MaxCompetitors {
		return false
	}
	r.verified = append(r.verified, store)
	return true
}

// GetVerifiedCompetitors returns at most MaxCompetitors stores for a niche.
// It never fails: dead, unqualified or irrelevant candidates are dropped and an
// expired deadline yields whatever was verified so far.
func (s *CompetitorService) GetVerifiedCompetitors(ctx context.Context, niche string, opts DiscoveryOptions) *DiscoveryResult {
	res := s.normalizer.Resolve(niche)
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = DefaultMaxAttempts
	}

	run := &discoveryRun{
		niche:     niche,
		canonical: res.Canonical,
		opts:      opts,
		seen:      make(map[string]bool),
		log: s.logger.With(
			logger.String("niche", niche),
			logger.String("canonical", res.Canonical),
			logger.Bool("fast", opts.Fast),
		),
	}

	start := time.Now()
	if opts.Fast {
		s.fastLookup(ctx, run)
	} else {
		s.thoroughLookup(ctx, run)
	}

	run.log.Info("discovery finished",
		logger.Int("verified", len(run.verified)),
		logger.Bool("timed_out", run.timedOut),
		logger.Duration("elapsed", time.Since(start)),
	)

	return &DiscoveryResult{
		Niche:      niche,
		Normalized: res.Normalized,
		Canonical:  res.Canonical,
		Stores:     run.verified,
		TimedOut:   run.timedOut,
		Waves:      run.waves,
	}
}

// fastLookup returns curated stores for the niche and its variations, topped up by
// one unverified generator call.
func (s *CompetitorService) fastLookup(ctx context.Context, run *discoveryRun) {
	for _, store := range run.fresh(s.seeds.Wide(run.niche), s.seeds.Excluded) {
		if !run.accept(store) {
			return
		}
	}

	if len(run.verified) >= domain.MaxCompetitors || s.generator == nil || run.stopped(ctx) {
		return
	}

	generated := s.generate(ctx, run, run.niche)
	for _, store := range run.fresh(generated, s.seeds.Excluded) {
		if !run.accept(store) {
			return
		}
	}
}

// thoroughLookup runs the verification waves in order, returning as soon as the
// accumulator is full or the deadline has passed.
func (s *CompetitorService) thoroughLookup(ctx context.Context, run *discoveryRun) {
	mode := domain.ProbeThorough
	if run.opts.FastVerify {
		mode = domain.ProbeFast
	}

	waves := []struct {
		name string
		fn   func() WaveStat
	}{
		{"wide_seeds", func() WaveStat {
			return s.verifyWave(ctx, run, s.seeds.Wide(run.niche), wideBatchSize, mode, true)
		}},
		{"primary_seeds", func() WaveStat {
			return s.verifyWave(ctx, run, s.seeds.Known(run.canonical), primaryBatchSize, mode, true)
		}},
		{"generated_niche", func() WaveStat {
			return s.generatedNicheWave(ctx, run, mode)
		}},
		{"generated_variations", func() WaveStat {
			return s.variationWave(ctx, run, mode)
		}},
		{"generated_retries", func() WaveStat {
			return s.retryWave(ctx, run, mode)
		}},
		{"global_fallback", func() WaveStat {
			return s.verifyWave(ctx, run, s.seeds.Global(), globalBatchSize, domain.ProbeFast, true)
		}},
	}

	for _, wave := range waves {
		if run.stopped(ctx) {
			return
		}

		start := time.Now()
		run.log.Info("wave started",
			logger.String("wave", wave.name),
			logger.Int("verified", len(run.verified)),
			logger.Duration("remaining", run.opts.Deadline.Remaining()),
		)

		stat := wave.fn()
		stat.Name = wave.name
		stat.Elapsed = time.Since(start)
		run.waves = append(run.waves, stat)

		run.log.Info("wave finished",
			logger.String("wave", wave.name),
			logger.Int("candidates", stat.Candidates),
			logger.Int("accepted", stat.Accepted),
			logger.Int("verified", len(run.verified)),
			logger.Duration("elapsed", stat.Elapsed),
		)
	}
}

func (s *CompetitorService) generatedNicheWave(ctx context.Context, run *discoveryRun, mode domain.ProbeMode) WaveStat {
	if s.generator == nil {
		return WaveStat{}
	}
	return s.verifyWave(ctx, run, s.generate(ctx, run, run.niche), generatedBatchSize, mode, false)
}

// variationWave queries the generator for each niche variation, a few at a time
func (s *CompetitorService) variationWave(ctx context.Context, run *discoveryRun, mode domain.ProbeMode) WaveStat {
	var stat WaveStat
	if s.generator == nil {
		return stat
	}

	variations := s.variationQueries(run)
	for i := 0; i < len(variations); i += variationWaveWidth {
		if run.stopped(ctx) {
			break
		}
		end := min(i+variationWaveWidth, len(variations))
		candidates := s.generateAll(ctx, run, variations[i:end])
		stat.add(s.verifyWave(ctx, run, candidates, generatedBatchSize, mode, false))
	}
	return stat
}

// retryWave re-queries the niche and its first variations until the accumulator is
// full, the attempts run out or the deadline passes.
func (s *CompetitorService) retryWave(ctx context.Context, run *discoveryRun, mode domain.ProbeMode) WaveStat {
	var stat WaveStat
	if s.generator == nil {
		return stat
	}

	variations := s.variationQueries(run)
	if len(variations) > retryVariationLimit {
		variations = variations[:retryVariationLimit]
	}
	queries := append([]string{run.niche}, variations...)

	for attempt := 1; attempt <= run.opts.MaxAttempts; attempt++ {
		if run.stopped(ctx) {
			break
		}
		run.log.Debug("generator retry round", logger.Int("attempt", attempt))
		candidates := s.generateAll(ctx, run, queries)
		stat.add(s.verifyWave(ctx, run, candidates, generatedBatchSize, mode, false))
	}
	return stat
}

// variationQueries returns the variations of the canonical key, minus the raw niche itself
func (s *CompetitorService) variationQueries(run *discoveryRun) []string {
	normalized := s.normalizer.Normalize(run.niche)
	var out []string
	for _, v := range s.normalizer.ExpandVariations(run.canonical) {
		if v != normalized {
			out = append(out, v)
		}
	}
	return out
}

func (w *WaveStat) add(other WaveStat) {
	w.Candidates += other.Candidates
	w.Accepted += other.Accepted
}

// verifyWave filters candidates against the seen-set and verifies them in concurrent
// batches. Accepted stores are appended in candidate order.
func (s *CompetitorService) verifyWave(
	ctx context.Context,
	run *discoveryRun,
	candidates []domain.StoreRecord,
	batchSize int,
	mode domain.ProbeMode,
	trustedKnown bool,
) WaveStat {
	var stat WaveStat
	fresh := run.fresh(candidates, s.seeds.Excluded)
	stat.Candidates = len(fresh)

	for i := 0; i < len(fresh); i += batchSize {
		if run.stopped(ctx) {
			break
		}

		batch := fresh[i:min(i+batchSize, len(fresh))]
		results := make([]domain.VerificationResult, len(batch))

		var g errgroup.Group
		for j, store := range batch {
			j, store := j, store
			g.Go(func() error {
				results[j] = s.verify(ctx, run, store, mode, trustedKnown)
				return nil
			})
		}
		_ = g.Wait()

		for _, r := range results {
			if !r.Accepted() {
				run.log.Debug("candidate rejected",
					logger.String("domain", r.Store.Domain),
					logger.String("reason", r.Reason),
				)
				continue
			}
			if run.accept(r.Store) {
				stat.Accepted++
			}
		}
	}

	return stat
}

// verify runs the liveness, qualification and relevance gates for one candidate.
// A panic anywhere in the gates rejects the candidate.
func (s *CompetitorService) verify(
	ctx context.Context,
	run *discoveryRun,
	store domain.StoreRecord,
	mode domain.ProbeMode,
	trustedKnown bool,
) (result domain.VerificationResult) {
	result.Store = store

	defer func() {
		if rec := recover(); rec != nil {
			run.log.Error("candidate verification panicked",
				logger.String("domain", store.Domain),
				logger.String("panic", fmt.Sprint(rec)),
			)
			result = domain.VerificationResult{Store: store, Reason: "panic"}
		}
	}()

	result.Liveness = s.prober.Exists(ctx, store, mode)
	if !result.Liveness.Live() {
		result.Reason = "liveness: " + result.Liveness.Status.String()
		return result
	}

	result.Qualification = s.qualifier.Qualify(ctx, store, mode, trustedKnown)
	if !result.Qualification.Qualifies() {
		result.Reason = "qualification: " + result.Qualification.Reason
		return result
	}

	result.Relevant = s.relevance.IsRelevant(ctx, store, run.niche, false)
	if !result.Relevant {
		result.Reason = "relevance: no niche keyword in metadata"
	}
	return result
}

// generate calls the generator for one query. Errors and panics mean zero candidates.
// The call is cancelled shortly after the run's deadline.
func (s *CompetitorService) generate(ctx context.Context, run *discoveryRun, query string) (stores []domain.StoreRecord) {
	if at := run.opts.Deadline.At(); !at.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, at.Add(s.generatorGrace))
		defer cancel()
	}

	defer func() {
		if rec := recover(); rec != nil {
			run.log.Error("candidate generator panicked",
				logger.String("query", query),
				logger.String("panic", fmt.Sprint(rec)),
			)
			stores = nil
		}
	}()

	stores, err := s.generator.GenerateCompetitors(ctx, query)
	if err != nil {
		run.log.Warn("candidate generation failed", logger.String("query", query), logger.Error(err))
		return nil
	}
	return stores
}

// generateAll queries the generator for every query concurrently and concatenates
// the results in query order.
func (s *CompetitorService) generateAll(ctx context.Context, run *discoveryRun, queries []string) []domain.StoreRecord {
	results := make([][]domain.StoreRecord, len(queries))

	var g errgroup.Group
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			results[i] = s.generate(ctx, run, q)
			return nil
		})
	}
	_ = g.Wait()

	var all []domain.StoreRecord
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}
