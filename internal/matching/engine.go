package matching

import (
	"context"
	"log"
	"sort"
	"sync/atomic"
	"time"

	"github.com/suawasthi/job-recom/internal/domain/candidate"
	"github.com/suawasthi/job-recom/internal/domain/job"
	"github.com/suawasthi/job-recom/internal/domain/match"
	"github.com/suawasthi/job-recom/internal/ontology"
	"github.com/suawasthi/job-recom/internal/scoring"
	"github.com/suawasthi/job-recom/internal/weights"
)

// SemanticProvider supplies embedding-based similarity signals. Both methods
// may fail when the embedding backend is degraded; the engine treats that as
// a soft failure and scores without the semantic signal.
type SemanticProvider interface {
	SkillSimilarities(ctx context.Context, freeText string, requiredSkills []string) (map[string]float64, error)
	JobFit(ctx context.Context, cand candidate.Profile, posting job.Posting) (float64, error)
}

// Options tunes a batch match.
type Options struct {
	Preferences weights.Preferences
	Learned     weights.Multipliers
	Market      weights.MarketContext
	MinScore    float64
	TopK        int
}

// Engine computes match results for (candidate, job) pairs. It is stateless
// apart from the warn-once flag and safe for concurrent use.
type Engine struct {
	params   scoring.Params
	graph    *ontology.Graph
	calc     *weights.Calculator
	semantic SemanticProvider
	logger   *log.Logger

	semanticWarned atomic.Bool
}

// NewEngine wires a scoring engine. semantic may be nil, in which case the
// semantic sub-score is always zero.
func NewEngine(graph *ontology.Graph, calc *weights.Calculator, semantic SemanticProvider, logger *log.Logger) *Engine {
	return &Engine{
		params:   scoring.DefaultParams(),
		graph:    graph,
		calc:     calc,
		semantic: semantic,
		logger:   logger,
	}
}

// SetParams overrides the scoring tuning. Call before the engine starts
// serving matches; it is not safe concurrently with Match.
func (e *Engine) SetParams(p scoring.Params) {
	e.params = p
}

// Match scores one candidate against one posting under the given weight
// configuration. Active-status filtering happens upstream; Match does not
// re-check it.
func (e *Engine) Match(ctx context.Context, cand candidate.Profile, posting job.Posting, cfg weights.Config) (match.Result, error) {
	if err := cand.Validate(); err != nil {
		return match.Result{}, err
	}
	if err := posting.Validate(); err != nil {
		return match.Result{}, err
	}

	var semSims map[string]float64
	jobFit := 0.0
	if e.semantic != nil {
		sims, err := e.semantic.SkillSimilarities(ctx, cand.Narrative, posting.RequiredSkills)
		if err != nil {
			e.warnSemantic(err)
		} else {
			semSims = sims
		}
		fit, err := e.semantic.JobFit(ctx, cand, posting)
		if err != nil {
			e.warnSemantic(err)
		} else {
			jobFit = fit
		}
	}

	skill := scoring.Skill(e.params, e.graph, cand.Skills, posting.RequiredSkills, posting.PreferredSkills, semSims)
	components := match.ComponentScores{
		Skill:        skill.Score,
		Experience:   scoring.Experience(e.params, cand.ExperienceYears, posting.MinExperienceYears, posting.MaxExperienceYears),
		Location:     scoring.Location(e.params, cand.Location, posting.Location, posting.RemotePolicy),
		Salary:       scoring.Salary(cand.SalaryExpectation, posting.MinSalary, posting.MaxSalary),
		CareerGrowth: scoring.CareerGrowth(e.params, cand.CurrentRole, posting.Title, cand.CareerLevel, cand.ExperienceYears, posting.MinExperienceYears, posting.MaxExperienceYears),
		MarketDemand: scoring.MarketDemand(posting.Title, posting.Location, posting.RequiredSkills),
	}

	overall := components.Skill*cfg.Skill +
		components.Experience*cfg.Experience +
		components.Location*cfg.Location +
		components.Salary*cfg.Salary +
		components.CareerGrowth*cfg.CareerGrowth +
		components.MarketDemand*cfg.MarketDemand +
		jobFit*cfg.Semantic

	transferable := make([]string, 0, len(skill.TransferableMatches))
	for s := range skill.TransferableMatches {
		transferable = append(transferable, s)
	}
	sort.Strings(transferable)

	res := match.Result{
		CandidateID:        cand.ID,
		JobID:              posting.ID,
		OverallScore:       overall,
		ConfidenceScore:    confidence(skill, components),
		Components:         components,
		MatchedSkills:      skill.ExactMatches,
		MissingSkills:      skill.MissingSkills,
		TransferableSkills: transferable,
		ComputedAt:         time.Now().UTC(),
	}
	res.Reasons, res.Concerns = explain(res)
	return res, nil
}

// MatchMany scores a candidate against a batch of postings. Per-posting
// scoring errors skip that posting rather than failing the batch. Results
// below opts.MinScore are dropped, the rest come back sorted by overall
// score, at most opts.TopK of them (0 means unlimited).
func (e *Engine) MatchMany(ctx context.Context, cand candidate.Profile, postings []job.Posting, opts Options) ([]match.Result, error) {
	if err := cand.Validate(); err != nil {
		return nil, err
	}

	results := make([]match.Result, 0, len(postings))
	for _, p := range postings {
		cfg := e.calc.Compute(cand, p, opts.Preferences, opts.Learned, opts.Market)
		res, err := e.Match(ctx, cand, p, cfg)
		if err != nil {
			e.logger.Printf("skipping job %s: %v", p.ID, err)
			continue
		}
		if res.OverallScore < opts.MinScore {
			continue
		}
		results = append(results, res)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
	if opts.TopK > 0 && len(results) > opts.TopK {
		results = results[:opts.TopK]
	}
	return results, nil
}

// confidence averages four stability signals: the exact-skill ratio, a step
// function of the experience score, the location score, and a step function
// of market demand.
func confidence(skill scoring.SkillBreakdown, c match.ComponentScores) float64 {
	required := len(skill.RequiredSkills)
	if required == 0 {
		required = 1
	}
	exactRatio := float64(len(skill.ExactMatches)) / float64(required)

	expFactor := 0.5
	if c.Experience > 0.7 {
		expFactor = 1.0
	}
	demandFactor := 0.7
	if c.MarketDemand > 0.7 {
		demandFactor = 1.0
	}

	return (exactRatio + expFactor + c.Location + demandFactor) / 4.0
}

func (e *Engine) warnSemantic(err error) {
	if e.semanticWarned.CompareAndSwap(false, true) {
		e.logger.Printf("semantic scoring degraded, continuing without it: %v", err)
	}
}
