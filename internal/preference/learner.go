package preference

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain"
	"github.com/suawasthi/job-recom/internal/domain/feedback"
	"github.com/suawasthi/job-recom/internal/weights"
)

// Config tunes the preference learning state machine.
type Config struct {
	MinFeedback           int     // floor before any adjustment
	TrainThreshold        int     // feedback count that unlocks model training
	MaxFeedback           int     // most recent records used for training
	DefaultBoost          float64 // bootstrapping target multiplier
	BootstrapLearningRate float64
	CorrelationThreshold  float64
	SmoothingAlpha        float64
	MinAdjustment         float64
	MaxAdjustment         float64
}

func DefaultConfig() Config {
	return Config{
		MinFeedback:           3,
		TrainThreshold:        10,
		MaxFeedback:           1000,
		DefaultBoost:          1.2,
		BootstrapLearningRate: 0.3,
		CorrelationThreshold:  0.3,
		SmoothingAlpha:        0.1,
		MinAdjustment:         0.1,
		MaxAdjustment:         2.0,
	}
}

// Adjustment is the per-user weight correction learned from feedback.
type Adjustment struct {
	UserID        uuid.UUID           `json:"user_id"`
	Multipliers   weights.Multipliers `json:"multipliers"`
	FeedbackCount int                 `json:"feedback_count"`
	LearningRate  float64             `json:"learning_rate"`
	IsNew         bool                `json:"is_new"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NeutralAdjustment is the starting state for users without feedback.
func NeutralAdjustment(userID uuid.UUID) Adjustment {
	return Adjustment{
		UserID:       userID,
		Multipliers:  weights.Neutral(),
		LearningRate: 0.5,
		IsNew:        true,
	}
}

// Stats summarizes a user's feedback log.
type Stats struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Learner owns the per-user preference state machine: new users stay
// neutral, light users get ratio or correlation based corrections, and users
// past the training threshold get a fitted model whose feature importances
// feed back into the weight multipliers.
type Learner struct {
	cfg         Config
	feedback    FeedbackStore
	jobs        JobStore
	adjustments AdjustmentStore
	artifacts   ArtifactStore
	logger      *log.Logger
}

func NewLearner(cfg Config, fb FeedbackStore, jobs JobStore, adj AdjustmentStore, artifacts ArtifactStore, logger *log.Logger) *Learner {
	return &Learner{
		cfg:         cfg,
		feedback:    fb,
		jobs:        jobs,
		adjustments: adj,
		artifacts:   artifacts,
		logger:      logger,
	}
}

// RecordFeedback validates and appends one feedback record to the log.
func (l *Learner) RecordFeedback(ctx context.Context, rec feedback.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	return l.feedback.Append(ctx, rec)
}

// Stats counts a user's feedback by polarity. "Maybe later" is tracked as
// neutral here even though training treats it as a negative label.
func (l *Learner) Stats(ctx context.Context, userID uuid.UUID) (Stats, error) {
	recs, err := l.feedback.ListByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	var s Stats
	for _, r := range recs {
		s.Total++
		switch {
		case r.IsPositive():
			s.Positive++
		case r.Kind == feedback.KindMaybeLater:
			s.Neutral++
		default:
			s.Negative++
		}
	}
	return s, nil
}

// Adjustments returns the user's current multipliers, neutral when none have
// been learned yet.
func (l *Learner) Adjustments(ctx context.Context, userID uuid.UUID) (weights.Multipliers, error) {
	adj, ok, err := l.adjustments.Get(ctx, userID)
	if err != nil {
		return weights.Neutral(), err
	}
	if !ok {
		return weights.Neutral(), nil
	}
	return adj.Multipliers, nil
}

// Train fits a fresh model from the user's feedback log and persists the
// artifact. It fails with ErrInsufficientData below the training threshold
// or when only one label class is present, and never touches the user's
// adjustment record.
func (l *Learner) Train(ctx context.Context, userID uuid.UUID) (Model, error) {
	X, y, err := l.dataset(ctx, userID)
	if err != nil {
		return Model{}, err
	}
	if len(X) < l.cfg.TrainThreshold {
		return Model{}, fmt.Errorf("%w: %d labeled samples, need %d", domain.ErrInsufficientData, len(X), l.cfg.TrainThreshold)
	}
	if !hasBothClasses(y) {
		return Model{}, fmt.Errorf("%w: only one feedback class present", domain.ErrInsufficientData)
	}

	rng := rand.New(rand.NewSource(42))
	trainX, trainY, testX, testY := stratifiedSplit(X, y, 0.2, rng)

	scaler := FitScaler(trainX)
	scaledTrain := scaler.Transform(trainX)
	scaledTest := scaler.Transform(testX)

	clf := FitLogistic(scaledTrain, trainY)
	metrics := evaluate(clf, scaledTest, testY)
	metrics.CVMean, metrics.CVStd = crossValidate(scaledTrain, trainY, 3, rng)

	model := Model{
		UserID:       userID,
		FeatureNames: FeatureNames(),
		Classifier:   clf,
		Scaler:       scaler,
		Metrics:      metrics,
		TrainedAt:    time.Now().UTC(),
		SampleCount:  len(X),
	}
	if err := model.validate(); err != nil {
		return Model{}, err
	}
	if err := l.artifacts.Save(ctx, model); err != nil {
		return Model{}, fmt.Errorf("saving model for user %s: %w", userID, err)
	}
	l.logger.Printf("trained model for user %s: %d samples, accuracy %.3f, cv %.3f±%.3f",
		userID, len(X), metrics.Accuracy, metrics.CVMean, metrics.CVStd)
	return model, nil
}

// UpdateAdjustments recomputes the user's weight multipliers with the best
// strategy the data allows, smooths them toward neutral, and persists the
// result.
func (l *Learner) UpdateAdjustments(ctx context.Context, userID uuid.UUID) (Adjustment, error) {
	stats, err := l.Stats(ctx, userID)
	if err != nil {
		return Adjustment{}, err
	}

	adj, ok, err := l.adjustments.Get(ctx, userID)
	if err != nil {
		return Adjustment{}, err
	}
	if !ok {
		adj = NeutralAdjustment(userID)
	}
	adj.FeedbackCount = stats.Total
	adj.IsNew = stats.Total < l.cfg.MinFeedback

	switch {
	case stats.Total < l.cfg.MinFeedback:
		adj.Multipliers = weights.Neutral()
	case stats.Total < l.cfg.TrainThreshold:
		adj.Multipliers = l.bootstrapMultipliers(stats)
	default:
		adj.Multipliers = l.trainedMultipliers(ctx, userID, stats)
	}

	adj.Multipliers = l.smooth(adj.Multipliers)
	adj.LearningRate = learningRate(stats.Total)
	adj.UpdatedAt = time.Now().UTC()

	if err := l.adjustments.Put(ctx, adj); err != nil {
		return Adjustment{}, err
	}
	return adj, nil
}

// bootstrapMultipliers applies the coarse ratio strategy used before a model
// exists.
func (l *Learner) bootstrapMultipliers(stats Stats) weights.Multipliers {
	m := weights.Neutral()
	if stats.Total == 0 {
		return m
	}
	posRatio := float64(stats.Positive) / float64(stats.Total)
	negRatio := float64(stats.Negative+stats.Neutral) / float64(stats.Total)
	step := (l.cfg.DefaultBoost - 1.0) * l.cfg.BootstrapLearningRate

	switch {
	case posRatio > 0.6:
		m.Skill = 1.0 + step
		m.Location = 1.0 + step
	case negRatio > 0.6:
		m.Skill = 1.0 - step
		m.Location = 1.0 - step
	}
	return m
}

// trainedMultipliers converts a persisted model's feature importances into
// multipliers, falling back to statistical correlation when the model is
// missing or no longer matches the feature vocabulary.
func (l *Learner) trainedMultipliers(ctx context.Context, userID uuid.UUID, stats Stats) weights.Multipliers {
	model, ok, err := l.artifacts.Load(ctx, userID)
	if err != nil {
		l.logger.Printf("loading model for user %s failed, falling back to correlation: %v", userID, err)
		return l.correlationMultipliers(ctx, userID, stats)
	}
	if !ok {
		return l.correlationMultipliers(ctx, userID, stats)
	}
	if err := model.validate(); err != nil {
		if errors.Is(err, domain.ErrModelIntegrity) {
			l.logger.Printf("model for user %s is stale, resetting to correlation strategy: %v", userID, err)
		}
		return l.correlationMultipliers(ctx, userID, stats)
	}

	cats := categories()
	sums := make(map[featureCategory]float64)
	counts := make(map[featureCategory]int)
	for i, c := range model.Classifier.Coefficients {
		cat := cats[i]
		if cat == categoryNone {
			continue
		}
		sums[cat] += math.Abs(c)
		counts[cat]++
	}

	m := weights.Neutral()
	if n := counts[categorySkill]; n > 0 {
		m.Skill = l.importanceToMultiplier(sums[categorySkill] / float64(n))
	}
	if n := counts[categoryLocation]; n > 0 {
		m.Location = l.importanceToMultiplier(sums[categoryLocation] / float64(n))
	}
	if n := counts[categorySalary]; n > 0 {
		m.Salary = l.importanceToMultiplier(sums[categorySalary] / float64(n))
	}
	if n := counts[categoryExperience]; n > 0 {
		m.Experience = l.importanceToMultiplier(sums[categoryExperience] / float64(n))
	}
	return m
}

// correlationMultipliers derives multipliers from per-category correlation
// between job features and the feedback label.
func (l *Learner) correlationMultipliers(ctx context.Context, userID uuid.UUID, stats Stats) weights.Multipliers {
	m := weights.Neutral()

	X, y, err := l.dataset(ctx, userID)
	if err != nil || len(X) < 5 {
		return l.bootstrapMultipliers(stats)
	}

	labels := make([]float64, len(y))
	for i, label := range y {
		labels[i] = float64(label)
	}

	cats := categories()
	catCorr := make(map[featureCategory]float64)
	catCount := make(map[featureCategory]int)
	for j := 0; j < len(cats); j++ {
		if cats[j] == categoryNone {
			continue
		}
		column := make([]float64, len(X))
		for i := range X {
			column[i] = X[i][j]
		}
		corr := pearson(column, labels)
		if math.Abs(corr) > 0.1 {
			catCorr[cats[j]] += corr
			catCount[cats[j]]++
		}
	}

	apply := func(target *float64, cat featureCategory) {
		if catCount[cat] == 0 {
			return
		}
		mean := catCorr[cat] / float64(catCount[cat])
		if math.Abs(mean) <= l.cfg.CorrelationThreshold {
			return
		}
		*target = l.correlationToMultiplier(mean)
	}
	apply(&m.Skill, categorySkill)
	apply(&m.Location, categoryLocation)
	apply(&m.Salary, categorySalary)
	apply(&m.Experience, categoryExperience)
	return m
}

// dataset renders the user's feedback log into labeled feature vectors.
// Records whose posting cannot be resolved are skipped.
func (l *Learner) dataset(ctx context.Context, userID uuid.UUID) ([][]float64, []int, error) {
	recs, err := l.feedback.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if len(recs) > l.cfg.MaxFeedback {
		recs = recs[len(recs)-l.cfg.MaxFeedback:]
	}

	var X [][]float64
	var y []int
	for _, r := range recs {
		lab, ok := label(r)
		if !ok {
			continue
		}
		posting, err := l.jobs.Get(ctx, r.JobID)
		if err != nil {
			l.logger.Printf("skipping feedback %s: job %s: %v", r.ID, r.JobID, err)
			continue
		}
		X = append(X, Features(posting))
		y = append(y, lab)
	}
	return X, y, nil
}

// label maps a feedback record to a binary training label. Bookmarks and
// relevance votes are positive; hides, dismissals, and "maybe later" are
// negative; anything else is excluded.
func label(r feedback.Record) (int, bool) {
	switch {
	case r.IsPositive():
		return 1, true
	case r.IsNegative():
		return 0, true
	default:
		return 0, false
	}
}

func (l *Learner) importanceToMultiplier(importance float64) float64 {
	v := 1.0 + importance*(l.cfg.MaxAdjustment-1.0)
	return clampAdjustment(v, l.cfg.MinAdjustment, l.cfg.MaxAdjustment)
}

func (l *Learner) correlationToMultiplier(corr float64) float64 {
	var v float64
	if corr > 0 {
		v = 1.0 + corr*(l.cfg.MaxAdjustment-1.0)
	} else {
		v = 1.0 + corr*(1.0-l.cfg.MinAdjustment)
	}
	return clampAdjustment(v, l.cfg.MinAdjustment, l.cfg.MaxAdjustment)
}

// smooth pulls every multiplier toward 1.0 so a single session cannot swing
// the ranking.
func (l *Learner) smooth(m weights.Multipliers) weights.Multipliers {
	a := l.cfg.SmoothingAlpha
	s := func(v float64) float64 { return v*(1-a) + 1.0*a }
	return weights.Multipliers{
		Skill:        s(m.Skill),
		Experience:   s(m.Experience),
		Location:     s(m.Location),
		Salary:       s(m.Salary),
		Semantic:     s(m.Semantic),
		MarketDemand: s(m.MarketDemand),
		CareerGrowth: s(m.CareerGrowth),
	}
}

func learningRate(feedbackCount int) float64 {
	switch {
	case feedbackCount < 10:
		return 0.5
	case feedbackCount < 50:
		return 0.3
	default:
		return 0.1
	}
}

func clampAdjustment(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// stratifiedSplit holds out testFrac of each class, deterministic under the
// given rng.
func stratifiedSplit(X [][]float64, y []int, testFrac float64, rng *rand.Rand) (trainX [][]float64, trainY []int, testX [][]float64, testY []int) {
	var posIdx, negIdx []int
	for i, label := range y {
		if label == 1 {
			posIdx = append(posIdx, i)
		} else {
			negIdx = append(negIdx, i)
		}
	}
	rng.Shuffle(len(posIdx), func(i, j int) { posIdx[i], posIdx[j] = posIdx[j], posIdx[i] })
	rng.Shuffle(len(negIdx), func(i, j int) { negIdx[i], negIdx[j] = negIdx[j], negIdx[i] })

	split := func(idx []int) (test, train []int) {
		n := int(math.Round(float64(len(idx)) * testFrac))
		if n < 1 && len(idx) > 1 {
			n = 1
		}
		return idx[:n], idx[n:]
	}
	posTest, posTrain := split(posIdx)
	negTest, negTrain := split(negIdx)

	for _, i := range append(posTrain, negTrain...) {
		trainX = append(trainX, X[i])
		trainY = append(trainY, y[i])
	}
	for _, i := range append(posTest, negTest...) {
		testX = append(testX, X[i])
		testY = append(testY, y[i])
	}
	return trainX, trainY, testX, testY
}

// pearson is the sample correlation coefficient, 0 for degenerate inputs.
func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}
