package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sysforge/internal/artifact"
	"sysforge/internal/config"
	"sysforge/internal/llm"
	"sysforge/internal/plan"
	"sysforge/internal/usage"
)

// Session aggregates everything one run produces: the manifest, the
// accumulated artifacts, the paths that could not be resolved, and the
// running usage totals.
type Session struct {
	ID         string
	Manifest   []string
	Artifacts  *artifact.Set
	Unresolved []string
	Metrics    usage.Metrics
	StartedAt  time.Time
}

// Report summarizes a session for the operator.
type Report struct {
	Requested  int
	Produced   int
	Unresolved []string
	Metrics    usage.Metrics
	Cost       float64
	Elapsed    time.Duration
}

// Report computes the completeness report against the given pricing.
func (s *Session) Report(pricing usage.Pricing) Report {
	requested := make(map[string]bool, len(s.Manifest))
	for _, p := range s.Manifest {
		requested[p] = true
	}
	return Report{
		Requested:  len(requested),
		Produced:   s.Artifacts.Len(),
		Unresolved: s.Unresolved,
		Metrics:    s.Metrics,
		Cost:       pricing.Cost(s.Metrics),
		Elapsed:    time.Since(s.StartedAt),
	}
}

// Pipeline drives the staged workflow: plan the manifest, generate each
// group in chunks, then gap-fill whatever is still missing. Requests are
// strictly sequential; later phases depend on accumulated earlier results.
type Pipeline struct {
	planner *plan.Planner
	batch   *BatchGenerator
	gaps    *GapFiller
	mods    *Modifier
	log     *zap.Logger
}

// NewPipeline wires the pipeline phases against one completion client.
func NewPipeline(client llm.Client, gen config.GenerationConfig, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		planner: plan.NewPlanner(client, gen.ManifestMaxTokens),
		batch:   NewBatchGenerator(client, gen.ChunkSize, gen.BatchMaxTokens),
		gaps:    NewGapFiller(client, gen.GapFillMaxTokens),
		mods:    NewModifier(client, gen.IterateMaxTokens),
		log:     logger,
	}
}

// Generate runs the full pipeline for a specification. Only a manifest
// decode failure aborts; batch and gap-fill failures are absorbed and
// surfaced through Session.Unresolved.
func (p *Pipeline) Generate(ctx context.Context, spec string) (*Session, error) {
	session := &Session{
		ID:        uuid.NewString(),
		Artifacts: artifact.NewSet(),
		StartedAt: time.Now(),
	}

	// Phase 1: manifest.
	p.log.Info("planning manifest", zap.String("session", session.ID), zap.Int("spec_chars", len(spec)))
	planStart := time.Now()
	manifest, reply, err := p.planner.Plan(ctx, spec)
	session.Metrics.Record(reply.InputTokens, reply.OutputTokens, time.Since(planStart))
	if err != nil {
		return session, fmt.Errorf("manifest planning failed: %w", err)
	}
	session.Manifest = manifest
	p.log.Info("manifest planned", zap.Int("files", len(manifest)))

	// Phase 2: grouped batch generation. Deferred chunk paths need no
	// separate bookkeeping: they stay absent and show up in Missing below.
	for _, group := range plan.GroupManifest(manifest) {
		p.log.Info("generating group",
			zap.String("group", group.Name),
			zap.Int("files", len(group.Paths)))

		result, err := p.batch.GenerateGroup(ctx, spec, group.Paths)
		session.Metrics.Add(result.Metrics)
		if err != nil {
			return session, err
		}
		session.Artifacts.Merge(result.Files)

		if len(result.Deferred) > 0 {
			p.log.Warn("group chunk deferred to gap-fill",
				zap.String("group", group.Name),
				zap.Strings("paths", result.Deferred))
		}
	}

	// Phase 3: gap-fill everything still missing.
	missing := session.Artifacts.Missing(manifest)
	if len(missing) > 0 {
		p.log.Info("gap-filling missing files", zap.Int("count", len(missing)))
	}
	for _, path := range missing {
		content, m, err := p.gaps.Fill(ctx, spec, path, session.Artifacts.Paths())
		session.Metrics.Add(m)
		if err != nil {
			if ctx.Err() != nil {
				return session, fmt.Errorf("gap-fill canceled: %w", ctx.Err())
			}
			p.log.Warn("gap-fill failed, path unresolved", zap.String("path", path), zap.Error(err))
			session.Unresolved = append(session.Unresolved, path)
			continue
		}
		session.Artifacts.PutContent(path, content)
	}

	return session, nil
}

// Iterate runs the modification pipeline against an existing artifact set
// and returns a session whose manifest is the set's current paths.
func (p *Pipeline) Iterate(ctx context.Context, spec, modification string, existing *artifact.Set) (*Session, error) {
	session := &Session{
		ID:        uuid.NewString(),
		Artifacts: existing,
		StartedAt: time.Now(),
	}

	p.log.Info("iterating on existing system",
		zap.String("session", session.ID),
		zap.Int("files", existing.Len()),
		zap.String("modification", modification))

	result, err := p.mods.Apply(ctx, spec, modification, existing)
	session.Metrics.Add(result.Metrics)
	if err != nil {
		return session, err
	}

	session.Manifest = existing.Paths()
	p.log.Info("modification applied", zap.Strings("changed", result.Changed))
	return session, nil
}
