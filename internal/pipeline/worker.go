package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/antchfx/xpath"

	"github.com/KWARC/llamapun/internal/ams"
	"github.com/KWARC/llamapun/internal/annotate"
	"github.com/KWARC/llamapun/internal/c14n"
	"github.com/KWARC/llamapun/internal/dnm"
	"github.com/KWARC/llamapun/internal/doctree"
	"github.com/KWARC/llamapun/internal/index"
	"github.com/KWARC/llamapun/internal/parser"
	"github.com/KWARC/llamapun/internal/pattern"
	"github.com/KWARC/llamapun/internal/segment"
	"github.com/KWARC/llamapun/internal/sink"
)

// Settings are the per-document processing parameters shared by all
// workers.
type Settings struct {
	// Rules are matched when a job names none. Sentence rules (seq and
	// phrase) run over every sentence; math and mtext rules run over every
	// harvested formula.
	Rules        []string
	DNM          dnm.Options
	Segment      segment.Config
	C14N         c14n.Options
	FormulaXPath string
	Parser       parser.Config

	MaxConcurrentAnnotate int
	MaxConcurrentPublish  int
}

// DefaultSettings returns the math profile with blake3 hashing over every
// MathML math element.
func DefaultSettings() Settings {
	return Settings{
		DNM:                   dnm.MathOptions(),
		Segment:               segment.DefaultConfig(),
		C14N:                  c14n.DefaultOptions(),
		FormulaXPath:          "//*[local-name()='math']",
		Parser:                parser.DefaultConfig(),
		MaxConcurrentAnnotate: 8,
		MaxConcurrentPublish:  10,
	}
}

// Worker processes a single document job.
type Worker struct {
	matcher   *pattern.Matcher
	annotator annotate.Annotator
	index     *index.Index
	sink      *sink.Client
	log       *slog.Logger
	set       Settings
	formulas  *xpath.Expr
	backoff   func(int) time.Duration
}

// NewWorker wires a worker. A nil sink disables publishing; a nil index
// disables deduplication and formula indexing.
func NewWorker(m *pattern.Matcher, a annotate.Annotator, idx *index.Index, sk *sink.Client, log *slog.Logger, set Settings) (*Worker, error) {
	if set.FormulaXPath == "" {
		set.FormulaXPath = DefaultSettings().FormulaXPath
	}
	expr, err := xpath.Compile(set.FormulaXPath)
	if err != nil {
		return nil, fmt.Errorf("formula xpath %q: %w", set.FormulaXPath, err)
	}
	if err := set.DNM.Validate(); err != nil {
		return nil, err
	}
	if err := set.C14N.Validate(); err != nil {
		return nil, err
	}
	if set.MaxConcurrentAnnotate <= 0 {
		set.MaxConcurrentAnnotate = 1
	}
	for _, name := range set.Rules {
		if _, ok := m.Registry().Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %q", pattern.ErrUnknownRule, name)
		}
	}
	return &Worker{
		matcher:   m,
		annotator: a,
		index:     idx,
		sink:      sk,
		log:       log,
		set:       set,
		formulas:  expr,
		backoff:   Backoff,
	}, nil
}

// Matcher returns the matcher w evaluates rules with.
func (w *Worker) Matcher() *pattern.Matcher { return w.matcher }

// Index returns the formula index, or nil.
func (w *Worker) Index() *index.Index { return w.index }

// ruleSet splits rule names by the input they apply to. Without names,
// every seq and phrase rule of the registry is used.
func (w *Worker) ruleSet(names []string) (sentence, math []string, err error) {
	reg := w.matcher.Registry()
	if len(names) == 0 {
		names = w.set.Rules
	}
	if len(names) == 0 {
		for _, r := range reg.Rules() {
			if r.Kind == pattern.KindSeq || r.Kind == pattern.KindPhrase {
				sentence = append(sentence, r.Name)
			}
		}
		return sentence, nil, nil
	}
	for _, name := range names {
		r, ok := reg.Lookup(name)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", pattern.ErrUnknownRule, name)
		}
		switch r.Kind {
		case pattern.KindSeq, pattern.KindPhrase:
			sentence = append(sentence, name)
		case pattern.KindMath, pattern.KindMText:
			math = append(math, name)
		default:
			return nil, nil, fmt.Errorf("%w: %s rule %q cannot run over a document", pattern.ErrWrongKind, r.Kind, name)
		}
	}
	return sentence, math, nil
}

// Process runs the full pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	sentenceRules, mathRules, err := w.ruleSet(job.Rules)
	if err != nil {
		log.Error("bad rule selection", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "queued")
		return
	}

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFileConfig(job.Filename, w.set.Parser)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	tree, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title != "" {
		tree.Title = job.Title
	}

	// Phase 1.5: Dedup check
	hash := ContentHashHex([]byte(tree.TextContent(tree.Root())))
	job.SetContentHash(hash)
	if w.index != nil {
		if prev, seen, err := w.index.MarkDocument(hash, job.DocID); err != nil {
			log.Warn("dedup check failed, proceeding", "error", err)
		} else if seen {
			log.Info("duplicate document, skipping", "existing_doc_id", prev)
			job.MarkDuplicate(prev)
			job.SetStatus(StatusDupSkipped, "dedup")
			return
		}
	}
	fail := func(phase string) {
		job.SetStatus(StatusFailed, phase)
		if w.index == nil {
			return
		}
		if err := w.index.ForgetDocument(hash); err != nil {
			log.Warn("could not release content hash", "error", err)
		}
	}

	// Phase 2: Normalize and segment
	job.SetStatus(StatusNormalizing, "normalizing")
	d, err := dnm.Build(tree, w.set.DNM)
	if err != nil {
		log.Error("normalization failed", "error", err)
		job.AddError(fmt.Sprintf("normalize: %s", err))
		fail("normalizing")
		return
	}
	job.SetDocument(d)

	paras := segment.Paragraphs(d, w.set.Segment)
	var (
		sentences []dnm.Range
		envs      []ams.Env
	)
	for _, p := range paras {
		for _, r := range segment.Sentences(p.Range, w.set.Segment) {
			sentences = append(sentences, r)
			envs = append(envs, p.Env)
		}
	}
	job.SetSegments(len(paras), len(sentences))
	log.Info("segmented document", "paragraphs", len(paras), "sentences", len(sentences))

	formulaNodes := doctree.SelectCompiled(tree, tree.Root(), w.formulas)
	if len(sentences) == 0 && len(formulaNodes) == 0 {
		log.Warn("no content produced")
		job.AddError("no extractable content")
		fail("normalizing")
		return
	}

	// Phase 3: Annotate and match sentences with bounded concurrency.
	job.SetStatus(StatusAnnotating, "annotating")
	type sentenceResult struct {
		matches []MatchResult
		err     error
		idx     int
	}
	results := make(chan sentenceResult, len(sentences))
	sem := make(chan struct{}, w.set.MaxConcurrentAnnotate)

	for i, r := range sentences {
		sem <- struct{}{}
		go func(i int, r dnm.Range) {
			defer func() { <-sem }()
			defer func() {
				if p := recover(); p != nil {
					results <- sentenceResult{err: fmt.Errorf("panic: %v", p), idx: i}
				}
			}()
			matches, err := w.sentence(ctx, log, d, r, i, sentenceRules)
			results <- sentenceResult{matches: matches, err: err, idx: i}
		}(i, r)
	}

	perSentence := make([][]MatchResult, len(sentences))
	hadErrors := false
	failedSentences := 0
	for range sentences {
		r := <-results
		job.IncrSentencesProcessed()
		if r.err != nil {
			log.Error("sentence failed", "sentence", r.idx, "error", r.err)
			job.AddError(fmt.Sprintf("sentence %d: %s", r.idx, r.err))
			hadErrors = true
			failedSentences++
			continue
		}
		perSentence[r.idx] = r.matches
		job.AddMatches(len(r.matches))
	}
	res := &Results{
		DocID:     job.DocID,
		AMSMarkup: ams.HasMarkup(tree),
		Matches:   []MatchResult{},
		Formulas:  []FormulaResult{},
	}
	for i, ms := range perSentence {
		for _, m := range ms {
			m.Env = envs[i]
			res.Matches = append(res.Matches, m)
		}
	}
	log.Info("matching complete", "matches", len(res.Matches), "errors", hadErrors)

	if len(sentences) > 0 && failedSentences == len(sentences) && len(formulaNodes) == 0 {
		fail("annotating")
		return
	}

	// Phase 4: Canonicalize, hash and index formulas.
	job.SetStatus(StatusHashing, "hashing")
	harvested, warnings, err := c14n.Harvest(tree, formulaNodes, w.set.C14N)
	if err != nil {
		log.Error("hashing failed", "error", err)
		job.AddError(fmt.Sprintf("hash: %s", err))
		hadErrors = true
	}
	for _, me := range warnings {
		job.AddWarning(me.Error())
	}
	indexed := 0
	for _, f := range harvested {
		fr := FormulaResult{
			Digest:  f.Digest.String(),
			Address: nodeAddress(d, f.Node),
			Text:    nodeText(tree, f.Node),
		}
		if w.index != nil {
			entry := index.FormulaEntry{Digest: f.Digest, DocID: job.DocID, Address: fr.Address, Text: fr.Text}
			if err := w.index.PutFormula(entry, f.Canonical); err != nil {
				log.Error("index write failed", "address", fr.Address, "error", err)
				job.AddError(fmt.Sprintf("index %s: %s", fr.Address, err))
				hadErrors = true
			} else {
				indexed++
			}
			if n, err := w.index.CountFormula(f.Digest); err == nil {
				fr.Occurrences = n
			}
		}
		res.Formulas = append(res.Formulas, fr)

		for _, rule := range mathRules {
			seq, err := w.matcher.MatchMath(rule, tree, f.Node)
			if err != nil {
				if !errors.Is(err, pattern.ErrWrongKind) {
					job.AddWarning(fmt.Sprintf("rule %s at %s: %s", rule, fr.Address, err))
				}
				continue
			}
			for m := range seq {
				res.Matches = append(res.Matches, matchResult(d, m, -1))
				job.AddMatches(1)
			}
		}
	}
	job.AddFormulas(len(harvested), indexed)
	log.Info("formulas indexed", "harvested", len(harvested), "indexed", indexed, "malformed", len(warnings))
	job.SetResults(res)

	// Phase 5: Publish.
	if w.sink != nil {
		job.SetStatus(StatusPublishing, "publishing")
		stored, err := w.sink.PublishDocument(ctx, w.sinkDocument(job, tree, res), w.set.MaxConcurrentPublish)
		if err != nil {
			log.Error("publish failed", "stored", stored, "error", err)
			job.AddError(fmt.Sprintf("publish: %s", err))
			hadErrors = true
		} else {
			log.Info("publish complete", "stored", stored)
		}
	}

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

// sentence tags one sentence, retrying transient annotator failures, and
// runs every sentence rule over it.
func (w *Worker) sentence(ctx context.Context, log *slog.Logger, d *dnm.DNM, r dnm.Range, idx int, rules []string) ([]MatchResult, error) {
	s, err := retry(ctx, w.backoff, func() (*pattern.Sentence, error) {
		return annotate.Tag(ctx, w.annotator, r)
	}, func(attempt int, err error) {
		log.Warn("retryable annotation error", "sentence", idx, "attempt", attempt, "error", err)
	})
	if err != nil {
		return nil, err
	}
	return w.match(d, s, idx, rules)
}

func (w *Worker) match(d *dnm.DNM, s *pattern.Sentence, idx int, rules []string) ([]MatchResult, error) {
	var out []MatchResult
	for _, rule := range rules {
		seq, err := w.matcher.Match(rule, s)
		if err != nil {
			return out, fmt.Errorf("rule %s: %w", rule, err)
		}
		for m := range seq {
			out = append(out, matchResult(d, m, idx))
		}
	}
	return out, nil
}

func (w *Worker) sinkDocument(job *Job, tree *doctree.Tree, res *Results) sink.Document {
	doc := sink.Document{
		ID:          job.DocID,
		Filename:    job.Filename,
		Title:       tree.Title,
		ContentHash: job.Snapshot().ContentHash,
		CreatedAt:   job.CreatedAt.Format(time.RFC3339),
	}
	for _, m := range res.Matches {
		doc.Matches = append(doc.Matches, sink.Match{Rule: m.Rule, Value: m})
	}
	byDigest := map[string]int{}
	for _, f := range res.Formulas {
		i, ok := byDigest[f.Digest]
		if !ok {
			i = len(doc.Formulas)
			byDigest[f.Digest] = i
			doc.Formulas = append(doc.Formulas, sink.Formula{Digest: f.Digest})
		}
		doc.Formulas[i].Addresses = append(doc.Formulas[i].Addresses, f.Address)
	}
	return doc
}

// MatchText runs rules over a plain utterance without touching the index
// or the sink. It backs ad-hoc matching requests.
func (w *Worker) MatchText(ctx context.Context, text string, rules []string) ([]MatchResult, error) {
	sentenceRules, _, err := w.ruleSet(rules)
	if err != nil {
		return nil, err
	}
	d, err := dnm.FromText(text, w.set.DNM)
	if err != nil {
		return nil, err
	}
	out := []MatchResult{}
	for i, r := range segment.Sentences(d.Full().Trim(), w.set.Segment) {
		s, err := annotate.Tag(ctx, w.annotator, r)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i, err)
		}
		ms, err := w.match(d, s, i, sentenceRules)
		if err != nil {
			return nil, err
		}
		out = append(out, ms...)
	}
	return out, nil
}
