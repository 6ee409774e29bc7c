// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package pipeline orchestrates one question-answering run: keyword
// extraction, topic search, document fetch, chunking, hybrid retrieval,
// spell correction, and grounded answer synthesis.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/wikiq/ai"
	"github.com/poiesic/wikiq/answer"
	"github.com/poiesic/wikiq/chunk"
	"github.com/poiesic/wikiq/core"
	"github.com/poiesic/wikiq/retrieve"
	"github.com/poiesic/wikiq/spell"
	"github.com/poiesic/wikiq/wiki"
)

// Pipeline answers natural-language questions grounded in Wikipedia
// articles. One Pipeline is bound to one validated settings snapshot;
// construct a fresh one when settings change.
type Pipeline struct {
	settings    core.Settings
	wiki        *wiki.Client
	retriever   *retrieve.Retriever
	synthesizer *answer.Synthesizer
	log         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// NewPipeline wires the pipeline stages together. Settings are validated
// here so an invalid configuration is rejected before any request runs.
func NewPipeline(settings core.Settings, wikiClient *wiki.Client, retriever *retrieve.Retriever, generator ai.Generator, opts ...Option) (*Pipeline, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if wikiClient == nil {
		return nil, ErrWikiClientRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}

	synthesizer, err := answer.NewSynthesizer(generator,
		answer.WithSourceURL(wikiClient.ArticleURL))
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		settings:    settings,
		wiki:        wikiClient,
		retriever:   retriever,
		synthesizer: synthesizer,
		log:         slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Answer runs the full pipeline for one query. A non-empty topicHint
// replaces keyword extraction: its whitespace-separated words are used as
// the search terms verbatim.
//
// A failed topic search degrades to answering without context rather than
// failing the request; the grounded prompt then makes the model admit it
// does not know. Index failures abort, as do generative API failures.
func (p *Pipeline) Answer(ctx context.Context, query, topicHint string) (*core.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}

	keywords := TopicKeywords(topicHint)
	if len(keywords) == 0 {
		keywords = ExtractKeywords(query)
	}

	keys, err := p.wiki.SearchTopics(ctx, keywords, p.settings.ResultsPerSearch)
	if err != nil {
		p.log.Warn("topic search failed, answering without context", "err", err)
		keys = nil
	}

	var sources, docs []string
	for key, text := range p.wiki.FetchPages(ctx, keys) {
		sources = append(sources, key)
		docs = append(docs, text)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunker := chunk.NewChunker(p.settings.ChunkLength, p.settings.ChunkOverlap)
	chunks := chunker.SplitAll(sources, docs)
	p.log.Debug("documents prepared", "topics", len(sources), "chunks", len(chunks))

	retrieved, err := p.retriever.Retrieve(ctx, query, chunks, p.settings.TopK, p.settings.Threshold)
	if err != nil {
		return nil, err
	}

	corrected := spell.NewCorrector(p.settings.SpellingDistance, docs).Correct(query)
	if corrected != query {
		p.log.Debug("query spell-corrected", "from", query, "to", corrected)
	}

	return p.synthesizer.Synthesize(ctx, corrected, retrieved)
}
