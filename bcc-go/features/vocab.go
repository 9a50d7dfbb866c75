package features

import (
	"sort"

	"github.com/usptact/BCCWords/bcc-golib/text"
	"github.com/usptact/BCCWords/bcc-golib/tfidf"
)

// Options controls vocabulary selection.
type Options struct {
	// MaxVocabulary caps the vocabulary at the top-scoring terms;
	// 0 means no cap.
	MaxVocabulary int
	// MinTermCount drops terms occurring fewer times in the corpus.
	MinTermCount int
}

// DefaultOptions keeps terms seen at least twice, uncapped.
var DefaultOptions = Options{MinTermCount: 2}

// BuildVocabulary selects a fixed term vocabulary for the corpus:
// tokenize, stem and stop-filter each document, drop rare terms, rank
// the rest by summed tfidf mass, and return the selection in
// alphabetical order. The result is fully determined by the input.
func BuildVocabulary(corpus []string, opts Options) []string {
	scorer := tfidf.TrainScorer(corpus, text.Tokenize)

	counts := make(map[string]int)
	for _, docTokens := range scorer.Corpus {
		for _, tok := range docTokens {
			counts[tok]++
		}
	}

	var ranked []tfidf.TermScore
	for _, ts := range scorer.TopTerms(0) {
		if counts[ts.Term] >= opts.MinTermCount {
			ranked = append(ranked, ts)
		}
	}
	if opts.MaxVocabulary > 0 && len(ranked) > opts.MaxVocabulary {
		ranked = ranked[:opts.MaxVocabulary]
	}

	vocab := make([]string, 0, len(ranked))
	for _, ts := range ranked {
		vocab = append(vocab, ts.Term)
	}
	sort.Strings(vocab)
	return vocab
}

// WordIndices maps each document to its list of vocabulary indices.
// Duplicate occurrences are kept; out-of-vocabulary tokens are dropped.
// Documents with no in-vocabulary tokens get an empty list.
func WordIndices(corpus []string, vocab []string) [][]int {
	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	out := make([][]int, len(corpus))
	for d, doc := range corpus {
		tokens := text.FeatureProcessor.Apply(text.Tokenize(doc))
		for _, tok := range tokens {
			if i, ok := index[tok]; ok {
				out[d] = append(out[d], i)
			}
		}
	}
	return out
}
