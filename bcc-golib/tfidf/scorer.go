package tfidf

import (
	"math"
	"sort"

	"github.com/usptact/BCCWords/bcc-golib/text"
)

type tokenizer func(string) text.Tokens

// Scorer computes tfidf statistics over an ordered corpus of documents.
// Documents are identified by position so scores stay aligned with the
// caller's task indexing.
type Scorer struct {
	// Corpus holds the processed tokens of each document.
	Corpus [][]string

	// IdfCounter is responsible for keeping inverse-doc-frequency (idf)
	// weight of each term.
	IdfCounter *IDFCounter

	// TfCounters stores the term-frequency weights per document.
	TfCounters []*TFCounter

	// Norm holds the L2 norm of each doc in the tfidf space.
	Norm []float64

	processor *text.Processor
	tokenizer tokenizer
}

// TrainScorer takes a corpus and returns a trained Scorer.
func TrainScorer(corpus []string, tokenizer tokenizer) *Scorer {
	s := &Scorer{
		processor: text.FeatureProcessor,
		tokenizer: tokenizer,
	}
	s.train(corpus)
	return s
}

func (s *Scorer) train(corpus []string) {
	idfCorpus := make(map[string]int)

	for _, doc := range corpus {
		docTokens := s.processor.Apply(s.tokenizer(doc))

		tfCorpus := make(map[string]int)
		for _, tok := range docTokens {
			tfCorpus[tok]++
		}
		s.TfCounters = append(s.TfCounters, TrainTFCounter(false, tfCorpus))
		s.Corpus = append(s.Corpus, docTokens)

		for term := range tfCorpus {
			idfCorpus[term]++
		}
	}

	s.IdfCounter = TrainIDFCounter(len(corpus), idfCorpus)

	for _, tfCounter := range s.TfCounters {
		var norm float64
		for t := range tfCounter.Scores {
			w := s.IdfCounter.Weight(t) * tfCounter.Weight(t)
			norm += w * w
		}
		s.Norm = append(s.Norm, math.Sqrt(norm))
	}
}

// TermScore is a term together with its corpus-level tfidf mass.
type TermScore struct {
	Term  string
	Score float64
}

// TermScores sums each term's tfidf weight over all documents.
func (s *Scorer) TermScores() map[string]float64 {
	scores := make(map[string]float64)
	for _, tfCounter := range s.TfCounters {
		for t := range tfCounter.Scores {
			scores[t] += s.IdfCounter.Weight(t) * tfCounter.Weight(t)
		}
	}
	return scores
}

// TopTerms returns the n highest-scoring terms, score descending with
// lexicographic tie-break so the selection is deterministic.
func (s *Scorer) TopTerms(n int) []TermScore {
	scores := s.TermScores()
	ranked := make([]TermScore, 0, len(scores))
	for t, score := range scores {
		ranked = append(ranked, TermScore{Term: t, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Term < ranked[j].Term
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// DocFrequencies returns the number of documents each term occurs in.
func (s *Scorer) DocFrequencies() map[string]int {
	df := make(map[string]int)
	for _, tfCounter := range s.TfCounters {
		for t := range tfCounter.Scores {
			df[t]++
		}
	}
	return df
}

// L2Normalize scales vec to unit L2 norm. A zero vector is returned
// unchanged.
func L2Normalize(vec []float64) []float64 {
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = v / norm
	}
	return out
}
