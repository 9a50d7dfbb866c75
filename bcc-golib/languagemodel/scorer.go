package languagemodel

import (
	"math"

	"github.com/usptact/BCCWords/bcc-golib/errors"
	"github.com/usptact/BCCWords/bcc-golib/text"
)

// Scorer provides an interface for computing p(c|q) ~ p(q|c) * p(c),
// where p(c) is the prior of observing class c, and p(q|c) is the
// probability of q being an instance of class c. Classes are dense
// 0-based label indices.
type Scorer struct {
	Prior          []float64
	LanguageModels []*LanguageModel
	tokenizer      tokenizer
}

// TrainScorer takes in docs and the class that each doc belongs to.
func TrainScorer(docs []string, classes []int, numClasses int, tokenizer func(string) text.Tokens) (*Scorer, error) {
	if len(docs) != len(classes) {
		return nil, errors.Errorf("len of docs (%d) != len of classes (%d)", len(docs), len(classes))
	}
	if numClasses < 2 {
		return nil, errors.Errorf("need at least 2 classes, got %d", numClasses)
	}

	lms := &Scorer{
		Prior:          make([]float64, numClasses),
		LanguageModels: make([]*LanguageModel, numClasses),
		tokenizer:      tokenizer,
	}
	for c := range lms.LanguageModels {
		lms.LanguageModels[c] = NewLanguageModel(tokenizer)
	}

	for i, doc := range docs {
		c := classes[i]
		if c < 0 || c >= numClasses {
			return nil, errors.Errorf("doc %d: class %d out of range [0, %d)", i, c, numClasses)
		}
		lms.Prior[c]++
		lms.LanguageModels[c].addData(doc)
	}
	lms.train()
	return lms, nil
}

// train computes the prior probability and trains the language models
func (lms *Scorer) train() {
	var total float64
	for _, c := range lms.Prior {
		total += c
	}
	logTotal := math.Log(total)
	for c, lm := range lms.LanguageModels {
		// add-one on the class prior so unseen classes stay finite
		if lms.Prior[c] == 0 {
			lms.Prior[c] = math.Log(1) - logTotal
		} else {
			lms.Prior[c] = math.Log(lms.Prior[c]) - logTotal
		}
		lm.train()
	}
}

// Posterior returns p(c|tokens) for every class, normalized with
// log-sum-exp.
func (lms *Scorer) Posterior(tokens []string) []float64 {
	scores := make([]float64, len(lms.Prior))
	for c, prior := range lms.Prior {
		scores[c] = prior + lms.LanguageModels[c].LogLikelihood(tokens)
	}
	logSum := logSumExp(scores)
	for c, s := range scores {
		scores[c] = math.Exp(s - logSum)
	}
	return scores
}

// Classify tokenizes doc and returns the most probable class.
func (lms *Scorer) Classify(doc string) int {
	tokens := text.FeatureProcessor.Apply(lms.tokenizer(doc))
	posterior := lms.Posterior(tokens)
	best := 0
	for c, p := range posterior {
		if p > posterior[best] {
			best = c
		}
	}
	return best
}
