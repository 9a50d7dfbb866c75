package languagemodel

import (
	"math"

	spooky "github.com/dgryski/go-spooky"

	"github.com/usptact/BCCWords/bcc-golib/text"
)

type tokenizer func(string) text.Tokens

const (
	wordVecLen = 1001
	alpha      = 0.01
)

// LanguageModel is a unigram language model over a fixed-length vector of
// hashed word ids. Hashing sidesteps building a global vocabulary; note
// that collisions are possible.
type LanguageModel struct {
	WordHashVec [wordVecLen]float64
	processor   *text.Processor
	tokenizer   tokenizer
}

// NewLanguageModel returns a pointer to a new LanguageModel object
func NewLanguageModel(tokenizer tokenizer) *LanguageModel {
	return &LanguageModel{
		processor: text.FeatureProcessor,
		tokenizer: tokenizer,
	}
}

func (lm *LanguageModel) addData(doc string) {
	tokens := lm.processor.Apply(lm.tokenizer(doc))
	for _, t := range tokens {
		id := spooky.Hash64([]byte(t))
		lm.WordHashVec[id%wordVecLen]++
	}
}

func (lm *LanguageModel) alphaSmooth() {
	for i := range lm.WordHashVec {
		lm.WordHashVec[i] += alpha
	}
}

func (lm *LanguageModel) normalize() {
	logTotalWordCount := math.Log(sum(lm.WordHashVec[:]))
	for i := range lm.WordHashVec {
		lm.WordHashVec[i] = math.Log(lm.WordHashVec[i]) - logTotalWordCount
	}
}

// train smooths the word counts and normalizes the word counts.
func (lm *LanguageModel) train() {
	lm.alphaSmooth()
	lm.normalize()
}

// LogLikelihood returns the log likelihood of an array of words, i.e,
// p(W|model) = \prod p(w_1|model) p(w_2|model) ...
func (lm *LanguageModel) LogLikelihood(ws []string) float64 {
	var score float64
	for _, w := range ws {
		id := spooky.Hash64([]byte(w))
		score += lm.WordHashVec[id%wordVecLen]
	}
	return score
}
