package baseline

import (
	"github.com/usptact/BCCWords/bcc-go/crowd"
	"github.com/usptact/BCCWords/bcc-golib/languagemodel"
	"github.com/usptact/BCCWords/bcc-golib/text"
)

// WordsOnly classifies each task purely from its body text: a
// class-conditional unigram language model is trained on the task
// texts with majority-vote labels, then every task is re-labeled by
// likelihood. Workers' identities play no role, which makes it the
// words-only counterpart to MajorityVote.
func WordsOnly(m *crowd.Mapping) ([]int, error) {
	seed := MajorityVote(m)

	lms, err := languagemodel.TrainScorer(m.Texts, seed, m.NumClasses, text.Tokenize)
	if err != nil {
		return nil, err
	}

	preds := make([]int, m.NumTasks())
	for n, body := range m.Texts {
		preds[n] = lms.Classify(body)
	}
	return preds, nil
}
