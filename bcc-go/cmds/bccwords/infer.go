package main

import (
	"log"

	"github.com/usptact/BCCWords/bcc-golib/cmdline"
	"github.com/usptact/BCCWords/bcc-golib/errors"
)

var inferCmd = cmdline.Command{
	Name:     "infer",
	Synopsis: "fit the crowd model and print posterior labels",
	Args:     &inferArgs{TopWords: 10},
}

type inferArgs struct {
	Data        string  `arg:"positional,required" help:"TSV of workerID, taskID, label and optional text, gold columns"`
	Config      string  `help:"YAML configuration file"`
	Classes     int     `help:"number of label classes"`
	Belief      float64 `help:"prior probability that a worker reports the true label"`
	Iterations  int     `help:"inference sweep budget"`
	MaxVocab    int     `help:"cap the vocabulary at the top tfidf terms"`
	MinTerms    int     `help:"drop terms seen fewer times in the corpus"`
	NoWords     bool    `help:"ignore task text"`
	Ablate      bool    `help:"also fit the words-free variant and report both evidence values"`
	Clamp       bool    `help:"clamp gold-labeled tasks to their gold labels"`
	TopWords    int     `help:"terms to print per class"`
	Predictions string  `help:"write per-task MAP labels and posteriors to this TSV"`
	Parallelism int     `help:"goroutines per sweep phase"`
}

func (args *inferArgs) Handle() error {
	cfg, err := loadConfig(args.Config)
	if err != nil {
		return err
	}
	overrideInt(&cfg.NumClasses, args.Classes)
	overrideFloat(&cfg.InitialWorkerBelief, args.Belief)
	overrideInt(&cfg.NumIterations, args.Iterations)
	overrideInt(&cfg.MaxVocabulary, args.MaxVocab)
	overrideInt(&cfg.MinTermCount, args.MinTerms)
	overrideInt(&cfg.Parallelism, args.Parallelism)

	r, err := setup(args.Data, cfg, !args.NoWords)
	if err != nil {
		return err
	}
	if args.Clamp {
		if !r.mapping.HasGold() {
			return errors.New("--clamp needs gold labels in the input")
		}
		r.data = r.data.Clamp(r.mapping.Gold)
	}

	post, err := r.fit()
	if err != nil {
		return err
	}

	printBackground(post)
	printTopWords(post, r.vocab, args.TopWords)
	printWorkers(r.mapping, post)

	if args.Ablate && !args.NoWords {
		ablated, err := setup(args.Data, cfg, false)
		if err != nil {
			return err
		}
		if args.Clamp {
			ablated.data = ablated.data.Clamp(ablated.mapping.Gold)
		}
		ablatedPost, err := ablated.fit()
		if err != nil {
			return err
		}
		log.Printf("evidence with words %.4f, without %.4f", post.Evidence, ablatedPost.Evidence)
	}

	if r.mapping.HasGold() {
		log.Printf("accuracy on gold-labeled tasks: %.4f", post.Accuracy(r.mapping.Gold))
	}
	if args.Predictions != "" {
		if err := writePredictions(args.Predictions, r.mapping, post); err != nil {
			return err
		}
		log.Printf("wrote predictions to %s", args.Predictions)
	}
	return nil
}
