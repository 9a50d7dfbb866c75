package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/usptact/BCCWords/bcc-go/baseline"
	"github.com/usptact/BCCWords/bcc-go/eval"
	"github.com/usptact/BCCWords/bcc-golib/cmdline"
	"github.com/usptact/BCCWords/bcc-golib/errors"
)

var evalCmd = cmdline.Command{
	Name:     "eval",
	Synopsis: "compare the crowd model against baselines on gold labels",
	Args:     &evalArgs{Seed: 1},
}

type evalArgs struct {
	Data        string  `arg:"positional,required" help:"TSV with a gold label column"`
	Config      string  `help:"YAML configuration file"`
	Classes     int     `help:"number of label classes"`
	Belief      float64 `help:"prior probability that a worker reports the true label"`
	Iterations  int     `help:"inference sweep budget"`
	MaxVocab    int     `help:"cap the vocabulary at the top tfidf terms"`
	MinTerms    int     `help:"drop terms seen fewer times in the corpus"`
	Seed        int64   `help:"seed for the random baseline"`
	ROCOut      string  `help:"write a binary ROC curve plot to this PNG"`
	Parallelism int     `help:"goroutines per sweep phase"`
}

func (args *evalArgs) Handle() error {
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

	withWords, err := setup(args.Data, cfg, true)
	if err != nil {
		return err
	}
	if !withWords.mapping.HasGold() {
		return errors.New("eval needs gold labels in the input")
	}
	gold := withWords.mapping.Gold

	wordsPost, err := withWords.fit()
	if err != nil {
		return err
	}

	noWords, err := setup(args.Data, cfg, false)
	if err != nil {
		return err
	}
	noWordsPost, err := noWords.fit()
	if err != nil {
		return err
	}
	log.Printf("evidence with words %.4f, without %.4f", wordsPost.Evidence, noWordsPost.Evidence)

	wordsOnly, err := baseline.WordsOnly(withWords.mapping)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "method\taccuracy")
	methods := []struct {
		name  string
		preds []int
	}{
		{"crowd model + words", wordsPost.MAP()},
		{"crowd model", noWordsPost.MAP()},
		{"words only", wordsOnly},
		{"majority vote", baseline.MajorityVote(withWords.mapping)},
		{"random", baseline.Random(withWords.mapping, args.Seed)},
	}
	for _, m := range methods {
		acc, err := eval.Accuracy(m.preds, gold)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.4f\n", m.name, acc)
	}
	w.Flush()

	counts, err := eval.ConfusionCounts(wordsPost.MAP(), gold, cfg.NumClasses)
	if err != nil {
		return err
	}
	fmt.Println("model confusion counts (rows gold, columns predicted):")
	for _, row := range counts {
		fmt.Println(" ", row)
	}

	ws, err := eval.WorkerStats(withWords.mapping, gold)
	if err != nil {
		return err
	}
	mean, stddev := eval.WorkerAccuracySummary(ws)
	log.Printf("worker accuracy vs gold: mean %.4f, stddev %.4f over %d workers", mean, stddev, len(ws))

	if cfg.NumClasses == 2 {
		scores := make([]float64, len(wordsPost.TrueLabel))
		for n, probs := range wordsPost.TrueLabel {
			scores[n] = probs[1]
		}
		points, err := eval.ROC(scores, gold)
		if err != nil {
			return err
		}
		log.Printf("AUC: %.4f", eval.AUC(points))
		if args.ROCOut != "" {
			if err := eval.SaveROCPlot(points, args.ROCOut); err != nil {
				return err
			}
			log.Printf("wrote ROC plot to %s", args.ROCOut)
		}
	} else if args.ROCOut != "" {
		return errors.Errorf("ROC plots need binary labels, got %d classes", cfg.NumClasses)
	}
	return nil
}
