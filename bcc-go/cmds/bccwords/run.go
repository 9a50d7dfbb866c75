package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/usptact/BCCWords/bcc-go/crowd"
	"github.com/usptact/BCCWords/bcc-go/features"
	"github.com/usptact/BCCWords/bcc-go/model"
	"github.com/usptact/BCCWords/bcc-golib/errors"
)

// run bundles everything a fitted dataset needs downstream: the
// id mapping, the selected vocabulary (nil for the words-free
// variant) and the model inputs.
type run struct {
	cfg     Config
	mapping *crowd.Mapping
	vocab   []string
	model   *model.Model
	data    model.Data
}

func setup(path string, cfg Config, withWords bool) (*run, error) {
	records, err := crowd.LoadRecords(path, cfg.NumClasses)
	if err != nil {
		return nil, err
	}
	mapping, err := crowd.NewMapping(records, cfg.NumClasses)
	if err != nil {
		return nil, err
	}
	s := mapping.Summarize()
	log.Printf("loaded %d judgements: %d workers, %d tasks (%d with gold), %.1f votes/task, %.2f agreement",
		s.Judgements, s.Workers, s.Tasks, s.GoldTasks, s.MeanVotesPerTask, s.AgreementRate)
	for _, w := range mapping.Diagnostics() {
		log.Printf("warning: %s", w)
	}

	r := &run{cfg: cfg, mapping: mapping}
	if withWords {
		r.vocab = features.BuildVocabulary(mapping.Texts, features.Options{
			MaxVocabulary: cfg.MaxVocabulary,
			MinTermCount:  cfg.MinTermCount,
		})
		if len(r.vocab) == 0 {
			return nil, errors.New("no vocabulary terms survived selection; rerun with --nowords or lower --minterms")
		}
		log.Printf("selected %d vocabulary terms", len(r.vocab))
		indices := features.WordIndices(mapping.Texts, r.vocab)
		if err := mapping.AttachWords(indices, len(r.vocab)); err != nil {
			return nil, err
		}
	}

	m, err := model.New(mapping.NumWorkers(), mapping.NumTasks(), len(r.vocab), model.Options{
		NumClasses:          cfg.NumClasses,
		InitialWorkerBelief: cfg.InitialWorkerBelief,
		NumIterations:       cfg.NumIterations,
		Parallelism:         cfg.Parallelism,
	})
	if err != nil {
		return nil, err
	}
	r.model = m
	r.data = model.FromMapping(mapping)
	return r, nil
}

func (r *run) fit() (*model.Posterior, error) {
	post, err := r.model.Infer(r.data)
	if err != nil {
		return nil, err
	}
	log.Printf("evidence after %d sweeps: %.4f", len(post.EvidenceTrace), post.Evidence)
	return post, nil
}

func printTopWords(post *model.Posterior, vocab []string, n int) {
	if post.WordProb == nil || n <= 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "class\tterm\tlog prob")
	for c, words := range post.TopWords(vocab, n) {
		for _, ws := range words {
			fmt.Fprintf(w, "%d\t%s\t%.4f\n", c, ws.Term, ws.LogProb)
		}
	}
	w.Flush()
}

// printWorkers summarizes each worker's inferred confusion matrix by
// its mean diagonal, the posterior estimate of the worker's accuracy.
func printWorkers(mapping *crowd.Mapping, post *model.Posterior) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "worker\tvotes\test accuracy")
	for k, id := range mapping.WorkerIDs {
		conf := post.ConfusionMean(k)
		var diag float64
		for c := range conf {
			diag += conf[c][c]
		}
		fmt.Fprintf(w, "%s\t%d\t%.4f\n", id, mapping.LabelsPerWorker.RowLen(k), diag/float64(len(conf)))
	}
	w.Flush()
}

func printBackground(post *model.Posterior) {
	bg := post.BackgroundMean()
	fmt.Print("background label probabilities:")
	for _, p := range bg {
		fmt.Printf(" %.4f", p)
	}
	fmt.Println()
}

func writePredictions(path string, mapping *crowd.Mapping, post *model.Posterior) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating predictions file")
	}
	defer f.Close()

	preds := post.MAP()
	for n, taskID := range mapping.TaskIDs {
		fmt.Fprintf(f, "%s\t%d", taskID, preds[n])
		for _, p := range post.TrueLabel[n] {
			fmt.Fprintf(f, "\t%.6f", p)
		}
		fmt.Fprintln(f)
	}
	return nil
}
