package tfidf

import "math"

// TFCounter keeps the term-frequency weight of each term in one document.
type TFCounter struct {
	// Scores maps a term to its tf weight.
	Scores map[string]float64
	// ShortType indicates raw-count weights; otherwise weights are
	// normalized by the total token count of the document.
	ShortType bool
}

// TrainTFCounter builds a TFCounter from raw term counts.
func TrainTFCounter(shortType bool, counts map[string]int) *TFCounter {
	c := &TFCounter{
		Scores:    make(map[string]float64, len(counts)),
		ShortType: shortType,
	}
	var total int
	for _, n := range counts {
		total += n
	}
	for term, n := range counts {
		if shortType {
			c.Scores[term] = float64(n)
		} else {
			c.Scores[term] = float64(n) / float64(total)
		}
	}
	return c
}

// Weight returns the tf weight of a term, 0 for unseen terms.
func (c *TFCounter) Weight(term string) float64 {
	return c.Scores[term]
}

// IDFCounter keeps the inverse-document-frequency weight of each term.
type IDFCounter struct {
	// Weights maps a term to log10(numDocs / documentFrequency).
	Weights map[string]float64
}

// TrainIDFCounter builds an IDFCounter from document frequencies.
func TrainIDFCounter(numDocs int, docFreq map[string]int) *IDFCounter {
	c := &IDFCounter{Weights: make(map[string]float64, len(docFreq))}
	for term, df := range docFreq {
		if df > 0 {
			c.Weights[term] = math.Log10(float64(numDocs) / float64(df))
		}
	}
	return c
}

// Weight returns the idf weight of a term, 0 for unseen terms.
func (c *IDFCounter) Weight(term string) float64 {
	return c.Weights[term]
}
