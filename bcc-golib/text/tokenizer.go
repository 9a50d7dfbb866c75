package text

import (
	"bufio"
	"bytes"
	"strings"

	porterstemmer "github.com/kiteco/go-porterstemmer"
)

// TokenFunc defines a type of function that takes in an array of tokens and
// returns an array of tokens.
type TokenFunc func(Tokens) Tokens

// Tokens represents a slice of strings
type Tokens []string

// Processor consists of a list of text processing rules.
type Processor struct {
	filters []TokenFunc
}

// FeatureProcessor is the processor used to build term counts for
// vocabulary selection: lower-case, drop stop words, stem.
var FeatureProcessor = NewProcessor(Lower, RemoveStopWords, Stem)

// VocabTermProcessor additionally uniquifies the token stream, for
// document-frequency counting.
var VocabTermProcessor = NewProcessor(Lower, RemoveStopWords, Stem, Uniquify)

// NewProcessor takes a list of TokenFuncs to instantiate a Processor.
func NewProcessor(funcs ...TokenFunc) *Processor {
	f := &Processor{}
	for _, fn := range funcs {
		f.filters = append(f.filters, fn)
	}
	return f
}

// Apply applies a list of TokenFunc to transform the input tokens
func (f *Processor) Apply(ts Tokens) Tokens {
	for _, fn := range f.filters {
		ts = fn(ts)
	}
	return ts
}

// Tokenize normalizes a message (drops urls, mentions, punctuation) and
// splits the result on whitespace.
func Tokenize(s string) Tokens {
	s = Normalize(s)

	buf := bytes.NewBufferString(s)
	scanner := bufio.NewScanner(buf)
	scanner.Split(bufio.ScanWords)

	var tokens Tokens
	for scanner.Scan() {
		tok := scanner.Text()
		if len(tok) > 0 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Tokenizer is generic interface for an object which breaks an input
// string into Tokens.
type Tokenizer interface {
	Tokenize(string) Tokens
}

// MessageTokenizer tokenizes short free-form messages.
type MessageTokenizer struct{}

// Tokenize satisfies the Tokenizer interface.
func (mt MessageTokenizer) Tokenize(doc string) Tokens {
	return Tokenize(doc)
}

// RemoveStopWords removes stop words from a token stream
func RemoveStopWords(ts Tokens) Tokens {
	var filteredTokens Tokens
	for _, t := range ts {
		if !skip(t) {
			filteredTokens = append(filteredTokens, t)
		}
	}
	return filteredTokens
}

// Lower converts all tokens to lower case
func Lower(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = strings.ToLower(t)
	}
	return ts
}

// Stem extracts and returns the stems of each token in the input token stream
func Stem(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = porterstemmer.StemString(t)
	}
	return ts
}

// Uniquify returns the set of unique tokens in a token stream
func Uniquify(ts Tokens) Tokens {
	var uniqueTokens Tokens
	seen := make(map[string]struct{})
	for _, t := range ts {
		if _, exists := seen[t]; !exists {
			uniqueTokens = append(uniqueTokens, t)
			seen[t] = struct{}{}
		}
	}
	return uniqueTokens
}

var stopWords = StopWords()

// skip determines whether a word should be removed (or skipped).
func skip(w string) bool {
	_, skip := stopWords[w]
	return skip
}
