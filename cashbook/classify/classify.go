// Package classify predicts transaction categories from descriptions, using
// a naive Bayes classifier trained on the ledger.
package classify

import (
	"math"
	"strings"
	"unicode"

	"github.com/jbrukh/bayesian"
	"github.com/plenert/cashbook"
)

// minScoreGap is the log-score lead the best category needs over the
// runner-up before it is trusted.
const minScoreGap = 10

// Classifier holds one model per transaction kind.
type Classifier struct {
	models map[cashbook.Kind]*bayesian.Classifier
}

// Train learns the category of every categorised transaction with a
// description. A kind needs at least two categories to be predicted.
func Train(txs []*cashbook.Transaction) *Classifier {
	type sample struct {
		words    []string
		category string
	}
	samples := make(map[cashbook.Kind][]sample)
	classes := make(map[cashbook.Kind][]bayesian.Class)
	seen := make(map[cashbook.Kind]map[string]bool)

	for _, t := range txs {
		words := Words(t.Description())
		if t.Category() == "" || len(words) == 0 {
			continue
		}
		k := t.Kind()
		if seen[k] == nil {
			seen[k] = make(map[string]bool)
		}
		if !seen[k][t.Category()] {
			seen[k][t.Category()] = true
			classes[k] = append(classes[k], bayesian.Class(t.Category()))
		}
		samples[k] = append(samples[k], sample{words, t.Category()})
	}

	c := &Classifier{models: make(map[cashbook.Kind]*bayesian.Classifier)}
	for k, cls := range classes {
		// bayesian needs two classes
		if len(cls) < 2 {
			continue
		}
		model := bayesian.NewClassifier(cls...)
		for _, s := range samples[k] {
			model.Learn(s.words, bayesian.Class(s.category))
		}
		c.models[k] = model
	}
	return c
}

// Predict returns the category for a transaction of kind k described by
// description, and false when no category stands out.
func (c *Classifier) Predict(k cashbook.Kind, description string) (string, bool) {
	model := c.models[k]
	words := Words(description)
	if model == nil || len(words) == 0 {
		return "", false
	}

	// Find the highest and second highest scores
	high1, high2 := math.Inf(-1), math.Inf(-1)
	match := 0
	scores, _, _ := model.LogScores(words)
	for i, score := range scores {
		if score > high1 {
			high2 = high1
			high1 = score
			match = i
		} else if score > high2 {
			high2 = score
		}
	}
	if high1-high2 > minScoreGap {
		return string(model.Classes[match]), true
	}
	return "", false
}

// Words splits a description into lower-case words, dropping digits and
// punctuation so reference numbers do not count as evidence.
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
