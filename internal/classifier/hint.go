package classifier

import "context"

// Classifier suggests a dialect for a statement. Its answer is advisory: the
// importer falls back to the other parser when the suggested one yields no
// records, and ignores the hint entirely on error.
type Classifier interface {
	Classify(ctx context.Context, text string) (Dialect, error)
	Name() string
}

// HeuristicClassifier classifies by line shapes only.
type HeuristicClassifier struct{}

// Classify implements Classifier.
func (HeuristicClassifier) Classify(_ context.Context, text string) (Dialect, error) {
	return DetectDialect(text), nil
}

// Name implements Classifier.
func (HeuristicClassifier) Name() string { return "heuristic" }
