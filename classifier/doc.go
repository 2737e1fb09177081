// Package classifier contains concrete core.Classifier implementations. The
// classifier contract and Proposal type reside in the core package; depend on
// core.Classifier in your code and select an implementation at wiring time.
//
// The default RuleClassifier matches keyword patterns in a fixed priority
// order so that ambiguous text always has one defined outcome. Model-backed
// alternatives live in the anthropic and openai subpackages and plug in
// behind the same interface without touching the agent or chain logic.
package classifier
