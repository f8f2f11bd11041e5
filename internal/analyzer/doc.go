// Package analyzer recovers a document's chapter structure through an
// external generative model that cannot take the whole document's detail
// in one question.
//
// The document is cut into overlapping page windows; each window is one
// question in a single conversational session that carries the document in
// context. Answers are parsed strictly (fenced JSON, with a constrained
// Python-literal fallback; never evaluated) into partial hierarchies that
// package hierarchy reconciles.
//
// The backend is shared and rate-limited, so windows run sequentially with
// an adaptive delay: every failure doubles the pacing multiplier, every
// success decays it toward 1.0. A window whose retries run out contributes
// nothing rather than aborting the run; only a completely empty final
// hierarchy is an error.
package analyzer
