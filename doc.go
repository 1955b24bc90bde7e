// Package propmatch selects a statistically balanced comparison group from
// a pool of candidate subjects — propensity-score estimation, 1:1 matching
// and balance diagnostics, in memory and deterministic.
//
// 🚀 What is propmatch?
//
//	A small analysis library that brings together:
//		• Cohort table: subjects with a two-valued group label and named covariates
//		• Propensity scores: logistic regression fitted by IRLS (gonum)
//		• Matching: greedy nearest-neighbor and optimal 1:1 assignment, with caliper
//		• Diagnostics: standardized mean difference, variance ratio, significance tests
//
// ✨ Why choose propmatch?
//
//   - Deterministic – fixed processing order, documented tie-breaks, no randomness
//   - Strict sentinels – every failure names the offending subject or covariate
//   - Analyst-first – advisory balance thresholds are surfaced, never enforced
//
// Everything is organized under flat subpackages:
//
//	cohort/  — subject records, covariate table, exclusion lists
//	logit/   — logistic propensity estimation
//	match/   — nearest-neighbor & optimal matchers
//	balance/ — per-covariate and propensity-score balance diagnostics
//	cmd/     — the propmatch CLI, one analyst iteration per invocation
//
// The intended loop is manual: assess data → select covariates → match →
// diagnose → accept, or adjust covariates/exclusions and rerun. There is no
// automatic convergence criterion; the numbers are for a human.
//
//	go get github.com/katalvlaran/propmatch
package propmatch
