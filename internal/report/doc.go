// Package report generates CANoe-style XML test reports for exercising
// report-processing pipelines at scale.
//
// Reports are synthetic but structurally faithful: weighted verdicts,
// nested test groups, per-step timestamps, and failure detail tables.
// Generation is deterministic when a seed is supplied (each file uses
// seed + file index).
package report
