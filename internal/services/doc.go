// Package services runs the analysis pipeline end to end.
//
// AnalysisService wires the loader, the cleaner, the two aggregators, the
// exporters and the chart renderers together. Each stage runs inside a
// telemetry span, records its duration and logs through the injected
// *slog.Logger:
//
//	validate -> load -> describe -> clean -> {rank, group} -> export -> render
//
// The cleaned table is read-only once built, so the ranking and grouping
// stages run concurrently when AnalysisOptions.Parallel is set. Results are
// identical either way.
package services
