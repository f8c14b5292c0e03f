// Package dataprocessing is the analysis core: it turns a player-season
// file into an immutable Table and computes the two ranked aggregates.
//
// # Pipeline
//
//	LoadFile → Clean → ResolveTraded → RankTop / TopScorers
//	                 → ExcludeTradedTotals → RankTeamsByAvgPPG / TeamStats
//
// Every stage takes a *Table and returns a new one (or a slice of ranked
// entries); nothing is modified in place, so one cleaned table can be
// read by both aggregations at the same time.
//
// # Loading
//
// CSV and TSV records are handed to gota (github.com/go-gota/gota), which
// coerces the required columns and infers the type of every passthrough
// column. XLSX workbooks are read with excelize and take the same path. The header is checked once:
// a missing required column fails the load with a LOAD error naming it, and
// no partial table is returned.
//
// # Cleaning
//
// Rows with a missing, negative or non-integral required value, or with
// zero games played, are dropped. The drop counts are returned in a
// CleanReport so that lost rows stay visible in logs and metrics.
//
// # Aggregation
//
// Team strength is the mean of per-row points per game: each player-team
// row counts once regardless of how many games it covers. Rankings are
// stable, so equal values keep their input order.
package dataprocessing
