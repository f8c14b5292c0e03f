// Package exporter writes analysis results to disk.
//
// CSVWriter is the low-level writer: UTF-8 with an optional BOM so that
// spreadsheet tools detect the encoding, relative paths resolved under the
// reports directory. ReportExporter builds on it to write the top scorers
// table, the team table, any ranked entry sequence and the JSON report.
//
// Write failures are returned as STORAGE application errors carrying the
// target path.
package exporter
