// Package reports renders the results of an analysis run: the team
// performance bar chart (as an XLSX workbook chart and as a console text
// chart) and the plain-text summary report.
package reports
