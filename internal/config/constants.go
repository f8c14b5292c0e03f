package config

// Application constants
const (
	AppName = "nbastats"

	// EnvPrefix namespaces every environment variable (NBA_DATA_FILE, ...)
	EnvPrefix = "NBA"

	DefaultDataFile   = "data/NBA_Player_Stats.csv"
	DefaultReportsDir = "data/reports"
	DefaultLogsDir    = "logs"
	DefaultChartFile  = "team_performance.xlsx"

	DefaultTopScorers = 10
	DefaultChartTeams = 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Report artifact file names, written under the reports directory
const (
	TopScorersCSV  = "top_scorers.csv"
	TeamStatsCSV   = "team_stats.csv"
	ReportJSON     = "analysis_report.json"
	SummaryText    = "analysis_summary.txt"
	MetricsTextOut = "nbastats.prom"
)

// Chart labels
const (
	ChartTitle  = "NBA Team Offensive Performance - Average Points Per Game Per Player"
	ChartXLabel = "Team"
	ChartYLabel = "Average Points Per Game (Per Player)"
)
