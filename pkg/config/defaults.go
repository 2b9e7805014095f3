package config

// Logging defaults.
const (
	DefaultLogLevel  = LevelInfo
	DefaultLogFormat = FormatText
)

// Key order defaults.
const (
	DefaultOrderMode = OrderLexical
)

// Snapshot defaults.
const (
	DefaultSnapshotCodec     = "json"
	DefaultSnapshotCompress  = false
	DefaultSnapshotDirectory = "."
)

// Observability defaults.
const (
	DefaultOTLPInsecure = false
	DefaultSampleRatio  = 1.0
	DefaultEnvironment  = ""
)

// Accepted log levels.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Accepted log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Accepted key orders. Lexical compares strings byte-wise, numeric parses
// keys as numbers and fold compares case-insensitively.
const (
	OrderLexical = "lexical"
	OrderNumeric = "numeric"
	OrderFold    = "fold"
)
