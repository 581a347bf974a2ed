package log

// ZapConfig configures the zap-backed Logger.
type ZapConfig struct {
	Level        string // debug, info, warn, error, dpanic, panic, fatal
	Mode         string // production or anything else for development
	Encoding     string // json or console
	ColorEnabled bool   // colored level names, console encoding only
}

const (
	ModeProduction  = "production"
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

type ctxKey string

const deliveryIDKey ctxKey = "delivery_id"
