package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUserID     = "user_id"
	FieldVerb       = "verb"
	FieldMonth      = "month"
	FieldCategory   = "category"
	FieldAmount     = "amount_cents"
	FieldCity       = "city"
	FieldLanguage   = "language"
	FieldEventID    = "event_id"
)

// Components defines standard component names
const (
	ComponentApp         = "app"
	ComponentHTTP        = "http"
	ComponentInterpreter = "interpreter"
	ComponentStore       = "store"
	ComponentAMQP        = "amqp"
	ComponentWorker      = "worker"
	ComponentArchive     = "archive"
	ComponentNews        = "news"
	ComponentGold        = "gold"
	ComponentPPP         = "ppp"
	ComponentLLM         = "llm"
	ComponentTrace       = "trace"
	ComponentRateLimit   = "rate_limit"
)

// Operations defines standard operation names
const (
	OpExecute  = "execute"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpArchive  = "archive"
	OpFetch    = "fetch"
	OpParse    = "parse"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
