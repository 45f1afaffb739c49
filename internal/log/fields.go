package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldSource    = "source"
	FieldCurrency  = "currency"
	FieldCount     = "count"
	FieldTicker    = "ticker"
	FieldRow       = "row"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldDuration  = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentNormalizer = "normalizer"
	ComponentAggregate  = "aggregate"
	ComponentBudget     = "budget"
	ComponentReport     = "report"
	ComponentMarket     = "market"
	ComponentStorage    = "storage"
	ComponentIngest     = "ingest"
	ComponentExport     = "export"
	ComponentNotify     = "notify"
	ComponentSample     = "sample"
)

// Operations defines standard operation names
const (
	OpLoad      = "load"
	OpNormalize = "normalize"
	OpAggregate = "aggregate"
	OpRescale   = "rescale"
	OpFetch     = "fetch"
	OpExport    = "export"
	OpPublish   = "publish"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
