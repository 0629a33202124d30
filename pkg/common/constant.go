package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyVigilanceDBType string = "VIGILANCE_DB_TYPE"
	EnvKeyVigilanceDbPath string = "VIGILANCE_DB_PATH"

	EnvKeyVigilanceHttpHostPort string = "VIGILANCE_HTTP_HOST_PORT"

	EnvKeyVigilanceStalenessWindow string = "VIGILANCE_STALENESS_WINDOW"
	EnvKeyVigilanceHubQueueSize    string = "VIGILANCE_HUB_QUEUE_SIZE"
	EnvKeyVigilancePingInterval    string = "VIGILANCE_PING_INTERVAL"

	LoggerNameTelemetryCore  string = "telemetry_core"
	LoggerNameRestfulServer  string = "restful_server"
	LoggerNameBroadcastHub   string = "broadcast_hub"
	LoggerFieldCategory      string = "category"
	LoggerCategoryIngest     string = "ingest"
	LoggerCategoryAnomaly    string = "anomaly"
	LoggerCategoryThreshold  string = "threshold"
	LoggerCategoryDevice     string = "device"
	LoggerCategorySubscriber string = "subscriber"
	LoggerCategoryStatus     string = "status"
)
