package config

import "os"

// parseEnv overlays Config with environment variables. The bridge binary
// loads a local .env file before this runs, so deployments can configure the
// bridge without flags or a JSON file. Unset variables keep current values.
//
// Recognized variables:
//
//	BRIDGE_ADDRESS, DATABASE_DSN, API_KEY,
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT,
//	PUBLIC_FILE_BASE
func parseEnv(config *Config) {
	for _, entry := range []struct {
		name string
		dst  *string
	}{
		{"BRIDGE_ADDRESS", &config.EndpointAddr},
		{"DATABASE_DSN", &config.DatabaseDSN},
		{"API_KEY", &config.APIKey},
		{"S3_ROOT_USER", &config.S3RootUser},
		{"S3_ROOT_PASSWORD", &config.S3RootPassword},
		{"S3_BUCKET", &config.S3Bucket},
		{"S3_REGION", &config.S3Region},
		{"S3_BASE_ENDPOINT", &config.S3BaseEndpoint},
		{"PUBLIC_FILE_BASE", &config.PublicFileBase},
	} {
		if v, ok := os.LookupEnv(entry.name); ok {
			*entry.dst = v
		}
	}
}
