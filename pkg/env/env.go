package env

import "os"

const (
	instanceIDKey     = "RETAIL_INSTANCE_ID"
	defaultInstanceID = "decisions-0"
)

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// InstanceID identifies this process in logs and spans. RETAIL_INSTANCE_ID
// wins, then the hostname.
func InstanceID() string {
	if id := Get(instanceIDKey, ""); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return defaultInstanceID
}
