package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# Pilly configuration
#
# Search order (first found wins per key):
#   ./.pilly.yaml
#   ~/.config/pilly/config.yaml
#   /etc/pilly/config.yaml
# Every key can also be set with a PILLY_<SECTION>_<KEY> environment
# variable, e.g. PILLY_API_BASE_URL.

version: "1.0"

api:
  # Backend root including the /api prefix
  base_url: "http://127.0.0.1:8000/api"
  # Per-request timeout
  timeout: 15s

session:
  # Where the access token and username are stored after login
  credential_file: "~/.config/pilly/credentials.yaml"
  # Reload the session when another pilly process logs in or out
  watch: true

ui:
  # default | high-contrast | minimal
  theme: "default"
  # Plain text markers instead of emoji
  no_emoji: false
  # Location the TUI opens at, e.g. /search or /oauth/kakao?code=...
  start_path: "/"

log:
  # Debug and info messages
  verbose: false
  # Log file used while the TUI owns the terminal; empty disables it
  file: ""
`
}

// MinimalSampleConfig returns a compact configuration with essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
api:
  base_url: "http://127.0.0.1:8000/api"
ui:
  theme: "default"
`
}
