package utils

// MaskFingerprint masks a client fingerprint for safe logging.
// Example: "e3b0c44298fc1c149afbf4c8996fb924" -> "e3b0c442***"
func MaskFingerprint(fingerprint string) string {
	if len(fingerprint) <= 8 {
		return "***"
	}
	return fingerprint[:8] + "***"
}
