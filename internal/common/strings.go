package common

// UnknownStr is the fallback name for enum values outside their range.
const UnknownStr = "unknown"
