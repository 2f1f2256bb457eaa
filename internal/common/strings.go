package common

// UnknownStr is the String value of out-of-range enumerations.
const UnknownStr = "unknown"
