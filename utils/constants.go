// File: utils/constants.go
package utils

// AuthCachePrefix is the prefix used for Redis session cache keys.
const AuthCachePrefix = "auth:"
