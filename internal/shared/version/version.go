// Package version carries the build identity stamped in at link time.
package version

// Current is the application version. Release builds override it with
// -ldflags "-X chroma/internal/shared/version.Current=v1.2.3".
var Current = "dev"
