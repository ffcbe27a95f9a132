// Package version reports the build identity of the minsh binary.
package version

// These variables are set at build time using ldflags.
// Example: go build -ldflags "-X github.com/abdullathedruid/minsh/internal/version.GitSHA=$(git rev-parse --short HEAD)"
var (
	// GitSHA is the git commit SHA (short form) at build time.
	GitSHA = "dev"
)

// Short returns a short version string suitable for display by
// `minsh --version`.
func Short() string {
	return "minsh " + GitSHA
}
