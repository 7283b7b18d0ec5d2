package policy

import "strings"

var sensitivePathPatterns = []string{
	".env",
	"credentials",
	"secret",
	"private_key",
}

var largeFileExtensions = []string{".log", ".csv", ".sql"}

var codeExtensions = []string{
	".rs", ".go", ".ts", ".tsx", ".js", ".jsx", ".py", ".astro",
}

var frontendExtensions = []string{
	".ts", ".tsx", ".js", ".jsx", ".astro", ".vue", ".svelte",
}

// IsSensitivePath reports whether a path looks like it holds secrets.
func IsSensitivePath(path string) bool {
	lower := strings.ToLower(path)
	for _, p := range sensitivePathPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// IsLargeFile reports whether the extension suggests bulk data.
func IsLargeFile(path string) bool {
	return hasAnySuffix(path, largeFileExtensions)
}

// IsCodeFile reports whether the path ends in a recognized source extension.
func IsCodeFile(path string) bool {
	return hasAnySuffix(path, codeExtensions)
}

// IsFrontendFile reports whether the path is a JS/TS-family source file.
func IsFrontendFile(path string) bool {
	return hasAnySuffix(path, frontendExtensions)
}

// IsHandlerFile reports whether the path looks like request-handling code,
// where swallowed errors are policy-critical.
func IsHandlerFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.Contains(lower, "handler") ||
		strings.Contains(lower, "routes") ||
		strings.Contains(lower, "lib.rs")
}

// IsDockerfile reports whether the basename is a container build file.
func IsDockerfile(path string) bool {
	base := strings.ToLower(baseName(path))
	return strings.HasPrefix(base, "dockerfile") || base == "containerfile"
}

// IsNonConfigFile reports whether localhost URLs in the file are a leak
// rather than legitimate configuration.
func IsNonConfigFile(path string) bool {
	lower := strings.ToLower(path)
	configPatterns := []string{
		"config", ".env", "astro.config", "vite.config", "next.config",
		"wrangler.toml", "docker-compose", ".toml", "constants",
	}
	for _, p := range configPatterns {
		if strings.Contains(lower, p) {
			return false
		}
	}
	nonCode := []string{".md", ".txt", ".json", ".yaml", ".yml", ".csv", ".xml", ".html"}
	for _, ext := range nonCode {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	return true
}

// IsTestPath reports whether the path is test/fixture territory, which the
// production-readiness checks skip.
func IsTestPath(path string) bool {
	lower := strings.ToLower(path)
	for _, p := range []string{"test", "spec", "mock", "fixture", "__test"} {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func hasAnySuffix(path string, suffixes []string) bool {
	lower := strings.ToLower(path)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}
