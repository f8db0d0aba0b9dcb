package shared

import "github.com/bmatcuk/doublestar/v4"

// sharedLibPatterns matches runtime-loadable library filenames:
// Windows DLLs, macOS dylibs, and Linux sonames with or without a
// trailing version (libfoo.so, libfoo.so.3, libfoo.so.3.4.1).
var sharedLibPatterns = []string{"*.dll", "*.dylib", "*.so", "*.so.*"}

// IsSharedLibrary reports whether a filename looks like a shared
// library that belongs in the staged bin directory.
func IsSharedLibrary(filename string) bool {
	for _, pattern := range sharedLibPatterns {
		if ok, err := doublestar.Match(pattern, filename); err == nil && ok {
			return true
		}
	}
	return false
}
