package logger

import (
	"fmt"
	"hash/fnv"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/releasegate/relgate/pkg/timeutil"
	"github.com/releasegate/relgate/pkg/tty"
)

// Logger is a namespace-scoped debug logger. A logger is silent unless its
// namespace matches the DEBUG environment variable, so instrumented code
// paths cost one branch in normal runs.
type Logger struct {
	namespace string
	enabled   bool
	lastLog   time.Time
	mu        sync.Mutex
	color     string
}

var (
	// DEBUG environment variable value, read once at initialization.
	debugEnv = os.Getenv("DEBUG")

	// DEBUG_COLORS=0 disables namespace coloring.
	debugColors = os.Getenv("DEBUG_COLORS") != "0"

	isTTY = tty.IsStderrTerminal()

	// ANSI 256-color codes, readable on light and dark backgrounds.
	colorPalette = []string{
		"\033[38;5;33m",  // blue
		"\033[38;5;35m",  // green
		"\033[38;5;37m",  // cyan
		"\033[38;5;63m",  // light blue
		"\033[38;5;95m",  // brown
		"\033[38;5;124m", // red
		"\033[38;5;125m", // purple
		"\033[38;5;136m", // yellow
		"\033[38;5;161m", // magenta
		"\033[38;5;166m", // orange
	}

	colorReset = "\033[0m"
)

// New creates a Logger for the given namespace. The enabled state is computed
// once, at construction, from the DEBUG environment variable. DEBUG follows
// the npm debug package syntax:
//
//	DEBUG=*              - enables all loggers
//	DEBUG=manifest:*     - enables all loggers under a namespace
//	DEBUG=ns1,ns2        - enables specific namespaces
//	DEBUG=cli:*,-cli:new - enables a namespace but excludes a pattern
//
// Namespaces get a stable color when DEBUG_COLORS != "0" and stderr is a TTY.
func New(namespace string) *Logger {
	return &Logger{
		namespace: namespace,
		enabled:   enabledFor(namespace),
		lastLog:   time.Now(),
		color:     colorFor(namespace),
	}
}

// Enabled returns whether this logger is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Printf logs a formatted message when the logger is enabled. Output goes to
// stderr, prefixed with the namespace and suffixed with the time elapsed
// since the previous message from this logger.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprintf(format, args...))
}

// Print logs a message when the logger is enabled.
func (l *Logger) Print(args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprint(args...))
}

func (l *Logger) emit(message string) {
	l.mu.Lock()
	now := time.Now()
	diff := now.Sub(l.lastLog)
	l.lastLog = now
	l.mu.Unlock()

	elapsed := timeutil.FormatDuration(diff)
	if l.color != "" {
		fmt.Fprintf(os.Stderr, "%s%s%s %s +%s\n", l.color, l.namespace, colorReset, message, elapsed)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s +%s\n", l.namespace, message, elapsed)
}

// colorFor assigns a palette color to a namespace by FNV-1a hash, so the same
// namespace always renders in the same color.
func colorFor(namespace string) string {
	if !debugColors || !isTTY {
		return ""
	}
	h := fnv.New32a()
	if _, err := h.Write([]byte(namespace)); err != nil {
		return ""
	}
	return colorPalette[h.Sum32()%uint32(len(colorPalette))]
}

// enabledFor reports whether a namespace matches the DEBUG patterns.
// Exclusion patterns (leading -) take precedence over matches.
func enabledFor(namespace string) bool {
	enabled := false
	for _, pattern := range strings.Split(debugEnv, ",") {
		pattern = strings.TrimSpace(pattern)

		if exclude, ok := strings.CutPrefix(pattern, "-"); ok {
			if matchPattern(namespace, exclude) {
				return false
			}
			continue
		}

		if matchPattern(namespace, pattern) {
			enabled = true
		}
	}
	return enabled
}

// matchPattern checks a namespace against a single pattern. A * wildcard may
// appear at the start, end, or middle of the pattern.
func matchPattern(namespace, pattern string) bool {
	if pattern == "*" || pattern == namespace {
		return true
	}

	if strings.Contains(pattern, "*") {
		if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
			return strings.HasPrefix(namespace, prefix)
		}
		if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
			return strings.HasSuffix(namespace, suffix)
		}
		parts := strings.SplitN(pattern, "*", 2)
		if len(parts) == 2 {
			return strings.HasPrefix(namespace, parts[0]) && strings.HasSuffix(namespace, parts[1])
		}
	}

	return false
}
