package dupfiles

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

var globalVerboseLevel int
var debugFlags map[string]bool

// logOutput is where verbose and debug lines go; tests swap it out
var logOutput io.Writer = os.Stderr

// SetVerboseLevel sets the global verbose level
func SetVerboseLevel(level int) {
	globalVerboseLevel = level
}

// GetVerboseLevel returns the current verbose level
func GetVerboseLevel() int {
	return globalVerboseLevel
}

// SetLogOutput redirects verbose and debug output, returning the previous writer
func SetLogOutput(w io.Writer) io.Writer {
	prev := logOutput
	logOutput = w
	return prev
}

// VerboseEnter logs function entry at level 3+ and returns a defer function for exit logging
func VerboseEnter() func() {
	if globalVerboseLevel < 3 {
		return func() {}
	}

	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return func() {}
	}

	funcName := runtime.FuncForPC(pc).Name()
	if idx := strings.LastIndex(funcName, "."); idx != -1 {
		funcName = funcName[idx+1:]
	}

	fmt.Fprintf(logOutput, "[TRACE] Entering function: %s\n", funcName)

	return func() {
		fmt.Fprintf(logOutput, "[TRACE] Exiting function: %s\n", funcName)
	}
}

// VerboseLog logs a message at the specified verbose level
func VerboseLog(level int, format string, args ...interface{}) {
	if globalVerboseLevel >= level {
		fmt.Fprintf(logOutput, "[VERBOSE-%d] ", level)
		fmt.Fprintf(logOutput, format, args...)
		if !strings.HasSuffix(format, "\n") {
			fmt.Fprintf(logOutput, "\n")
		}
	}
}

// DebugLog writes a message tagged with the flag name when that debug flag is enabled
func DebugLog(flag string, format string, args ...interface{}) {
	if !IsDebugEnabled(flag) {
		return
	}
	fmt.Fprintf(logOutput, "[%s] ", strings.ToUpper(flag))
	fmt.Fprintf(logOutput, format, args...)
	if !strings.HasSuffix(format, "\n") {
		fmt.Fprintf(logOutput, "\n")
	}
}

// KnownDebugFlags lists the debug flags the scanner, hasher and comparator emit
var KnownDebugFlags = []string{DebugScan, DebugHash, DebugCompare}

// SetDebugFlags sets the debug flags from a comma-separated string.
// Supports simple flags ("scan,hash"), key:value ("scan:true,hash:false")
// and "all" for every known flag.
func SetDebugFlags(flagsStr string) {
	debugFlags = parseDebugFlags(flagsStr)
}

// ValidateDebugFlags rejects flag names that no component logs under
func ValidateDebugFlags(flagsStr string) error {
	for name := range parseDebugFlags(flagsStr) {
		if !isKnownDebugFlag(name) {
			return fmt.Errorf("unknown debug flag: %s (supported: %s, %s)",
				name, strings.Join(KnownDebugFlags, ", "), DebugAll)
		}
	}
	return nil
}

func isKnownDebugFlag(name string) bool {
	for _, known := range KnownDebugFlags {
		if name == known {
			return true
		}
	}
	return false
}

func parseDebugFlags(flagsStr string) map[string]bool {
	flags := make(map[string]bool)
	for _, flag := range strings.Split(flagsStr, ",") {
		flag = strings.TrimSpace(flag)
		if flag == "" {
			continue
		}

		parts := strings.SplitN(flag, ":", 2)
		flagName := strings.ToLower(strings.TrimSpace(parts[0]))
		flagValue := true

		if len(parts) > 1 {
			switch strings.ToLower(strings.TrimSpace(parts[1])) {
			case "false", "0", "no", "off":
				flagValue = false
			}
		}

		if flagName == DebugAll {
			for _, known := range KnownDebugFlags {
				flags[known] = flagValue
			}
			continue
		}
		flags[flagName] = flagValue
	}
	return flags
}

// IsDebugEnabled returns true if the specified debug flag is enabled
func IsDebugEnabled(flag string) bool {
	if debugFlags == nil {
		return false
	}
	return debugFlags[strings.ToLower(flag)]
}
