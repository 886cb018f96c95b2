package apperror

import (
	"runtime"
	"strings"
)

// RuntimeContext names the function that calls it, as "Type.Method" for
// methods and "pkg.Func" for plain functions. It is meant to be passed as an
// Error context. An empty string is returned when the caller is unknown.
func RuntimeContext() string {
	pcs := make([]uintptr, 1)
	if runtime.Callers(2, pcs) == 0 {
		return ""
	}

	frame, _ := runtime.CallersFrames(pcs).Next()
	if frame.Function == "" {
		return ""
	}

	return shortFuncName(frame.Function)
}

// shortFuncName reduces a fully qualified runtime function name such as
// "example.com/app/svc.(*Service).Create.func1" to "Service.Create". The
// package ends at the first dot after the last slash; the runtime escapes dots
// inside that path element as "%2e".
func shortFuncName(name string) string {
	pkg, rest := name, ""
	slash := strings.LastIndex(name, "/")
	if i := strings.Index(name[slash+1:], "."); i >= 0 {
		pkg, rest = name[:slash+1+i], name[slash+2+i:]
	}
	pkg = strings.ReplaceAll(pkg[slash+1:], "%2e", ".")

	if rest == "" {
		return pkg
	}

	parts := strings.Split(rest, ".")
	for len(parts) > 1 && isClosureName(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}

	if len(parts) >= 2 {
		recv := strings.Trim(parts[0], "(*)")
		return recv + "." + strings.Join(parts[1:], ".")
	}

	return pkg + "." + parts[0]
}

func isClosureName(s string) bool {
	if !strings.HasPrefix(s, "func") {
		return s != "" && strings.Trim(s, "0123456789") == ""
	}

	return strings.Trim(strings.TrimPrefix(s, "func"), "0123456789") == ""
}
