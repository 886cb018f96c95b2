package resolver

import (
	"fmt"
	"sort"
	"strings"

	"codeberg.org/mutker/erraruga/pkg/apperror"
	"github.com/spf13/cast"
)

const fallbackHeader = "Unknown error.\n"

// Fallback renders e without any rule. It never fails:
//
//	Unknown error.
//	<code>: <message>
//	Context: <context>      (only when context is not blank)
//	Metadata:               (only when metadata is not empty)
//	<key>: <value>          (one line per entry, keys sorted)
//
// A nil e yields the header line alone.
func (r *Resolver) Fallback(e *apperror.Error, context string) string {
	return formatFallback(e, context)
}

func formatFallback(e *apperror.Error, context string) string {
	var sb strings.Builder
	sb.WriteString(fallbackHeader)

	if e == nil {
		return sb.String()
	}

	fmt.Fprintf(&sb, "%s: %s\n", e.Code(), e.Message())

	if strings.TrimSpace(context) != "" {
		fmt.Fprintf(&sb, "Context: %s\n", context)
	}

	md := e.Metadata()
	if len(md) == 0 {
		return sb.String()
	}

	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteString("Metadata:\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s: %s\n", k, formatValue(md[k]))
	}

	return sb.String()
}

// formatValue renders a metadata value in its canonical string form. Nil
// renders as an empty string.
func formatValue(v any) string {
	if v == nil {
		return ""
	}

	if s, err := cast.ToStringE(v); err == nil {
		return s
	}

	return fmt.Sprint(v)
}
