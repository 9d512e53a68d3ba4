package console

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/releasegate/relgate/pkg/logger"
)

var renderLog = logger.New("console:render")

// RenderStruct renders a Go struct as indented key-value lines using
// reflection and `console` struct tags. Slices of structs render as tables.
//
// Supported tags:
//   - `console:"title:My Section"` - section title for a nested struct/slice
//   - `console:"header:Name"`      - display name for a field or table column
//   - `console:"omitempty"`        - skip zero values
//   - `console:"default:-"`        - placeholder shown for zero values
//   - `console:"maxlen:40"`        - truncate long values with an ellipsis
//   - `console:"format:number"`    - compact number formatting (1.2k)
//   - `console:"-"`                - skip the field entirely
func RenderStruct(v any) string {
	renderLog.Printf("rendering %T", v)
	var output strings.Builder
	renderValue(reflect.ValueOf(v), "", &output, 0)
	return output.String()
}

func renderValue(val reflect.Value, title string, output *strings.Builder, depth int) {
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		renderStructValue(val, title, output, depth)
	case reflect.Slice, reflect.Array:
		renderSliceValue(val, title, output, depth)
	}
}

func writeTitle(title string, output *strings.Builder) {
	if title != "" {
		fmt.Fprintf(output, "%s\n", titleStyle.Render(title))
	}
}

// renderStructValue writes one key-value line per simple field, recursing
// into nested structs and slices with their own section titles.
func renderStructValue(val reflect.Value, title string, output *strings.Builder, depth int) {
	typ := val.Type()
	writeTitle(title, output)

	maxFieldLen := 0
	for i := range val.NumField() {
		tag := parseConsoleTag(typ.Field(i).Tag.Get("console"))
		if tag.skip || (tag.omitempty && isZeroValue(val.Field(i))) {
			continue
		}
		name := fieldDisplayName(typ.Field(i), tag)
		if len(name) > maxFieldLen {
			maxFieldLen = len(name)
		}
	}

	for i := range val.NumField() {
		field := val.Field(i)
		tag := parseConsoleTag(typ.Field(i).Tag.Get("console"))
		if tag.skip || (tag.omitempty && isZeroValue(field)) {
			continue
		}

		name := fieldDisplayName(typ.Field(i), tag)

		elem := field
		if field.Kind() == reflect.Ptr && !field.IsNil() {
			elem = field.Elem()
		}

		switch elem.Kind() {
		case reflect.Struct, reflect.Slice, reflect.Array:
			subTitle := tag.title
			if subTitle == "" {
				subTitle = name
			}
			renderValue(field, subTitle, output, depth+1)
		default:
			fmt.Fprintf(output, "  %-*s %s\n", maxFieldLen+1, name+":", formatFieldValue(field, tag))
		}
	}
}

// renderSliceValue renders a slice of structs as a table and any other slice
// as a bullet list.
func renderSliceValue(val reflect.Value, title string, output *strings.Builder, depth int) {
	if val.Len() == 0 {
		return
	}

	elemType := val.Type().Elem()
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}

	if elemType.Kind() == reflect.Struct {
		config := sliceTableConfig(val, title)
		output.WriteString(RenderTable(config))
		return
	}

	writeTitle(title, output)
	for i := range val.Len() {
		fmt.Fprintf(output, "  • %s\n", formatFieldValue(val.Index(i), consoleTag{}))
	}
}

// sliceTableConfig builds a TableConfig from a slice of structs, one column
// per renderable field.
func sliceTableConfig(val reflect.Value, title string) TableConfig {
	config := TableConfig{Title: title}

	elemType := val.Type().Elem()
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}

	var fieldIndices []int
	var fieldTags []consoleTag
	for i := range elemType.NumField() {
		field := elemType.Field(i)
		tag := parseConsoleTag(field.Tag.Get("console"))
		if tag.skip {
			continue
		}
		config.Headers = append(config.Headers, fieldDisplayName(field, tag))
		fieldIndices = append(fieldIndices, i)
		fieldTags = append(fieldTags, tag)
	}

	for i := range val.Len() {
		elem := val.Index(i)
		for elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				break
			}
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			continue
		}

		var row []string
		for j, fieldIdx := range fieldIndices {
			row = append(row, formatFieldValue(elem.Field(fieldIdx), fieldTags[j]))
		}
		config.Rows = append(config.Rows, row)
	}

	return config
}

// consoleTag is a parsed `console` struct tag.
type consoleTag struct {
	title      string
	header     string
	format     string
	defaultVal string
	maxLen     int
	omitempty  bool
	skip       bool
}

func parseConsoleTag(tag string) consoleTag {
	result := consoleTag{}
	if tag == "-" {
		result.skip = true
		return result
	}

	for part := range strings.SplitSeq(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "omitempty":
			result.omitempty = true
		default:
			if after, ok := strings.CutPrefix(part, "title:"); ok {
				result.title = after
			} else if after, ok := strings.CutPrefix(part, "header:"); ok {
				result.header = after
			} else if after, ok := strings.CutPrefix(part, "format:"); ok {
				result.format = after
			} else if after, ok := strings.CutPrefix(part, "default:"); ok {
				result.defaultVal = after
			} else if after, ok := strings.CutPrefix(part, "maxlen:"); ok {
				if n, err := strconv.Atoi(after); err == nil {
					result.maxLen = n
				}
			}
		}
	}

	return result
}

func fieldDisplayName(field reflect.StructField, tag consoleTag) string {
	if tag.header != "" {
		return tag.header
	}
	return field.Name
}

func isZeroValue(val reflect.Value) bool {
	if !val.IsValid() {
		return true
	}
	switch val.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return val.Len() == 0
	case reflect.Bool:
		return !val.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return val.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return val.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return val.IsNil()
	}
	return false
}

// formatFieldValue renders a single field, applying the tag's default,
// format, and truncation rules.
func formatFieldValue(val reflect.Value, tag consoleTag) string {
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return valueOrDefault("", tag)
		}
		val = val.Elem()
	}
	if !val.IsValid() {
		return valueOrDefault("", tag)
	}

	if isZeroValue(val) && val.Kind() == reflect.String {
		return valueOrDefault("", tag)
	}

	if tag.format == "number" {
		switch val.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return FormatNumber(int(val.Int()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return FormatNumber(int(val.Uint()))
		}
	}

	rendered := fmt.Sprintf("%v", val.Interface())
	if tag.maxLen > 3 && len(rendered) > tag.maxLen {
		rendered = rendered[:tag.maxLen-3] + "..."
	}
	return rendered
}

func valueOrDefault(rendered string, tag consoleTag) string {
	if rendered == "" {
		if tag.defaultVal != "" {
			return tag.defaultVal
		}
		return "-"
	}
	return rendered
}

// FormatNumber formats counts compactly: 950, 1.2k, 34.5k, 1.1M.
func FormatNumber(n int) string {
	f := float64(n)
	switch {
	case f < 1000:
		return strconv.Itoa(n)
	case f < 1000000:
		return trimTrailingZero(fmt.Sprintf("%.1fk", f/1000))
	default:
		return trimTrailingZero(fmt.Sprintf("%.1fM", f/1000000))
	}
}

func trimTrailingZero(s string) string {
	return strings.Replace(s, ".0", "", 1)
}
