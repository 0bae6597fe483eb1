package format

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter renders typed model slices and structs as tables.
type TableFormatter struct {
	useColors bool
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(useColors bool) *TableFormatter {
	return &TableFormatter{useColors: useColors}
}

// Format formats data as a table
func (f *TableFormatter) Format(data interface{}) error {
	if data == nil {
		fmt.Println("No data to display")
		return nil
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			fmt.Println("No data to display")
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice:
		return f.formatSlice(v)
	case reflect.Struct:
		return f.formatStruct(v)
	default:
		fmt.Printf("%v\n", data)
		return nil
	}
}

// formatSlice renders a slice of structs as one row per element.
func (f *TableFormatter) formatSlice(v reflect.Value) error {
	if v.Len() == 0 {
		fmt.Println("No data to display")
		return nil
	}

	first := v.Index(0)
	if first.Kind() == reflect.Ptr {
		first = first.Elem()
	}
	if first.Kind() != reflect.Struct {
		for i := 0; i < v.Len(); i++ {
			fmt.Printf("%v\n", v.Index(i).Interface())
		}
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(f.headers(first.Type()))
	f.configureTable(table)

	for i := 0; i < v.Len(); i++ {
		row := v.Index(i)
		if row.Kind() == reflect.Ptr {
			row = row.Elem()
		}
		table.Append(f.cells(row))
	}

	table.Render()
	return nil
}

// formatStruct renders a single struct as a vertical property table.
func (f *TableFormatter) formatStruct(v reflect.Value) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	f.configureTable(table)

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		table.Append([]string{
			headerName(field),
			f.formatValue(v.Field(i).Interface()),
		})
	}

	table.Render()
	return nil
}

// headers derives column names from json tags, falling back to field names.
func (f *TableFormatter) headers(t reflect.Type) []string {
	headers := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			headers = append(headers, headerName(t.Field(i)))
		}
	}
	return headers
}

// cells renders one struct as a table row.
func (f *TableFormatter) cells(v reflect.Value) []string {
	t := v.Type()
	cells := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			cells = append(cells, f.formatValue(v.Field(i).Interface()))
		}
	}
	return cells
}

// configureTable sets up table appearance
func (f *TableFormatter) configureTable(table *tablewriter.Table) {
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	if f.useColors {
		table.SetHeaderColor(
			tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiBlueColor},
		)
	}
}

// headerName turns a struct field into a display header.
func headerName(field reflect.StructField) string {
	name := field.Name
	if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
		name = strings.Split(tag, ",")[0]
	}
	words := strings.Split(name, "_")
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// formatValue formats a value for display
func (f *TableFormatter) formatValue(value interface{}) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.2f", v)
	case float32:
		return fmt.Sprintf("%.2f", v)
	case bool:
		if f.useColors {
			if v {
				return color.GreenString("yes")
			}
			return color.RedString("no")
		}
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Ptr {
			if rv.IsNil() {
				return ""
			}
			return f.formatValue(rv.Elem().Interface())
		}
		return fmt.Sprintf("%v", v)
	}
}
