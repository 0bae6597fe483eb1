package format

import (
	"fmt"
	"reflect"
)

// TextFormatter handles simple text output formatting
type TextFormatter struct{}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format formats data as simple text
func (f *TextFormatter) Format(data interface{}) error {
	if data == nil {
		fmt.Println("No data")
		return nil
	}

	if s, ok := data.(string); ok {
		fmt.Println(s)
		return nil
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			fmt.Println("No data")
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice:
		return f.formatSlice(v)
	case reflect.Struct:
		f.printStruct(v, "")
		return nil
	default:
		fmt.Printf("%v\n", data)
		return nil
	}
}

// formatSlice prints each element as an indented block.
func (f *TextFormatter) formatSlice(v reflect.Value) error {
	if v.Len() == 0 {
		fmt.Println("No data")
		return nil
	}

	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			fmt.Println()
		}
		elem := v.Index(i)
		if elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		if elem.Kind() == reflect.Struct {
			fmt.Printf("Item %d:\n", i+1)
			f.printStruct(elem, "  ")
		} else {
			fmt.Printf("%v\n", elem.Interface())
		}
	}
	return nil
}

// printStruct prints exported fields as "Name: value" lines.
func (f *TextFormatter) printStruct(v reflect.Value, indent string) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		value := v.Field(i)
		if value.Kind() == reflect.Ptr && value.IsNil() {
			continue
		}
		if value.Kind() == reflect.Ptr {
			value = value.Elem()
		}
		fmt.Printf("%s%s: %v\n", indent, headerName(field), value.Interface())
	}
}
