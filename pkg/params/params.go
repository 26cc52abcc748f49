// Package params describes profile parameters and binds user supplied
// values to them.
//
// Values come from a viper instance: defaults are installed from the
// definitions, and whatever the caller merged in (parameter files,
// environment, --set flags, JSON bodies) overrides them.
package params

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ErrDecode wraps errors caused by values that do not fit the parameter types.
var ErrDecode = errors.New("failed to decode parameters")

type Type string

const (
	Integer    Type = "integer"
	String     Type = "string"
	Boolean    Type = "boolean"
	Image      Type = "image"
	StructList Type = "struct-list"
)

// Choice is one of the values offered for a parameter.
type Choice struct {
	Value string `json:"value" yaml:"value" toml:"value"`
	Label string `json:"label" yaml:"label" toml:"label"`
}

// Definition declares a single profile parameter.
type Definition struct {
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	LongDescription string      `json:"long_description,omitempty"`
	Type            Type        `json:"type"`
	Default         interface{} `json:"default"`
	Choices         []Choice    `json:"choices,omitempty"`
	Advanced        bool        `json:"advanced,omitempty"`
}

// Bind installs the default value of every definition in v.
func Bind(v *viper.Viper, defs []Definition) {
	for _, d := range defs {
		v.SetDefault(d.Name, d.Default)
	}
}

// Decode copies the values bound in v into out, a pointer to a struct with
// mapstructure tags. Strings are converted to the field types, so values
// from the command line or the environment decode like typed ones.
// Fractional numbers are not truncated into integer fields.
func Decode(v *viper.Viper, out interface{}) error {
	err := v.Unmarshal(out, func(c *mapstructure.DecoderConfig) {
		c.WeaklyTypedInput = true
		c.ErrorUnused = false
		c.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			wholeNumberHook,
		)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// wholeNumberHook rejects floats with a fractional part for integer targets.
// JSON and YAML numbers arrive as floats.
func wholeNumberHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}

	var f float64
	switch n := data.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	default:
		return data, nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not a whole number", data)
	}
	return data, nil
}

// SetAll applies "key=value" assignments, as given by --set on the command
// line, on top of everything else bound in v.
func SetAll(v *viper.Viper, assignments []string) error {
	for _, a := range assignments {
		parts := strings.SplitN(a, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return fmt.Errorf("invalid assignment '%s', expected key=value", a)
		}
		v.Set(strings.TrimSpace(parts[0]), parts[1])
	}
	return nil
}

// Unknown returns the keys set in v that are not declared in defs.
func Unknown(v *viper.Viper, defs []Definition) []string {
	known := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		known[strings.ToLower(d.Name)] = struct{}{}
	}

	var result []string
	for _, k := range v.AllKeys() {
		top := strings.SplitN(k, ".", 2)[0]
		if _, ok := known[top]; !ok {
			result = append(result, k)
		}
	}

	sort.Strings(result)
	return result
}

// Defaults returns the default value of every definition keyed by name.
func Defaults(defs []Definition) map[string]interface{} {
	result := make(map[string]interface{}, len(defs))
	for _, d := range defs {
		result[d.Name] = d.Default
	}
	return result
}
