package jiratask

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Config is the jira-task rule value, e.g. {projectName: PROJ}.
// ProjectName stays untyped so a misconfigured value can be reported by type.
type Config struct {
	ProjectName any `yaml:"projectName" json:"projectName" mapstructure:"projectName"`
}

// DecodeConfig turns a raw rule value into a Config.
// Falsy values (nil, false, 0, "") disable the rule and yield nil.
// Other scalars carry no projectName and yield an empty Config.
func DecodeConfig(raw any) (*Config, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case *Config:
		return v, nil
	case Config:
		return &v, nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		var cfg Config
		if err := mapstructure.Decode(raw, &cfg); err != nil {
			return nil, fmt.Errorf("decoding %s config: %w", Name, err)
		}
		return &cfg, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return DecodeConfig(rv.Elem().Interface())
	default:
		if rv.IsZero() {
			return nil, nil
		}
		return &Config{}, nil
	}
}

// typeName names v's type the way JSON-shaped configs describe it.
func typeName(v any) string {
	if v == nil {
		return "undefined"
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Func:
		return "function"
	default:
		return "object"
	}
}
