package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/decorateall/option"
	"github.com/spf13/viper"
)

type (
	Options struct {
		prefix string
		file   string
	}

	// WithDefault is implemented by configs filling their unset values after loading.
	WithDefault interface {
		ApplyDefault()
	}

	// Policy is the serializable form of the decoration options.
	Policy struct {
		Deep          bool     `mapstructure:"deep"`
		Exclude       []string `mapstructure:"exclude"`
		ExcludePrefix string   `mapstructure:"exclude_prefix"`
	}
)

func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// WithConfigFile reads the file before applying env overrides. The format is
// deduced from the extension.
func WithConfigFile(path string) option.Option[Options] {
	return func(opts *Options) {
		opts.file = path
	}
}

func Load[T any](opts ...option.Option[Options]) (*T, error) {
	options := option.Build(&Options{}, opts...)

	v := viper.New()
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if options.file != "" {
		v.SetConfigFile(options.file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %s:\n\t%w", options.file, err)
		}
	}

	var vT T
	if typ := reflect.TypeOf(vT); typ != nil && typ.Kind() == reflect.Struct {
		bindEnvs(v, options.prefix, typ)
	}

	if err := v.Unmarshal(&vT); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if withDefault, ok := any(&vT).(WithDefault); ok {
		withDefault.ApplyDefault()
	}

	return &vT, nil
}

// LoadPolicy loads a Policy from the env vars <PREFIX>_DEEP, <PREFIX>_EXCLUDE
// (comma separated) and <PREFIX>_EXCLUDE_PREFIX.
func LoadPolicy(prefix string, opts ...option.Option[Options]) (*Policy, error) {
	return Load[Policy](append([]option.Option[Options]{WithEnvPrefix(prefix)}, opts...)...)
}

// ApplyDefault drops blank names from the exclusion list.
func (p *Policy) ApplyDefault() {
	exclude := make([]string, 0, len(p.Exclude))
	for _, name := range p.Exclude {
		if name = strings.TrimSpace(name); name != "" {
			exclude = append(exclude, name)
		}
	}
	p.Exclude = exclude
}

func bindEnvs(v *viper.Viper, envPrefix string, typ reflect.Type, parts ...string) {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		tv, ok := field.Tag.Lookup("mapstructure")
		if !ok {
			tv = field.Name
		}
		fieldTyp := field.Type
		if fieldTyp.Kind() == reflect.Pointer {
			fieldTyp = fieldTyp.Elem()
		}
		if fieldTyp.Kind() == reflect.Struct {
			bindEnvs(v, envPrefix, fieldTyp, append(parts, tv)...)
			continue
		}

		key := strings.Join(append(parts, tv), ".")
		envParts := make([]string, 0, len(parts)+1)
		for _, part := range append(parts, tv) {
			envParts = append(envParts, toScreamingSnakeCase(part))
		}
		_ = v.BindEnv(key, mergeWithEnvPrefix(envPrefix, strings.Join(envParts, "_")))
	}
}

func mergeWithEnvPrefix(envPrefix string, in string) string {
	if envPrefix != "" {
		return strings.ToUpper(envPrefix + "_" + in)
	}

	return strings.ToUpper(in)
}

// toScreamingSnakeCase turns a field or key name into its env var form:
// FooBar and foo_bar both give FOO_BAR.
func toScreamingSnakeCase(in string) string {
	in = strings.TrimSpace(in)

	sb := strings.Builder{}
	sb.Grow(len(in) + len(in)/3)

	for i, b := range []byte(in) {
		switch {
		case 'a' <= b && b <= 'z':
			sb.WriteByte(b - ('a' - 'A'))
		case 'A' <= b && b <= 'Z':
			if i > 0 && in[i-1] != '_' && in[i-1] != '-' && !isUpper(in[i-1]) {
				sb.WriteByte('_')
			}
			sb.WriteByte(b)
		case b == '_' || b == '-':
			if i > 0 {
				sb.WriteByte('_')
			}
		default:
			sb.WriteByte(b)
		}
	}

	return sb.String()
}

func isUpper(b byte) bool {
	return 'A' <= b && b <= 'Z'
}
