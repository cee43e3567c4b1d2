package conf

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeyAnnotation stores the settings key a flag feeds
const flagKeyAnnotation = "roostlogger_settings_key"

// Context ties the viper instance commands bind their flags to with the
// settings loaded from it.
type Context struct {
	Viper      *viper.Viper
	ConfigFile string
	Settings   *Settings
}

// NewContext returns a context whose viper instance holds the defaults
func NewContext() *Context {
	return &Context{Viper: New()}
}

// Load reads the config file and flags into ctx.Settings and validates them
func (ctx *Context) Load(flags *pflag.FlagSet) error {
	if err := BindFlags(ctx.Viper, flags); err != nil {
		return err
	}
	settings, err := Load(ctx.Viper, ctx.ConfigFile)
	if err != nil {
		return err
	}
	if err := ValidateSettings(settings); err != nil {
		return err
	}
	ctx.Settings = settings
	return nil
}

// BindFlag marks flag name in fs as the command line source of key.
// The binding takes effect when BindFlags is called on the parsed set.
func BindFlag(fs *pflag.FlagSet, name, key string) {
	if err := fs.SetAnnotation(name, flagKeyAnnotation, []string{key}); err != nil {
		panic(fmt.Sprintf("conf: binding unknown flag %q", name))
	}
}

// BindFlags binds every marked flag in fs to v. Commands call this with the
// flag set of the command actually being run, so sibling commands may reuse
// flag names for different keys.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		keys, ok := f.Annotations[flagKeyAnnotation]
		if !ok || len(keys) == 0 || bindErr != nil {
			return
		}
		if err := v.BindPFlag(keys[0], f); err != nil {
			bindErr = fmt.Errorf("error binding flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}
