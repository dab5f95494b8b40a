package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
)

const maskedValue = "********"

func displayValue(c ConfigKey, value any) any {
	if c.Secret && value != nil && fmt.Sprint(value) != "" {
		return maskedValue
	}
	return value
}

func ConfigShow(w io.Writer, v *viper.Viper) {
	fmt.Fprintf(w,
		"%-25s %-32s %-25s %-25s %s\n",
		"JSON KEY",
		"ENV VAR",
		"CURRENT",
		"DEFAULT",
		"DESCRIPTION",
	)

	for _, c := range Registry {
		fmt.Fprintf(w,
			"%-25s %-32s %-25v %-25v %s\n",
			c.Key,
			EnvVar(c.Key),
			displayValue(c, v.Get(c.Key)),
			c.Default,
			c.Description,
		)
	}
}

func ConfigEnv(w io.Writer) {
	fmt.Fprintf(w, "%-32s %s\n", "ENV VAR", "JSON KEY")

	for _, c := range Registry {
		fmt.Fprintf(w, "%-32s %s\n", EnvVar(c.Key), c.Key)
	}
}

// ConfigGet prints the current value of key. Secrets are printed as is since
// the caller asked for them by name.
func ConfigGet(w io.Writer, v *viper.Viper, key string) error {
	c, ok := LookupKey(key)
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	fmt.Fprintln(w, v.Get(c.Key))
	return nil
}

// ConfigInit writes a config file skeleton holding every default.
func ConfigInit(w io.Writer) error {
	out := map[string]any{}
	for _, c := range Registry {
		nest(out, strings.Split(c.Key, "."), c.Default)
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func nest(out map[string]any, path []string, value any) {
	if len(path) == 1 {
		out[path[0]] = value
		return
	}
	child, ok := out[path[0]].(map[string]any)
	if !ok {
		child = map[string]any{}
		out[path[0]] = child
	}
	nest(child, path[1:], value)
}
