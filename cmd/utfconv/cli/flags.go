package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/oy3o/utfconv"
)

// formValue is a pflag.Value resolving encoding names through the registry.
// "auto" leaves the form zero so it is detected from a byte order mark.
type formValue struct {
	name string
	form utfconv.Form
}

var _ pflag.Value = (*formValue)(nil)

func newFormValue(name string) *formValue {
	v := &formValue{}
	if err := v.Set(name); err != nil {
		panic(err)
	}
	return v
}

func (v *formValue) String() string { return v.name }
func (v *formValue) Type() string   { return "encoding" }

func (v *formValue) Set(name string) error {
	if strings.EqualFold(name, "auto") {
		v.name, v.form = "auto", utfconv.Form{}
		return nil
	}
	f, ok := utfconv.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q (known: %s)", utfconv.ErrUnknownEncoding, name, strings.Join(utfconv.Names(), ", "))
	}
	v.name, v.form = name, f
	return nil
}

func (v *formValue) auto() bool { return v.form.Encoding == 0 }
