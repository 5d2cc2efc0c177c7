package main

import (
	"fmt"
	"strconv"
	"strings"

	"prism/vmath/vec3"

	"github.com/spf13/pflag"
)

// vec3Value is a pflag.Value holding a comma-separated x,y,z triple.
type vec3Value vec3.T

var _ pflag.Value = (*vec3Value)(nil)

func newVec3Value(def vec3.T, p *vec3.T) *vec3Value {
	*p = def
	return (*vec3Value)(p)
}

func (v *vec3Value) String() string {
	parts := make([]string, 3)
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (v *vec3Value) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("want x,y,z, got %q", s)
	}
	var out vec3.T
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("while parsing component %d of %q: %w", i, s, err)
		}
		out[i] = x
	}
	*v = vec3Value(out)
	return nil
}

func (v *vec3Value) Type() string {
	return "vec3"
}
