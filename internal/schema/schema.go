// Package schema validates API request bodies against embedded JSON schemas
// before they are decoded into Go types.
package schema

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Request body schemas.
const (
	Progress = "progress"
	Answer   = "answer"
	Time     = "time"
	Register = "register"
	Login    = "login"
)

//go:embed schemas/*.json
var files embed.FS

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("request body does not match schema")

// compiled caches compiled schemas by name.
var compiled sync.Map // map[string]*jsonschema.Schema

// Validate checks raw against the named schema.
func Validate(name string, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrInvalid, err)
	}

	sch, err := get(name)
	if err != nil {
		return err
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func get(name string) (*jsonschema.Schema, error) {
	if cached, ok := compiled.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	data, err := files.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", name, err)
	}
	var def any
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}

	compiled.Store(name, sch)
	return sch, nil
}
