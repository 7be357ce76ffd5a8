// Package checkers provides quicktest checkers for JSON documents.
package checkers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	qt "github.com/frankban/quicktest"
	"github.com/yalp/jsonpath"
)

// JSONPathEquals checks that the JSON document got (a string or []byte) has
// the wanted value at path. Numbers decode as float64.
//
//	c.Assert(body, checkers.JSONPathEquals("$.total"), float64(1))
func JSONPathEquals(path string) qt.Checker {
	return &jsonPathChecker{path: path}
}

// JSONPathLen checks that the array or object at path has the wanted length.
//
//	c.Assert(body, checkers.JSONPathLen("$.events"), 6)
func JSONPathLen(path string) qt.Checker {
	return &jsonPathChecker{path: path, length: true}
}

type jsonPathChecker struct {
	path   string
	length bool
}

func (c *jsonPathChecker) ArgNames() []string {
	return []string{"got", "want"}
}

func (c *jsonPathChecker) Check(got any, args []any, note func(key string, value any)) error {
	doc, err := decode(got)
	if err != nil {
		return qt.BadCheckf("%s", err)
	}
	note("path", c.path)

	value, err := jsonpath.Read(doc, c.path)
	if err != nil {
		return fmt.Errorf("cannot read path: %w", err)
	}
	note("value", value)

	if c.length {
		want, ok := args[0].(int)
		if !ok {
			return qt.BadCheckf("want length must be an int, got %T", args[0])
		}
		var n int
		switch v := value.(type) {
		case []any:
			n = len(v)
		case map[string]any:
			n = len(v)
		default:
			return fmt.Errorf("value at path is %T, not an array or object", value)
		}
		if n != want {
			return fmt.Errorf("value has length %d", n)
		}
		return nil
	}

	if !reflect.DeepEqual(value, args[0]) {
		return errors.New("value at path does not match")
	}
	return nil
}

func decode(got any) (any, error) {
	var raw []byte
	switch v := got.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	default:
		return nil, fmt.Errorf("got must be a JSON string or []byte, not %T", got)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("got is not valid JSON: %w", err)
	}
	return doc, nil
}
