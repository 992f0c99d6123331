// Package jsonutil reads loosely typed JSON payloads field by field, so one
// odd value degrades to nil instead of failing the whole document.
package jsonutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/antonholmquist/jason"

	"flightlog-reconciler/pkg/utils"
)

// Objects decodes body as an array of objects. When body is an object the
// array is taken from key. Array entries that are not objects are dropped.
func Objects(body []byte, key string) ([]*jason.Object, error) {
	v, err := jason.NewValueFromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var items []*jason.Value
	if obj, objErr := v.Object(); objErr == nil {
		if key == "" {
			return nil, fmt.Errorf("expected a JSON array, got an object")
		}
		items, err = obj.GetValueArray(key)
		if err != nil {
			return nil, fmt.Errorf("response has no %q array: %w", key, err)
		}
	} else if items, err = v.Array(); err != nil {
		return nil, fmt.Errorf("expected a JSON array: %w", err)
	}

	objs := make([]*jason.Object, 0, len(items))
	for _, item := range items {
		if o, err := item.Object(); err == nil {
			objs = append(objs, o)
		}
	}
	return objs, nil
}

// String returns the value at keys as a trimmed string. Numbers are kept in
// their JSON spelling. Missing, null, blank and non-scalar values give nil.
func String(obj *jason.Object, keys ...string) *string {
	v, err := obj.GetValue(keys...)
	if err != nil {
		return nil
	}
	if s, err := v.String(); err == nil {
		return utils.NonEmpty(s)
	}
	if n, err := v.Number(); err == nil {
		return utils.StringPtr(n.String())
	}
	return nil
}

// Int returns the value at keys as an int, accepting numeric strings.
func Int(obj *jason.Object, keys ...string) *int {
	v, err := obj.GetValue(keys...)
	if err != nil {
		return nil
	}
	if n, err := v.Int64(); err == nil {
		return utils.IntPtr(int(n))
	}
	if s, err := v.String(); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return utils.IntPtr(n)
		}
	}
	return nil
}
