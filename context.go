package confirm

import (
	goerrors "github.com/goliatone/go-errors"
)

// Context is an immutable key/value bag carrying whatever the initiating
// action needs to resume later, e.g. the event being joined. The coordinator
// threads it from issuance to redemption without inspecting its contents.
type Context struct {
	keys   []string
	values map[string]any
}

// NewContext builds a Context from a balanced key/value list:
//
//	ctx, err := confirm.NewContext("event", evt, "seats", 2)
//
// An odd number of arguments, or a key that is not a string, is a
// construction-time error.
func NewContext(pairs ...any) (Context, error) {
	if len(pairs)%2 != 0 {
		return Context{}, ErrUnbalancedContext
	}

	c := Context{
		keys:   make([]string, 0, len(pairs)/2),
		values: make(map[string]any, len(pairs)/2),
	}

	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return Context{}, goerrors.New("context keys must be strings", goerrors.CategoryBadInput).
				WithTextCode(TextCodeUnbalancedContext).
				WithMetadata(map[string]any{"position": i})
		}
		if _, seen := c.values[key]; !seen {
			c.keys = append(c.keys, key)
		}
		c.values[key] = pairs[i+1]
	}

	return c, nil
}

// MustContext is NewContext for literal pair lists; it panics on unbalanced
// input so misuse fails at construction, not at redemption.
func MustContext(pairs ...any) Context {
	c, err := NewContext(pairs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Value returns the value stored under key.
func (c Context) Value(key string) (any, bool) {
	if c.values == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return v, ok
}

// String returns the value under key when it is a string, "" otherwise.
func (c Context) String(key string) string {
	v, ok := c.Value(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Keys returns the context keys in insertion order.
func (c Context) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of stored pairs.
func (c Context) Len() int {
	return len(c.keys)
}
