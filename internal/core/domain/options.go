package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Option is a single KEY=VALUE native-build definition.
type Option struct {
	Key   string
	Value string
}

// String renders the option back into KEY=VALUE form.
func (o Option) String() string { return o.Key + "=" + o.Value }

// ParseOption splits a KEY=VALUE pair. An empty value is legal, an empty key
// or a missing separator is not.
func ParseOption(pair string) (Option, error) {
	key, value, ok := strings.Cut(pair, "=")
	if !ok || key == "" {
		return Option{}, zerr.With(ErrMalformedOption, "option", pair)
	}
	return Option{Key: key, Value: value}, nil
}

// OptionSet accumulates options in insertion order. Re-adding a key with the
// same value is a no-op; re-adding it with a different value is rejected, so
// mutually exclusive configuration branches cannot silently overwrite each
// other. The zero value is ready to use.
type OptionSet struct {
	opts  []Option
	index map[string]int
}

// Add parses and appends KEY=VALUE pairs. On a conflict the set is left as it
// was before the conflicting pair.
func (s *OptionSet) Add(pairs ...string) error {
	for _, pair := range pairs {
		opt, err := ParseOption(pair)
		if err != nil {
			return err
		}
		if i, ok := s.index[opt.Key]; ok {
			if s.opts[i].Value == opt.Value {
				continue
			}
			err := zerr.With(ErrConflictingOption, "option_key", opt.Key)
			err = zerr.With(err, "existing", s.opts[i].Value)
			return zerr.With(err, "conflicting", opt.Value)
		}
		if s.index == nil {
			s.index = make(map[string]int)
		}
		s.index[opt.Key] = len(s.opts)
		s.opts = append(s.opts, opt)
	}
	return nil
}

// Get returns the value recorded for a key.
func (s *OptionSet) Get(key string) (string, bool) {
	i, ok := s.index[key]
	if !ok {
		return "", false
	}
	return s.opts[i].Value, true
}

// Len returns the number of distinct options.
func (s *OptionSet) Len() int { return len(s.opts) }

// All returns the options in insertion order. The slice is a copy.
func (s *OptionSet) All() []Option {
	out := make([]Option, len(s.opts))
	copy(out, s.opts)
	return out
}
