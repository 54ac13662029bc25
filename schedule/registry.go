// SPDX-License-Identifier: MIT

package schedule

import (
	"fmt"
	"slices"
)

type factory func(Sampler, Config) (Method, error)

var registry = map[string]factory{
	binarySearchName:  func(s Sampler, c Config) (Method, error) { return NewBinarySearch(s, c) },
	regressionName:    func(s Sampler, c Config) (Method, error) { return NewRegression(s, c) },
	ameurName:         func(s Sampler, c Config) (Method, error) { return NewAmeur(s, c) },
	iteratedAmeurName: func(s Sampler, c Config) (Method, error) { return NewIteratedAmeur(s, c) },
	statTestName:      func(s Sampler, c Config) (Method, error) { return NewStatTest(s, c) },
}

// New returns the method registered under name.
func New(name string, s Sampler, cfg Config) (Method, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("New(%q): %w", name, ErrUnknownMethod)
	}
	m, err := f(s, cfg)
	if err != nil {
		return nil, fmt.Errorf("New(%q): %w", name, err)
	}

	return m, nil
}

// Names lists the registered methods in lexical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)

	return names
}
