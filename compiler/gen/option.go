package gen

import (
	"errors"

	"github.com/Leylan24/drift/compiler/load"
)

// Option configures a resolution and generation run.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the output package import path.
// For example: "github.com/org/project/db".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithOptions sets the build options loaded from the options file.
func WithOptions(opts load.Options) Option {
	return func(c *Config) error {
		c.Options = opts
		return nil
	}
}

// WithMutableClasses makes generated row classes mutable.
func WithMutableClasses(mutable bool) Option {
	return func(c *Config) error {
		c.Options.MutableClasses = mutable
		return nil
	}
}

// WithCompanions controls generation of companion builders alongside
// row classes.
func WithCompanions(companions bool) Option {
	return func(c *Config) error {
		c.Options.Companions = companions
		return nil
	}
}

// WithModular splits output into one file per schema source instead of
// a single combined file.
func WithModular(modular bool) Option {
	return func(c *Config) error {
		c.Options.Modular = modular
		return nil
	}
}

// WithHooks adds generation hooks.
// Hooks are called around code generation, outermost first.
func WithHooks(hooks ...Hook) Option {
	return func(c *Config) error {
		c.Hooks = append(c.Hooks, hooks...)
		return nil
	}
}

// WithGenerator sets a custom code generator.
// If not set, the default file generator is used.
func WithGenerator(g Generator) Option {
	return func(c *Config) error {
		if g == nil {
			return NewConfigError("Generator", nil, "generator cannot be nil")
		}
		c.Generator = g
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{Options: load.DefaultOptions()}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
