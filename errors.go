package wiretree

import "fmt"

// ConfigurationError reports a registration call made with an invalid
// shape, such as a non-struct prototype or an unknown field name. It is
// surfaced immediately at registration time and never swallowed.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid registration: %s", e.Reason)
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
