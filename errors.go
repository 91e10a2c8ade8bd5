package goplugdep

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel anchors for the error taxonomy. Every typed resolution error
// matches ErrDependency via errors.Is; the specialized sentinels identify
// the subtype without unpacking the concrete struct.
var (
	// ErrDependency is the base kind for all resolution failures.
	ErrDependency = errors.New("dependency resolution failed")

	// ErrCircularDependency matches cycle failures, including self-dependencies.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrIncompatibleVersion matches install planning failures where no
	// available version satisfies a constraint.
	ErrIncompatibleVersion = errors.New("incompatible version")
)

// DependencyError is a generic resolution failure: the dependency depth
// limit was exceeded, or nodes were left unresolved after the topological
// sort (a defensive invariant check).
type DependencyError struct {
	// Plugin is the plugin under resolution when the failure occurred.
	Plugin string

	// Reason describes the failure.
	Reason string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("resolve %s: %s", e.Plugin, e.Reason)
}

func (e *DependencyError) Is(target error) bool {
	return target == ErrDependency
}

// CircularDependencyError is returned when cycle detection finds any cycle
// reachable from any graph node, including a plugin depending on itself.
type CircularDependencyError struct {
	// Plugin is the root plugin under resolution.
	Plugin string

	// Cycle is one detected cycle, as a sequence of plugin names.
	// May be empty when only the root is known.
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	if len(e.Cycle) == 0 {
		return fmt.Sprintf("circular dependency detected while resolving %s", e.Plugin)
	}
	return fmt.Sprintf("circular dependency detected while resolving %s: %s",
		e.Plugin, strings.Join(e.Cycle, " -> "))
}

func (e *CircularDependencyError) Is(target error) bool {
	return target == ErrCircularDependency || target == ErrDependency
}

// IncompatibleVersionError is returned during install planning when no
// available version of a required dependency satisfies its constraint.
type IncompatibleVersionError struct {
	// Dependency is the unsatisfiable dependency name.
	Dependency string

	// Spec is the constraint that could not be satisfied.
	Spec string

	// Available lists the versions the registry knows for the dependency.
	Available []string
}

func (e *IncompatibleVersionError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no version of %s available (required %s)", e.Dependency, e.Spec)
	}
	return fmt.Sprintf("no version of %s satisfies %s (available: %s)",
		e.Dependency, e.Spec, strings.Join(e.Available, ", "))
}

func (e *IncompatibleVersionError) Is(target error) bool {
	return target == ErrIncompatibleVersion || target == ErrDependency
}
