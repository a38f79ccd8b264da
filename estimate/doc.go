// Package estimate holds the pure schedule-resolution functions: current and
// next stop by wall-clock time and coarse position interpolation along a
// route shape. All functions are deterministic given (schedule, shape, now)
// and have no side effects, so they are safe to call from any handler against
// the immutable index.
package estimate
