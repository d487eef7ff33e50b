/*
Package observability provides tools for monitoring the rivercross solver.

It includes Prometheus collectors bound to the solver's lifecycle hooks, a
structured-logging hook set, and Chain for combining several hook sets into one.
*/
package observability
