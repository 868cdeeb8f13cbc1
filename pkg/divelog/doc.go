// Package divelog converts parser sessions into a portable dive record.
//
// Build runs one pass over a bound parser.Session and collects the start
// time, every supported summary field, and the sample profile grouped into
// points (one point per time sample). The result can be written as indented
// JSON or as a CSV profile.
package divelog
