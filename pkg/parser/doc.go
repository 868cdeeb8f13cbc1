// Package parser decodes raw dive buffers into fields and samples.
//
// A Session binds one family Backend to one dive buffer. The buffer is held
// by reference; the caller must keep it unchanged while the session uses it.
// Queries on an unbound or undersized buffer fail with status.DataFormat
// before any byte is read.
//
//	s, _ := registry.NewParser(device.TypeShearwaterPredator)
//	s.SetData(dive)
//	when, _ := s.DateTime()
//	v, _ := s.Field(parser.FieldMaxDepth, 0)
//	depth := v.(parser.MaxDepth).Meters
//	s.Samples(func(smp parser.Sample) bool {
//	    ...
//	    return true
//	})
//
// Field values, samples and events are closed sum types: switch on the
// concrete type.
package parser
