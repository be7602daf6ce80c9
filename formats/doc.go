// Package formats implements the supported data input/output formats.
//
// Each format registers a Reader and/or Writer factory under a short tag
// ("csv", "tsv", "xlsx", "sql") in a process-wide registry.  Lookups via
// GetReader/GetWriter construct a fresh strategy for every call:
//
//	        caller
//	          |
//	   GetReader(tag) ----> registry ----> strategy
//	          |                               |
//	          +---- Read(source, options) <---+
//	                          |
//	                 external library call
//
// The two registries are independent; a tag may support only one of the two
// roles.  New formats can be plugged in at any time with RegisterReader and
// RegisterWriter without touching this package.
package formats
