// Package openapi converts entities to and from OpenAPI 3 documents using
// kin-openapi. Export describes the dynamic data API that serves an entity's
// records; ImportSchema turns a component schema back into field descriptors.
package openapi
