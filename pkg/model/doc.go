// Package model defines the collection schema types shared by the parser,
// the entity file loader, the renderers and the HTTP service. FieldDescriptor
// mirrors the field payload the CMS backend persists, so values produced here
// can be posted as-is. Entity.Validate enforces the same rules the admin
// console applies before saving a schema; MergeFields implements the
// "skip names that already exist" policy used when generated fields are added
// to an entity that already has some.
package model
