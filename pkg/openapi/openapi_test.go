package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/testsupport"
)

func postsEntity() model.Entity {
	maxTitle := 120
	entity := model.NewEntity("blog_posts", "Blog Posts")
	entity.APIPath = "posts"
	entity.SoftDelete = true
	entity.Fields = []model.FieldDescriptor{
		{Name: "title", Label: "Title", Type: model.FieldTypeString, ShowInForm: true, Validation: model.FieldValidation{Required: true, MaxLength: &maxTitle}},
		{Name: "status", Label: "Status", Type: model.FieldTypeSelect, DefaultValue: "draft", Options: []model.Option{{Label: "Draft", Value: "draft"}, {Label: "Published", Value: "published"}}, Order: 1},
		{Name: "author", Label: "Author", Type: model.FieldTypeReference, ReferenceConfig: &model.ReferenceConfig{Collection: "authors", DisplayField: "fullName"}, Order: 2},
		{Name: "contact", Label: "Contact", Type: model.FieldTypeEmail, Order: 3},
		{Name: "tags", Label: "Tags", Type: model.FieldTypeArray, Order: 4},
	}
	return entity
}

func TestExportPaths(t *testing.T) {
	doc, err := Export(context.Background(), postsEntity(), ExportOptions{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var paths []string
	for path := range doc.Paths.Map() {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	want := []string{
		"/{databaseId}/posts",
		"/{databaseId}/posts/query",
		"/{databaseId}/posts/{id}",
		"/{databaseId}/posts/{id}/hard",
		"/{databaseId}/posts/{id}/restore",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	collection := doc.Paths.Value("/{databaseId}/posts")
	if collection.Post.OperationID != "createBlogPosts" || collection.Get.OperationID != "listBlogPosts" {
		t.Fatalf("unexpected operation ids: %q %q", collection.Post.OperationID, collection.Get.OperationID)
	}
	if collection.Post.Responses.Value("201") == nil {
		t.Fatalf("create should answer 201")
	}

	var query []string
	for _, param := range collection.Get.Parameters {
		if param.Value.In == "query" {
			query = append(query, param.Value.Name)
		}
	}
	if diff := cmp.Diff([]string{"page", "limit", "search"}, query); diff != "" {
		t.Fatalf("list parameters mismatch (-want +got):\n%s", diff)
	}

	item := doc.Paths.Value("/{databaseId}/posts/{id}")
	if item.Get == nil || item.Patch == nil || item.Put == nil || item.Delete == nil {
		t.Fatalf("record path is missing operations: %+v", item)
	}
}

func TestExportSchemas(t *testing.T) {
	doc, err := Export(context.Background(), postsEntity(), ExportOptions{DatabaseID: "db1", Title: "Posts", ServerURL: "https://api.example.com"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if doc.Paths.Value("/db1/posts") == nil {
		t.Fatalf("expected fixed database segment")
	}
	if doc.Info.Title != "Posts" || len(doc.Servers) != 1 {
		t.Fatalf("options not applied: %+v", doc.Info)
	}

	input := doc.Components.Schemas["BlogPostsInput"].Value
	if diff := cmp.Diff([]string{"title"}, input.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if _, ok := input.Properties["_id"]; ok {
		t.Fatalf("input schema must not contain _id")
	}

	record := doc.Components.Schemas["BlogPosts"].Value
	for _, name := range []string{"_id", "createdAt", "updatedAt", "deletedAt", "title"} {
		if _, ok := record.Properties[name]; !ok {
			t.Fatalf("record schema missing %s", name)
		}
	}

	status := input.Properties["status"].Value
	if diff := cmp.Diff([]any{"draft", "published"}, status.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if got := input.Properties["contact"].Value.Format; got != "email" {
		t.Fatalf("contact format %q", got)
	}
	if limit := input.Properties["title"].Value.MaxLength; limit == nil || *limit != 120 {
		t.Fatalf("title maxLength not exported")
	}
}

func TestExportWithoutSoftDeleteHasNoRestore(t *testing.T) {
	entity := postsEntity()
	entity.SoftDelete = false
	doc, err := Export(context.Background(), entity, ExportOptions{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if doc.Paths.Value("/{databaseId}/posts/{id}/restore") != nil {
		t.Fatalf("restore path should be omitted")
	}
	if _, ok := doc.Components.Schemas["BlogPosts"].Value.Properties["deletedAt"]; ok {
		t.Fatalf("deletedAt should be omitted")
	}
}

func TestExportErrors(t *testing.T) {
	disabled := postsEntity()
	disabled.EnableAPI = false
	if _, err := Export(context.Background(), disabled, ExportOptions{}); !errors.Is(err, ErrAPIDisabled) {
		t.Fatalf("expected ErrAPIDisabled, got %v", err)
	}

	invalid := postsEntity()
	invalid.Fields = nil
	_, err := Export(context.Background(), invalid, ExportOptions{})
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestImportRoundTrip(t *testing.T) {
	entity := postsEntity()
	doc, err := Export(context.Background(), entity, ExportOptions{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	fields, err := ImportSchema(context.Background(), raw, "BlogPostsInput")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	got := make(map[string]model.FieldDescriptor, len(fields))
	var names []string
	for _, field := range fields {
		got[field.Name] = field
		names = append(names, field.Name)
	}
	if diff := cmp.Diff([]string{"author", "contact", "status", "tags", "title"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got["author"].Type != model.FieldTypeReference || got["author"].ReferenceConfig == nil || got["author"].ReferenceConfig.Collection != "authors" {
		t.Fatalf("reference not restored: %+v", got["author"])
	}
	if diff := cmp.Diff(entity.Fields[1].Options, got["status"].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if got["status"].DefaultValue != "draft" {
		t.Fatalf("default not restored: %v", got["status"].DefaultValue)
	}
	if !got["title"].Validation.Required || got["status"].Validation.Required {
		t.Fatalf("required flags not restored")
	}
}

func TestImportForeignDocument(t *testing.T) {
	raw := testsupport.MustReadFixture(t, filepath.Join("testdata", "bookstore.yaml"))

	fields, err := ImportSchema(context.Background(), []byte(raw), "Book")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	type row struct {
		Name       string
		Label      string
		Type       model.FieldType
		Required   bool
		Searchable bool
		Order      int
	}
	var rows []row
	for _, field := range fields {
		rows = append(rows, row{field.Name, field.Label, field.Type, field.Validation.Required, field.Searchable, field.Order})
	}
	want := []row{
		{"authorEmail", "Author Email", model.FieldTypeEmail, false, false, 0},
		{"available", "Available", model.FieldTypeBoolean, false, false, 1},
		{"genre", "Genre", model.FieldTypeSelect, false, false, 2},
		{"isbn", "Isbn", model.FieldTypeString, true, true, 3},
		{"keywords", "Keywords", model.FieldTypeArray, false, false, 4},
		{"metadata", "Metadata", model.FieldTypeJSON, false, false, 5},
		{"pages", "Pages", model.FieldTypeNumber, false, false, 6},
		{"published_on", "Published On", model.FieldTypeDate, false, false, 7},
		{"title", "Title", model.FieldTypeString, true, true, 8},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	if fields[3].Validation.Pattern != "^[0-9-]+$" {
		t.Fatalf("pattern not imported: %q", fields[3].Validation.Pattern)
	}
	if minimum := fields[6].Validation.Min; minimum == nil || *minimum != 1 {
		t.Fatalf("minimum not imported")
	}
	if diff := cmp.Diff([]model.Option{{Label: "Fiction", Value: "fiction"}, {Label: "History", Value: "history"}}, fields[2].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	names, err := SchemaNames(context.Background(), []byte(raw))
	if err != nil || len(names) != 1 || names[0] != "Book" {
		t.Fatalf("SchemaNames: %v, %v", names, err)
	}
}

func TestImportErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := ImportSchema(ctx, nil, "Book"); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}

	raw := testsupport.MustReadFixture(t, filepath.Join("testdata", "bookstore.yaml"))
	if _, err := ImportSchema(ctx, []byte(raw), "Author"); !errors.Is(err, ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := ImportSchema(cancelled, []byte(raw), "Book"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSchemaName(t *testing.T) {
	if got := SchemaName("blog_posts"); got != "BlogPosts" {
		t.Fatalf("SchemaName: %q", got)
	}
	if got := InputSchemaName("users"); got != "UsersInput" {
		t.Fatalf("InputSchemaName: %q", got)
	}
}
