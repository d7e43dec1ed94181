package content

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	authorsYAML = `
- id: jane
  name: Jane Doe
  bio: Platform engineer.
  social:
    github: https://github.com/jane
- id: sam
`
	categoriesYAML = `
- id: kubernetes
  name: Kubernetes
  color: blue
- id: ci-cd
`
	tagsYAML = `
- id: k8s
  name: K8s
- id: helm
- id: terraform
  name: Terraform
  slug: tf
`
	projectsYAML = `
- title: Bank Platform Migration
  client: Acme Bank
  industry: Finance
  technologies: [aws, terraform]
  publishedAt: 2023-02-01
  completedAt: 2023-05-01
- slug: retail-observability
  title: Retail Observability
  publishedAt: 2024-03-01
  status: in-progress
`
)

func postFile(frontmatter, body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("---\n" + frontmatter + "---\n" + body)}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"authors.yaml":    {Data: []byte(authorsYAML)},
		"categories.yaml": {Data: []byte(categoriesYAML)},
		"tags.yaml":       {Data: []byte(tagsYAML)},
		"projects.yaml":   {Data: []byte(projectsYAML)},
		"posts/first.md": postFile(
			"title: First Post\npublishedAt: 2023-01-01\nauthor: jane\ncategory: kubernetes\ntags: [k8s]\n",
			"## Setup\n\nHello there.\n"),
		"posts/second.md": postFile(
			"title: Second Post\npublishedAt: 2023-06-01\nauthor: sam\ncategory: ci-cd\ntags: [helm, k8s]\n",
			"Body of the second post.\n"),
		"posts/third.markdown": postFile(
			"title: Third Post\nslug: the-third\npublishedAt: 2024-01-01\nupdatedAt: 2024-02-01\nauthor: jane\ncategory: kubernetes\ntags: [terraform]\nfeatured: true\n",
			"Third body.\n"),
		"posts/wip.md": postFile(
			"title: Work in Progress\npublishedAt: 2024-05-01\nauthor: jane\ncategory: kubernetes\ntags: [k8s]\ndraft: true\n",
			"Not yet.\n"),
		"posts/notes.txt": {Data: []byte("ignored")},
	}
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func loadTest(t *testing.T, fsys fstest.MapFS) *Library {
	t.Helper()
	lib, err := Load(fsys, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return lib
}

func slugs(posts []Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

func TestLoad(t *testing.T) {
	lib := loadTest(t, testFS())

	assert.Equal(t, []string{"the-third", "second", "first"}, slugs(lib.Posts()))
	assert.Equal(t, []string{"wip", "the-third", "second", "first"}, slugs(lib.AllPosts()))
	assert.Equal(t, fixedNow, lib.LoadedAt())
	assert.Len(t, lib.Routes(), 16)

	p, err := lib.Post("the-third")
	require.NoError(t, err)
	assert.True(t, p.Featured)
	assert.Equal(t, "posts/third.markdown", p.Source)
	assert.Equal(t, "tf", p.Tags[0].Slug)

	second, err := lib.Post("second")
	require.NoError(t, err)
	assert.Equal(t, "Sam", second.Author.Name, "name derived from id")
	assert.Equal(t, "Ci Cd", second.Category.Name)
	assert.Equal(t, "ci-cd", second.Category.Slug)
}

func TestLoadNotFound(t *testing.T) {
	lib := loadTest(t, testFS())

	_, err := lib.Post("wip")
	assert.ErrorIs(t, err, ErrNotFound, "drafts are not addressable")
	_, err = lib.Post("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = lib.Project("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadProjects(t *testing.T) {
	lib := loadTest(t, testFS())
	projects := lib.Projects()
	require.Len(t, projects, 2)

	bank := projects[0]
	assert.Equal(t, "bank-platform-migration", bank.Slug)
	assert.Equal(t, "completed", bank.Status)
	assert.Equal(t, []string{"aws", "terraform"}, bank.Technologies)
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), bank.CompletedAt)

	retail, err := lib.Project("retail-observability")
	require.NoError(t, err)
	assert.Equal(t, "in-progress", retail.Status)
	assert.Equal(t, retail.PublishedAt, retail.CompletedAt, "completedAt falls back to publishedAt")
}

func TestLoadTagCountsIgnoreDrafts(t *testing.T) {
	lib := loadTest(t, testFS())
	counts := map[string]int{}
	for _, tag := range lib.Tags() {
		counts[tag.ID] = tag.Count
	}
	assert.Equal(t, map[string]int{"k8s": 2, "helm": 1, "terraform": 1}, counts)
	assert.Equal(t, "k8s", lib.Tags()[0].ID, "most used first")

	second, err := lib.Post("second")
	require.NoError(t, err)
	for _, tag := range second.Tags {
		assert.Equal(t, counts[tag.ID], tag.Count, "post tag %s carries the usage count", tag.ID)
	}
	assert.Equal(t, 2, lib.Posts()[1].Tags[1].Count)
}

func TestLoadEmptyTree(t *testing.T) {
	lib := loadTest(t, fstest.MapFS{})
	assert.Empty(t, lib.Posts())
	assert.Empty(t, lib.Projects())
}

func TestLoadIntegrityErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(fstest.MapFS)
		kind   IntegrityKind
	}{
		{
			name: "missing publishedAt",
			mutate: func(fs fstest.MapFS) {
				fs["posts/bad.md"] = postFile("title: Bad\nauthor: jane\ncategory: kubernetes\n", "x")
			},
			kind: MissingField,
		},
		{
			name: "dangling tag",
			mutate: func(fs fstest.MapFS) {
				fs["posts/bad.md"] = postFile("title: Bad\npublishedAt: 2024-01-01\nauthor: jane\ncategory: kubernetes\ntags: [golang]\n", "x")
			},
			kind: DanglingReference,
		},
		{
			name: "duplicate post slug",
			mutate: func(fs fstest.MapFS) {
				fs["posts/copy.md"] = postFile("title: Copy\nslug: first\npublishedAt: 2024-01-01\nauthor: jane\ncategory: kubernetes\n", "x")
			},
			kind: DuplicateSlug,
		},
		{
			name: "duplicate author id",
			mutate: func(fs fstest.MapFS) {
				fs["authors.yaml"] = &fstest.MapFile{Data: []byte("- id: jane\n- id: jane\n- id: sam\n")}
			},
			kind: DuplicateSlug,
		},
		{
			name: "author without id",
			mutate: func(fs fstest.MapFS) {
				fs["authors.yaml"] = &fstest.MapFile{Data: []byte("- name: Nobody\n")}
			},
			kind: MissingField,
		},
		{
			name: "project without dates",
			mutate: func(fs fstest.MapFS) {
				fs["projects.yaml"] = &fstest.MapFile{Data: []byte("- title: Undated\n")}
			},
			kind: MissingField,
		},
		{
			name: "duplicate project slug",
			mutate: func(fs fstest.MapFS) {
				fs["projects.yaml"] = &fstest.MapFile{Data: []byte("- title: Same\n  publishedAt: 2024-01-01\n- title: same\n  publishedAt: 2024-01-02\n")}
			},
			kind: DuplicateSlug,
		},
		{
			name: "route colliding with a post",
			mutate: func(fs fstest.MapFS) {},
			kind:   DuplicateURL,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := testFS()
			tt.mutate(fsys)
			var opts []Option
			if tt.kind == DuplicateURL {
				opts = append(opts, WithRoutes([]StaticRoute{{Path: "/blog/first", ChangeFrequency: Weekly, Priority: 0.5}}))
			}
			lib, err := Load(fsys, opts...)
			require.Error(t, err)
			assert.Nil(t, lib)
			assert.True(t, errors.Is(err, ErrIntegrity), "got %v", err)
			assert.True(t, IsIntegrity(err, tt.kind), "got %v", err)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	fsys := testFS()
	fsys["tags.yaml"] = &fstest.MapFile{Data: []byte("id: [unterminated")}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrIntegrity))
}

func TestRelated(t *testing.T) {
	lib := loadTest(t, testFS())
	first, err := lib.Post("first")
	require.NoError(t, err)

	related := lib.Related(first, 5)
	assert.Equal(t, []string{"the-third", "second"}, slugs(related))
	assert.Empty(t, lib.Related(first, 0))
}
