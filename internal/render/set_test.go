package render

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/page"
)

func writeTemplates(t *testing.T, fs afero.Fs, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, name), []byte(body), 0o644))
	}
}

func TestLoad_MissingDirHasOnlyDefaults(t *testing.T) {
	set, err := Load(afero.NewMemMapFs(), "template", BuiltinDefaults())
	require.NoError(t, err)
	require.Equal(t, []string{page.DefaultIndexTemplate, page.DefaultPageTemplate}, set.Names())
}

func TestLoad_FilesAreNamedByBaseName(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeTemplates(t, fs, "template", map[string]string{
		"special.html": "S:{{.title}}",
		"notes.txt":    "ignored",
	})

	set, err := Load(fs, "template", BuiltinDefaults())
	require.NoError(t, err)
	require.True(t, set.Has("special.html"))
	require.True(t, set.Has("special"))
	require.False(t, set.Has("notes.txt"))
}

func TestLoad_UserTemplateReplacesBuiltin(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeTemplates(t, fs, "template", map[string]string{
		"default-page.html": "custom {{.content}}",
	})

	set, err := Load(fs, "template", BuiltinDefaults())
	require.NoError(t, err)
	require.NotContains(t, set.Names(), page.DefaultPageTemplate)

	var buf bytes.Buffer
	require.NoError(t, set.Render(&buf, page.DefaultPageTemplate, map[string]any{"content": "<p>x</p>"}))
	require.Equal(t, "custom <p>x</p>", buf.String())
}

func TestLoad_CustomDefaults(t *testing.T) {
	set, err := Load(afero.NewMemMapFs(), "template", Defaults{
		PageTemplate:  "P {{.title}}",
		IndexTemplate: "I {{len .posts}}",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, set.Render(&buf, page.DefaultIndexTemplate, map[string]any{"posts": []map[string]any{{}, {}}}))
	require.Equal(t, "I 2", buf.String())
}

func TestLoad_ParseErrorNamesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeTemplates(t, fs, "template", map[string]string{
		"broken.html": "{{ if }",
	})

	_, err := Load(fs, "template", BuiltinDefaults())
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryTemplate))
	require.Contains(t, err.Error(), "broken.html")
}

func TestRender_DoesNotEscape(t *testing.T) {
	set, err := Load(afero.NewMemMapFs(), "template", BuiltinDefaults())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, set.Render(&buf, page.DefaultPageTemplate, map[string]any{
		"title":   "a",
		"content": "<h1>Hi</h1>",
	}))
	require.Contains(t, buf.String(), "<body><h1>Hi</h1></body>")
}

func TestRender_DefaultIndexLinksPosts(t *testing.T) {
	set, err := Load(afero.NewMemMapFs(), "template", BuiltinDefaults())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, set.Render(&buf, page.DefaultIndexTemplate, map[string]any{
		"title":   "index",
		"content": "",
		"posts": []map[string]any{
			{"url": "blog/post.md", "title": "post"},
		},
	}))
	require.Contains(t, buf.String(), `<a href="/blog/post.html">post</a>`)
}

func TestRender_MissingTemplate(t *testing.T) {
	set, err := Load(afero.NewMemMapFs(), "template", BuiltinDefaults())
	require.NoError(t, err)

	err = set.Render(&bytes.Buffer{}, "nope.html", nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTemplateNotFound))
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryTemplate))
}

func TestRender_ExecutionError(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeTemplates(t, fs, "template", map[string]string{
		"bad.html": `{{template "missing"}}`,
	})
	set, err := Load(fs, "template", BuiltinDefaults())
	require.NoError(t, err)

	err = set.Render(&bytes.Buffer{}, "bad.html", map[string]any{})
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryTemplate))
}

func TestFuncMap(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeTemplates(t, fs, "template", map[string]string{
		"f.html": `{{trimSuffix ".md" .url}}|{{replaceAll .title "-" " "}}|{{lower .title}}|{{titleCase .title}}`,
	})
	set, err := Load(fs, "template", BuiltinDefaults())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, set.Render(&buf, "f.html", map[string]any{"url": "a/b.md", "title": "My-Post"}))
	require.Equal(t, "a/b|My Post|my-post|My Post", buf.String())
}

func TestTitleCase(t *testing.T) {
	require.Equal(t, "My First Post", titleCase("my-first_post"))
	require.Equal(t, "Index", titleCase("index"))
	require.Empty(t, titleCase(""))
}
