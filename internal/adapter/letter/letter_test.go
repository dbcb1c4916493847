package letter

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PivtoranisV/event-manager/internal/domain"
)

func testAttendee(id string) domain.Attendee {
	return domain.Attendee{
		Record:  domain.AttendeeRecord{ID: id, FirstName: "Allison"},
		Contact: domain.CleanedContact{Zipcode: "20010", Phone: "(615) 438-5000"},
		Legislators: domain.FoundOfficials([]domain.Official{
			{Name: "Eleanor Holmes Norton", URLs: []string{"https://norton.house.gov/"}},
		}),
	}
}

func TestRenderer_AllKeys(t *testing.T) {
	r, err := ParseRenderer("letter", `{{.ID}}|{{.Name}}|{{.Zipcode}}|{{.Phone}}|{{officialNames .Legislators}}`)
	require.NoError(t, err)

	out, err := r.RenderAttendee(testAttendee("42"))
	require.NoError(t, err)
	assert.Equal(t, "42|Allison|20010|(615) 438-5000|Eleanor Holmes Norton", out)
}

func TestRenderer_FallbackBranch(t *testing.T) {
	r, err := ParseRenderer("letter", `{{if .Legislators.Found}}found{{else}}{{.Legislators.Guidance}}{{end}}`)
	require.NoError(t, err)

	a := testAttendee("1")
	a.Legislators = domain.FallbackList(domain.ReasonTransport, errors.New("dial tcp"))

	out, err := r.RenderAttendee(a)
	require.NoError(t, err)
	assert.Equal(t, domain.FallbackGuidance, out)
}

func TestRenderer_UnknownKeyFails(t *testing.T) {
	r, err := ParseRenderer("letter", `Dear {{.Name}} {{.LastName}}`)
	require.NoError(t, err)

	_, err = r.RenderAttendee(testAttendee("1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LastName")
}

func TestRenderer_EscapesHTML(t *testing.T) {
	r, err := ParseRenderer("letter", `<h1>{{.Name}}</h1>`)
	require.NoError(t, err)

	a := testAttendee("1")
	a.Record.FirstName = "<script>x</script>"

	out, err := r.RenderAttendee(a)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestRenderer_ParseError(t *testing.T) {
	_, err := ParseRenderer("letter", `{{.Name`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse letter template")
}

func TestNewRenderer_SampleTemplate(t *testing.T) {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	path := filepath.Join(filepath.Dir(file), "..", "..", "..", "form_letter.html.tmpl")

	r, err := NewRenderer(path)
	require.NoError(t, err)

	out, err := r.RenderAttendee(testAttendee("7"))
	require.NoError(t, err)
	assert.Contains(t, out, "Thanks Allison")
	assert.Contains(t, out, "Eleanor Holmes Norton")
	assert.Contains(t, out, "https://norton.house.gov/")
	assert.Contains(t, out, "(615) 438-5000")

	a := testAttendee("8")
	a.Legislators = domain.FallbackList(domain.ReasonDisabled, nil)
	out, err = r.RenderAttendee(a)
	require.NoError(t, err)
	assert.Contains(t, out, "www.commoncause.org/take-action/find-elected-officials")
}

func TestNewRenderer_MissingFile(t *testing.T) {
	_, err := NewRenderer(filepath.Join(t.TempDir(), "missing.tmpl"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriter_CreatesDirectoryAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	w := NewWriter(dir)

	path, err := w.Save("1", "<p>hi</p>")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "thanks_1.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>\n", string(data))
}

func TestWriter_ReusesExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	_, err := w.Save("1", "a\n")
	require.NoError(t, err)
	_, err = w.Save("2", "b\n")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriter_SameIDOverwrites(t *testing.T) {
	w := NewWriter(t.TempDir())

	_, err := w.Save("5", "first letter, which is longer")
	require.NoError(t, err)
	path, err := w.Save("5", "second")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

func TestWriter_UnwritableDirectory(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "output")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o600))

	_, err := NewWriter(blocker).Save("1", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create output directory")
}

func TestWriter_RejectsPathTraversal(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "output")
	w := NewWriter(dir)

	for _, id := range []string{"/../../escaped", "../escaped", `..\escaped`, "a/b", "..", ""} {
		t.Run(id, func(t *testing.T) {
			path, err := w.Save(id, "x")
			require.ErrorIs(t, err, ErrInvalidID)
			assert.Empty(t, path)
		})
	}

	_, err := os.Stat(filepath.Join(root, "escaped.html"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "letter written outside the output directory")
	_, err = os.Stat(filepath.Join(filepath.Dir(root), "escaped.html"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "letter written outside the output directory")
	_, err = os.Stat(dir)
	assert.True(t, errors.Is(err, os.ErrNotExist), "rejected ids must not create the output directory")

	path, err := w.Save("42", "x")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "thanks_42.html"), path)
}
