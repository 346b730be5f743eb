package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/resew-dev/resew/internal/model"
)

func applyResult(t *testing.T, buf string, res Result) string {
	t.Helper()

	out, _, err := Apply(buf, res.Replacements)
	require.NoError(t, err)

	return out
}

func TestDeclAppend(t *testing.T) {
	policy := DeclAppend{Opts: DefaultParamOptions()}

	t.Run("empty parameter list gets bare parameter", func(t *testing.T) {
		buf := "public async Task FooAsync()\n{\n}\n"

		res := policy.Rewrite("a.cs", buf)
		require.Len(t, res.Replacements, 1)

		out := applyResult(t, buf, res)
		assert.Equal(t, "public async Task FooAsync(CancellationToken cancellationToken = default)\n{\n}\n", out)
	})

	t.Run("existing parameters get comma-separated append", func(t *testing.T) {
		buf := "Task BarAsync(int id, string name)"

		out := applyResult(t, buf, policy.Rewrite("a.cs", buf))
		assert.Equal(t, "Task BarAsync(int id, string name, CancellationToken cancellationToken = default)", out)
	})

	t.Run("trailing whitespace trimmed before append", func(t *testing.T) {
		buf := "Task BazAsync(int id )"

		out := applyResult(t, buf, policy.Rewrite("a.cs", buf))
		assert.Equal(t, "Task BazAsync(int id, CancellationToken cancellationToken = default)", out)
	})

	t.Run("marker type makes it a no-op", func(t *testing.T) {
		buf := "Task FooAsync(CancellationToken ct)"

		res := policy.Rewrite("a.cs", buf)
		assert.Empty(t, res.Replacements)
	})

	t.Run("second run proposes nothing", func(t *testing.T) {
		buf := "Task FooAsync(int id)"

		first := applyResult(t, buf, policy.Rewrite("a.cs", buf))

		res := policy.Rewrite("a.cs", first)
		assert.Empty(t, res.Replacements)
	})

	t.Run("generic return type handled", func(t *testing.T) {
		buf := "ValueTask<List<int>> LoadAsync(int id)"

		res := policy.Rewrite("a.cs", buf)
		require.Len(t, res.Replacements, 1)
	})

	t.Run("unbalanced declaration audited as skipped", func(t *testing.T) {
		buf := "Task BrokenAsync(int id"

		res := policy.Rewrite("a.cs", buf)
		assert.Empty(t, res.Replacements)
		require.Len(t, res.Audit, 1)
		assert.Equal(t, m.StatusSkipped, res.Audit[0].Status)
		assert.Equal(t, "BrokenAsync", res.Audit[0].Symbol)
	})

	t.Run("audit records resolved sites with line numbers", func(t *testing.T) {
		buf := "// header\nTask FooAsync()\n"

		res := policy.Rewrite("a.cs", buf)
		require.Len(t, res.Audit, 1)
		assert.Equal(t, m.StatusResolved, res.Audit[0].Status)
		assert.Equal(t, 2, res.Audit[0].Line)
		assert.Equal(t, m.Path("a.cs"), res.Audit[0].File)
	})

	t.Run("string containing Task keyword is not a declaration", func(t *testing.T) {
		buf := `var s = "Task Foo(";` + "\n"

		res := policy.Rewrite("a.cs", buf)
		// The anchor search may bite on the literal, but the extracted span is
		// unbalanced and lands in the audit, never in the replacements.
		assert.Empty(t, res.Replacements)
	})
}

func TestDeclAppend_MethodNames(t *testing.T) {
	policy := DeclAppend{Opts: DefaultParamOptions()}

	t.Run("collects migrated and unmigrated declarations", func(t *testing.T) {
		buf := "Task AAsync()\nTask BAsync(CancellationToken ct)\nvoid C()\n"

		names := policy.MethodNames(buf)
		assert.ElementsMatch(t, []string{"AAsync", "BAsync"}, names)
	})

	t.Run("deduplicates overloads", func(t *testing.T) {
		buf := "Task A(int x)\nTask A(string s)\n"

		names := policy.MethodNames(buf)
		assert.Equal(t, []string{"A"}, names)
	})
}

func TestCallAppend(t *testing.T) {
	opts := DefaultParamOptions()

	t.Run("appends argument to known call", func(t *testing.T) {
		policy := CallAppend{Opts: opts, Names: []string{"SaveAsync"}}
		buf := "await repo.SaveAsync(item);"

		out := applyResult(t, buf, policy.Rewrite("a.cs", buf))
		assert.Equal(t, "await repo.SaveAsync(item, cancellationToken);", out)
	})

	t.Run("empty argument list gets bare argument", func(t *testing.T) {
		policy := CallAppend{Opts: opts, Names: []string{"RunAsync"}}
		buf := "await RunAsync();"

		out := applyResult(t, buf, policy.Rewrite("a.cs", buf))
		assert.Equal(t, "await RunAsync(cancellationToken);", out)
	})

	t.Run("handle hint skips already migrated call", func(t *testing.T) {
		policy := CallAppend{Opts: opts, Names: []string{"SaveAsync"}}
		buf := "await repo.SaveAsync(item, cancellationToken);"

		res := policy.Rewrite("a.cs", buf)
		assert.Empty(t, res.Replacements)
	})

	t.Run("hint matches case-insensitively", func(t *testing.T) {
		policy := CallAppend{Opts: opts, Names: []string{"SaveAsync"}}
		buf := "await repo.SaveAsync(item, request.Token);"

		res := policy.Rewrite("a.cs", buf)
		assert.Empty(t, res.Replacements)
	})

	t.Run("declaration carrying marker type is skipped", func(t *testing.T) {
		// After the declaration pass the signature mentions the marker type,
		// so the call pass leaves it alone even though the name pattern bites.
		policy := CallAppend{Opts: opts, Names: []string{"SaveAsync"}}
		buf := "Task SaveAsync(int id, CancellationToken cancellationToken = default)"

		res := policy.Rewrite("a.cs", buf)
		assert.Empty(t, res.Replacements)
	})

	t.Run("comma inside string argument is one field", func(t *testing.T) {
		policy := CallAppend{Opts: opts, Names: []string{"LogAsync"}}
		buf := `await LogAsync("a,b", x);`

		out := applyResult(t, buf, policy.Rewrite("a.cs", buf))
		assert.Equal(t, `await LogAsync("a,b", x, cancellationToken);`, out)
	})

	t.Run("unknown names untouched", func(t *testing.T) {
		policy := CallAppend{Opts: opts, Names: []string{"SaveAsync"}}
		buf := "await DeleteAsync(item);"

		res := policy.Rewrite("a.cs", buf)
		assert.Empty(t, res.Replacements)
		assert.Empty(t, res.Audit)
	})

	t.Run("second run proposes nothing", func(t *testing.T) {
		policy := CallAppend{Opts: opts, Names: []string{"SaveAsync"}}
		buf := "await SaveAsync(item);"

		first := applyResult(t, buf, policy.Rewrite("a.cs", buf))

		res := policy.Rewrite("a.cs", first)
		assert.Empty(t, res.Replacements)
	})

	t.Run("nested call in arguments leaves outer append intact", func(t *testing.T) {
		policy := CallAppend{Opts: opts, Names: []string{"OuterAsync"}}
		buf := "await OuterAsync(Inner(a, b));"

		out := applyResult(t, buf, policy.Rewrite("a.cs", buf))
		assert.Equal(t, "await OuterAsync(Inner(a, b), cancellationToken);", out)
	})
}
