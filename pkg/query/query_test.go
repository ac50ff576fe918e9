package query_test

import (
	"testing"

	"github.com/JaimeStill/beadreader/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "analyses", "a").
		Project("id", "ID").
		Project("status", "Status").
		Project("advisory", "Advisory").
		Project("created_at", "CreatedAt")
}

func ptr(s string) *string { return &s }

const selectAll = "SELECT a.id, a.status, a.advisory, a.created_at FROM public.analyses a"

func TestProjectionMap(t *testing.T) {
	p := testProjection()

	if got, want := p.Table(), "public.analyses a"; got != want {
		t.Errorf("Table() = %q, want %q", got, want)
	}
	if got, want := p.Columns(), "a.id, a.status, a.advisory, a.created_at"; got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}

	tests := []struct {
		name     string
		viewName string
		want     string
		ok       bool
	}{
		{"mapped", "Status", "a.status", true},
		{"mapped timestamp", "CreatedAt", "a.created_at", true},
		{"unmapped", "unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Lookup(tt.viewName)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.viewName, got, ok, tt.want, tt.ok)
			}
		})
	}

	if got := p.Column("unknown"); got != "unknown" {
		t.Errorf("Column(unknown) = %q, want passthrough", got)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"ascending", "Status", []query.SortField{{Field: "Status"}}},
		{"descending", "-CreatedAt", []query.SortField{{Field: "CreatedAt", Descending: true}}},
		{
			"mixed with spaces and blanks",
			" Status ,, -CreatedAt ",
			[]query.SortField{{Field: "Status"}, {Field: "CreatedAt", Descending: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Errorf("ParseSortFields(%q) = %v, want nil", tt.input, got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilderBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection()).WhereEquals("Status", "ok")
	sql, args := b.BuildCount()

	want := "SELECT COUNT(*) FROM public.analyses a WHERE a.status = $1"
	if sql != want {
		t.Errorf("BuildCount() sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "ok" {
		t.Errorf("BuildCount() args = %v, want [ok]", args)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	t.Run("default sort", func(t *testing.T) {
		b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
		sql, args := b.BuildPage(2, 10)

		want := selectAll + " ORDER BY a.created_at DESC LIMIT 10 OFFSET 10"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("explicit sort overrides default", func(t *testing.T) {
		b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true}).
			OrderByFields(query.ParseSortFields("Status"))
		sql, _ := b.BuildPage(1, 20)

		want := selectAll + " ORDER BY a.status ASC LIMIT 20 OFFSET 0"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})

	t.Run("unmapped sort falls back to default", func(t *testing.T) {
		b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true}).
			OrderByFields(query.ParseSortFields("id; DROP TABLE analyses"))
		sql, _ := b.BuildPage(1, 20)

		want := selectAll + " ORDER BY a.created_at DESC LIMIT 20 OFFSET 0"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})
}

func TestBuilderBuildSingleOrNull(t *testing.T) {
	b := query.NewBuilder(testProjection()).
		WhereEquals("ID", "abc").
		WhereEquals("Status", nil)
	sql, args := b.BuildSingleOrNull()

	want := selectAll + " WHERE a.id = $1 LIMIT 1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args = %v, want [abc]", args)
	}
}

func TestBuilderWhereEqualsNilPointerSkipped(t *testing.T) {
	var status *string
	_, args := query.NewBuilder(testProjection()).WhereEquals("Status", status).BuildCount()
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereSearch(t *testing.T) {
	t.Run("numbers parameters across conditions", func(t *testing.T) {
		b := query.NewBuilder(testProjection()).
			WhereEquals("Status", "ok").
			WhereSearch(ptr("PLAYER"), "Advisory", "Status")
		sql, args := b.BuildCount()

		want := "SELECT COUNT(*) FROM public.analyses a WHERE a.status = $1 AND (a.advisory ILIKE $2 OR a.status ILIKE $3)"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 3 || args[1] != "%PLAYER%" {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("empty search skipped", func(t *testing.T) {
		_, args := query.NewBuilder(testProjection()).WhereSearch(ptr(""), "Advisory").BuildCount()
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})
}
