package httpx

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/forohub/internal/api/validate"
	"github.com/baharkarakas/forohub/internal/models"
)

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    models.PageRequest
		wantErr bool
	}{
		{"defaults", "", models.DefaultPageRequest(), false},
		{"explicit", "page=2&size=5&sort=titulo,desc", models.PageRequest{Page: 2, Size: 5, Sort: models.SortByTitle, Desc: true}, false},
		{"field only", "sort=id", models.PageRequest{Size: 10, Sort: models.SortByID}, false},
		{"uppercase", "sort=FECHA,ASC", models.PageRequest{Size: 10, Sort: models.SortByDate}, false},
		{"negative page", "page=-1", models.PageRequest{}, true},
		{"size too big", "size=101", models.PageRequest{}, true},
		{"size not a number", "size=ten", models.PageRequest{}, true},
		{"unknown field", "sort=autor", models.PageRequest{}, true},
		{"bad direction", "sort=fecha,up", models.PageRequest{}, true},
		{"page overflows offset", "page=922337203685477581", models.PageRequest{}, true},
		{"page overflows with size", "page=99999999999999999&size=100", models.PageRequest{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			got, err := ParsePageRequest(q)
			if tt.wantErr {
				var errs validate.Errs
				assert.ErrorAs(t, err, &errs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPagedModel_Links(t *testing.T) {
	r := httptest.NewRequest("GET", "http://forum.test/topicos/buscar?curso=JAVA&page=1&size=2", nil)
	p := models.Page[string]{
		Items:   []string{"c", "d"},
		Total:   5,
		Request: models.PageRequest{Page: 1, Size: 2, Sort: models.SortByDate},
	}

	m := NewPagedModel(r, "topicos", p)

	assert.Equal(t, []string{"c", "d"}, m.Embedded["topicos"])
	assert.Equal(t, PageMeta{Size: 2, TotalElements: 5, TotalPages: 3, Number: 1}, m.Page)
	assert.Equal(t, "http://forum.test/topicos/buscar?curso=JAVA&page=1&size=2", m.Links["self"].Href)
	assert.Equal(t, "http://forum.test/topicos/buscar?curso=JAVA&page=0&size=2", m.Links["first"].Href)
	assert.Equal(t, "http://forum.test/topicos/buscar?curso=JAVA&page=0&size=2", m.Links["prev"].Href)
	assert.Equal(t, "http://forum.test/topicos/buscar?curso=JAVA&page=2&size=2", m.Links["next"].Href)
	assert.Equal(t, "http://forum.test/topicos/buscar?curso=JAVA&page=2&size=2", m.Links["last"].Href)
}

func TestNewPagedModel_Empty(t *testing.T) {
	r := httptest.NewRequest("GET", "/topicos", nil)
	m := NewPagedModel(r, "topicos", models.Page[string]{Request: models.DefaultPageRequest()})

	assert.Equal(t, []string{}, m.Embedded["topicos"])
	assert.Zero(t, m.Page.TotalPages)
	assert.Contains(t, m.Links, "self")
	assert.NotContains(t, m.Links, "next")
	assert.NotContains(t, m.Links, "prev")
	assert.NotContains(t, m.Links, "first")
}
