package httpx

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/baharkarakas/forohub/internal/api/validate"
	"github.com/baharkarakas/forohub/internal/models"
)

// ParsePageRequest reads page, size and sort=field[,asc|desc] from the query.
func ParsePageRequest(q url.Values) (models.PageRequest, error) {
	p := models.DefaultPageRequest()
	var errs validate.Errs

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, validate.ErrField{Field: "page", Msg: "must be a non-negative integer"})
		} else {
			p.Page = n
		}
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > models.MaxPageSize {
			errs = append(errs, validate.ErrField{Field: "size", Msg: "must be between 1 and " + strconv.Itoa(models.MaxPageSize)})
		} else {
			p.Size = n
		}
	}
	if v := q.Get("sort"); v != "" {
		field, dir, _ := strings.Cut(v, ",")
		switch f := models.SortField(strings.ToLower(strings.TrimSpace(field))); f {
		case models.SortByDate, models.SortByTitle, models.SortByID:
			p.Sort = f
		default:
			errs = append(errs, validate.ErrField{Field: "sort", Msg: "unknown sort field " + strconv.Quote(field)})
		}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			p.Desc = true
		default:
			errs = append(errs, validate.ErrField{Field: "sort", Msg: "direction must be asc or desc"})
		}
	}

	if len(errs) == 0 && p.Page > math.MaxInt/p.Size {
		errs = append(errs, validate.ErrField{Field: "page", Msg: "is too large"})
	}

	if len(errs) > 0 {
		return models.PageRequest{}, errs
	}
	return p, nil
}

type Link struct {
	Href string `json:"href"`
}

type PageMeta struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// PagedModel is a HAL-style page: items under _embedded[key], navigation
// under _links and counters under page.
type PagedModel struct {
	Embedded map[string]any  `json:"_embedded"`
	Links    map[string]Link `json:"_links"`
	Page     PageMeta        `json:"page"`
}

func NewPagedModel[T any](r *http.Request, key string, p models.Page[T]) PagedModel {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	total := p.TotalPages()
	cur := p.Request.Page

	links := map[string]Link{"self": {Href: pageURL(r, cur)}}
	if total > 0 {
		links["first"] = Link{Href: pageURL(r, 0)}
		links["last"] = Link{Href: pageURL(r, total-1)}
	}
	if cur > 0 && total > 0 {
		links["prev"] = Link{Href: pageURL(r, min(cur-1, total-1))}
	}
	if cur+1 < total {
		links["next"] = Link{Href: pageURL(r, cur+1)}
	}

	return PagedModel{
		Embedded: map[string]any{key: items},
		Links:    links,
		Page: PageMeta{
			Size:          p.Request.Size,
			TotalElements: p.Total,
			TotalPages:    total,
			Number:        cur,
		},
	}
}

// pageURL is the request URL with page swapped; other params are kept.
func pageURL(r *http.Request, page int) string {
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	if q.Get("size") == "" {
		q.Set("size", strconv.Itoa(models.DefaultPageSize))
	}
	u := url.URL{
		Scheme:   scheme(r),
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func scheme(r *http.Request) string {
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		return p
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
