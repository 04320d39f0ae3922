package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type filter struct {
	column string
	op     string
	value  string
}

// QueryBuilder composes one request against a logical table. Filters are
// structural only; evaluation happens on the service side.
type QueryBuilder struct {
	client *Client
	table  string

	method     string
	selectCols string
	filters    []filter
	orGroups   []string
	order      string
	limit      int
	single     bool
	countExact bool
	body       any
	token      string
}

// Select sets the requested columns, including embedded relations such as
// "*, companies(id,name)".
func (q *QueryBuilder) Select(columns string) *QueryBuilder {
	if q.method == "" {
		q.method = http.MethodGet
	}
	q.selectCols = columns
	return q
}

// Count requests an exact total alongside the (possibly limited) page.
func (q *QueryBuilder) Count() *QueryBuilder {
	q.countExact = true
	return q
}

func (q *QueryBuilder) Eq(column, value string) *QueryBuilder {
	q.filters = append(q.filters, filter{column, "eq", value})
	return q
}

// Ilike matches case-insensitively; pattern uses % wildcards.
func (q *QueryBuilder) Ilike(column, pattern string) *QueryBuilder {
	q.filters = append(q.filters, filter{column, "ilike", pattern})
	return q
}

// Or adds a disjunction group in the service's condition syntax, e.g.
// "title.ilike.%go%,company.ilike.%go%".
func (q *QueryBuilder) Or(conditions string) *QueryBuilder {
	q.orGroups = append(q.orGroups, conditions)
	return q
}

func (q *QueryBuilder) Order(column string, ascending bool) *QueryBuilder {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.order = column + "." + dir
	return q
}

func (q *QueryBuilder) Limit(n int) *QueryBuilder {
	q.limit = n
	return q
}

// Single asserts exactly one row; zero rows yields an error with CodeNoRows.
func (q *QueryBuilder) Single() *QueryBuilder {
	q.single = true
	return q
}

func (q *QueryBuilder) Insert(rows any) *QueryBuilder {
	q.method = http.MethodPost
	q.body = rows
	return q
}

func (q *QueryBuilder) Update(patch any) *QueryBuilder {
	q.method = http.MethodPatch
	q.body = patch
	return q
}

func (q *QueryBuilder) Delete() *QueryBuilder {
	q.method = http.MethodDelete
	return q
}

// Token sets the user's access token for this request so the service can
// apply row-level security; without it the anon key is used.
func (q *QueryBuilder) Token(token string) *QueryBuilder {
	q.token = token
	return q
}

func (q *QueryBuilder) buildURL() (string, error) {
	base := strings.TrimRight(q.client.BaseURL, "/") + "/rest/v1/" + q.table
	params := url.Values{}
	if q.selectCols != "" {
		params.Set("select", q.selectCols)
	}
	for _, f := range q.filters {
		params.Add(f.column, f.op+"."+f.value)
	}
	for _, g := range q.orGroups {
		params.Add("or", "("+g+")")
	}
	if q.order != "" {
		params.Set("order", q.order)
	}
	if q.limit > 0 {
		params.Set("limit", strconv.Itoa(q.limit))
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// Get executes the query and decodes the result into dest (pass nil to
// discard). The returned count is -1 unless Count() was requested.
func (q *QueryBuilder) Get(ctx context.Context, dest any) (int64, error) {
	if q.method == "" {
		q.method = http.MethodGet
	}

	addr, err := q.buildURL()
	if err != nil {
		return -1, err
	}

	var body io.Reader
	if q.body != nil {
		data, err := json.Marshal(q.body)
		if err != nil {
			return -1, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, q.method, addr, body)
	if err != nil {
		return -1, err
	}

	req.Header.Set("apikey", q.client.APIKey)
	token := q.token
	if token == "" {
		token = q.client.APIKey
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var prefer []string
	if q.countExact {
		prefer = append(prefer, "count=exact")
	}
	if q.body != nil {
		req.Header.Set("Content-Type", "application/json")
		if dest != nil {
			prefer = append(prefer, "return=representation")
		} else {
			prefer = append(prefer, "return=minimal")
		}
	}
	if len(prefer) > 0 {
		req.Header.Set("Prefer", strings.Join(prefer, ","))
	}
	if q.single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}

	resp, err := q.client.HTTP.Do(req)
	if err != nil {
		return -1, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return -1, decodeError(resp)
	}

	count := int64(-1)
	if q.countExact {
		count = parseContentRange(resp.Header.Get("Content-Range"))
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil && err != io.EOF {
			return count, fmt.Errorf("decode response: %w", err)
		}
	}
	return count, nil
}

// Execute runs a mutation that needs no result rows back.
func (q *QueryBuilder) Execute(ctx context.Context) error {
	_, err := q.Get(ctx, nil)
	return err
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(data) > 0 {
		var parsed APIError
		if json.Unmarshal(data, &parsed) == nil && parsed.Message != "" {
			parsed.Status = resp.StatusCode
			return &parsed
		}
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}

// parseContentRange extracts the total from a "0-49/120" style header.
func parseContentRange(header string) int64 {
	idx := strings.LastIndex(header, "/")
	if idx < 0 {
		return -1
	}
	total := header[idx+1:]
	if total == "*" {
		return -1
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return -1
	}
	return n
}
