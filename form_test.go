package formskema_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formskema "github.com/reoring/formskema"
)

func TestParseQuery_KeepsOrder(t *testing.T) {
	p, err := formskema.ParseQuery("b=1&a=x&b=2&&c=%20sp+ace&flag")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c", "flag"}, p.Keys())
	assert.Equal(t, []any{"1", "2"}, p.Values("b"))
	assert.Equal(t, []any{" sp ace"}, p.Values("c"))
	assert.Equal(t, []any{""}, p.Values("flag"))
	assert.Nil(t, p.Values("missing"))
}

func TestParseQuery_ReportsBadFields(t *testing.T) {
	p, err := formskema.ParseQuery("a=1&b=%zz&c=2;d=3&e=5")
	iss, ok := formskema.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 2)
	assert.Equal(t, formskema.CodeParseError, iss[0].Code)
	assert.Error(t, iss[0].Cause)
	assert.Equal(t, formskema.CodeParseError, iss[1].Code)
	assert.Equal(t, []string{"a", "e"}, p.Keys())
}

func TestDecodeForm_SingleVersusRepeated(t *testing.T) {
	var p formskema.Pairs
	p.Add("name", "Ann")
	p.Add("tags", "")
	p.Add("tags", "go")
	p.Add("tags", "")
	p.Add("tags", "forms")
	p.Add("tagIds", "1")
	p.Add("tagIds", "2")
	p.Add("single", "")

	got, err := formskema.DecodeForm(p, formskema.Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":   "Ann",
		"tags":   []any{"go", "forms"},
		"tagIds": []any{float64(1), float64(2)},
	}, got)
}

func TestDecodeForm_MatchesExpand(t *testing.T) {
	in := map[string]any{
		"status.isAlive":  "true",
		"tags":            []string{"", "a", "b"},
		"profile.age":     "20",
		"profile.aliases": []string{"x", "", "y"},
	}
	fromMap, err := formskema.ExpandMap(in, formskema.Options{})
	require.NoError(t, err)

	v := url.Values{}
	for k, val := range in {
		switch val := val.(type) {
		case string:
			v.Add(k, val)
		case []string:
			for _, s := range val {
				v.Add(k, s)
			}
		}
	}
	fromForm, err := formskema.DecodeForm(formskema.URLValues(v), formskema.Options{})
	require.NoError(t, err)
	assert.Equal(t, fromMap, fromForm)
}

func TestDecodeRequest_URLEncodedBody(t *testing.T) {
	body := "items.0.sku=A&items.0.qty=2&items.1.sku=B&agree=true"
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")

	got, err := formskema.DecodeRequest(r, formskema.Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"items": []any{
			map[string]any{"sku": "A", "qty": float64(2)},
			map[string]any{"sku": "B"},
		},
		"agree": true,
	}, got)
}

func TestDecodeRequest_Query(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/search?page=2&filter.tag=go&filter.tag=forms", nil)
	got, err := formskema.DecodeRequest(r, formskema.Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"page":   float64(2),
		"filter": map[string]any{"tag": []any{"go", "forms"}},
	}, got)
}

func TestDecodeRequest_BadFieldKeepsTheRest(t *testing.T) {
	body := "a=1&b=%zz&a.x=2&c=ok"
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := formskema.DecodeRequest(r, formskema.Options{})
	assert.Equal(t, map[string]any{"a": float64(1), "c": "ok"}, got)

	iss, ok := formskema.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 2)
	assert.Equal(t, formskema.CodeParseError, iss[0].Code)
	assert.Equal(t, "b", iss[0].Path)
	assert.Equal(t, formskema.CodeContainerConflict, iss[1].Code)
	assert.Equal(t, "a", iss[1].Path)
}

func TestDecodeRequest_BodyLimit(t *testing.T) {
	post := func(body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return r
	}

	// exactly at the limit still decodes
	fill := formskema.DefaultMaxBodyBytes - len("a=1&b=")
	got, err := formskema.DecodeRequest(post("a=1&b="+strings.Repeat("x", fill)), formskema.Options{})
	require.NoError(t, err)
	assert.Len(t, got["b"], fill)

	// one byte over is rejected instead of cutting the last field short
	got, err = formskema.DecodeRequest(post("a=1&b="+strings.Repeat("x", fill+1)), formskema.Options{})
	assert.Nil(t, got)
	iss, ok := formskema.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, formskema.CodeParseError, iss[0].Code)
	assert.ErrorIs(t, iss[0].Cause, formskema.ErrBodyTooLarge)
}

func TestDecodeRequest_Multipart(t *testing.T) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	require.NoError(t, mw.WriteField("user.name", "Ann"))
	require.NoError(t, mw.WriteField("user.phone", "02348161892"))
	require.NoError(t, mw.WriteField("image.photo", ""))
	fw, err := mw.CreateFormFile("image.photo", "a.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("png"))
	fw, err = mw.CreateFormFile("image.photo", "b.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("png"))
	fw, err = mw.CreateFormFile("image.avatar", "c.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("png"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	got, err := formskema.DecodeRequest(r, formskema.Options{})
	require.NoError(t, err)

	user := got["user"].(map[string]any)
	assert.Equal(t, "Ann", user["name"])
	assert.Equal(t, "02348161892", user["phone"])

	img := got["image"].(map[string]any)
	photos, ok := img["photo"].([]any)
	require.True(t, ok)
	require.Len(t, photos, 2)
	assert.Equal(t, "a.png", photos[0].(*multipart.FileHeader).Filename)
	assert.Equal(t, "b.png", photos[1].(*multipart.FileHeader).Filename)
	assert.Equal(t, "c.png", img["avatar"].(*multipart.FileHeader).Filename)
}
