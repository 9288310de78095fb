package services

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"yuepai/internal/config"
	"yuepai/internal/filter"
	"yuepai/internal/models"
	"yuepai/internal/postdetail"
	"yuepai/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=postgres password=postgres dbname=yuepai port=5432 sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestFilterScope(t *testing.T) {
	db := dryRunDB(t)
	sqlOf := func(f filter.Filter) string {
		return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var posts []models.Post
			return tx.Scopes(FilterScope(f)).Find(&posts)
		})
	}

	all := sqlOf(filter.Filter{})
	assert.NotContains(t, all, "WHERE")
	assert.NotContains(t, all, "JOIN")

	province := sqlOf(filter.Filter{RegionCode: 330000})
	assert.Contains(t, province, "posts.required_region_code >= 330000 AND posts.required_region_code < 340000")

	sub := sqlOf(filter.Filter{RegionCode: 330106, CostOption: "互免"})
	assert.Contains(t, sub, "posts.required_region_code >= 330106 AND posts.required_region_code < 330107")
	assert.Contains(t, sub, "posts.cost_option = '互免'")
	assert.NotContains(t, sub, "JOIN")

	people := sqlOf(filter.Filter{Identity: "模特", Gender: "女"})
	assert.Contains(t, people, "JOIN users ON users.id = posts.owner_id")
	assert.Contains(t, people, "users.identity = '模特'")
	assert.Contains(t, people, "users.gender = '女'")
}

func TestCheckAction(t *testing.T) {
	open := models.Post{ID: 1, OwnerID: 10}
	closed := models.Post{ID: 1, OwnerID: 10, IsClosed: true}

	tests := []struct {
		name      string
		post      models.Post
		actor     uint
		action    postdetail.Action
		requested bool
		want      error
	}{
		{name: "owner_close", post: open, actor: 10, action: postdetail.ClosePost},
		{name: "owner_close_again", post: closed, actor: 10, action: postdetail.ClosePost},
		{name: "other_close", post: open, actor: 11, action: postdetail.ClosePost, want: ErrNotOwner},
		{name: "request", post: open, actor: 11, action: postdetail.AddNewRequest},
		{name: "own_request", post: open, actor: 10, action: postdetail.AddNewRequest, want: ErrOwnRequest},
		{name: "closed_request", post: closed, actor: 11, action: postdetail.AddNewRequest, want: ErrPostClosed},
		{name: "duplicate", post: open, actor: 11, action: postdetail.AddNewRequest, requested: true, want: ErrDuplicateRequest},
		{name: "unknown", post: closed, actor: 99, action: postdetail.Action{Type: "LIKE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAction(tt.post, tt.actor, tt.action, tt.requested)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestBuildCatalog(t *testing.T) {
	rows := []models.Region{
		{RegionCode: 110000, RegionName: "北京市"},
		{RegionCode: 110105, RegionName: "朝阳区"},
		{RegionCode: 330000, RegionName: "浙江省"},
	}
	options := []models.CatalogOption{
		{Kind: models.OptionKindCost, Label: "互免"},
		{Kind: models.OptionKindCost, Label: "需要收费"},
		{Kind: models.OptionKindGender, Label: "女"},
		{Kind: models.OptionKindIdentity, Label: "模特"},
		{Kind: models.OptionKindTag, Label: "汉服"},
		{Kind: "unknown", Label: "x"},
	}
	c := BuildCatalog(rows, options)
	assert.Len(t, c.Regions, 3)
	assert.Equal(t, "北京市", c.Provinces[0].Name)
	assert.Len(t, c.Provinces, 2)
	assert.Equal(t, []string{"互免", "需要收费"}, c.CostOptions)
	assert.Equal(t, []string{"模特"}, c.Identities)
	assert.Equal(t, []string{"女"}, c.Genders)
	assert.Equal(t, []string{"汉服"}, c.Tags)
	assert.Equal(t, "朝阳区", c.RegionName(110105))
	assert.Equal(t, "", c.RegionName(999999))

	fc := c.ForFilter()
	assert.Equal(t, c.Provinces, fc.Provinces)
}

func TestCatalogServiceUsesCache(t *testing.T) {
	cache := utils.NewGlobalCache(10)
	want := Catalog{CostOptions: []string{"互免"}}
	cache.Set(catalogCacheKey, want, time.Minute)

	// 命中缓存时不会访问数据库
	s := NewCatalogService(nil, cache)
	got, err := s.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	s.Invalidate()
	assert.Nil(t, cache.Get(catalogCacheKey))
}

func TestMailServiceNewRequest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "email"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "email", "new_request.html"),
		[]byte(`<p>{{.Applicant}} 应征了：{{.Content}}</p><a href="{{.PostLink}}">查看</a>`), 0o644))

	type sent struct {
		addr string
		to   []string
		msg  string
	}
	ch := make(chan sent, 1)
	s := NewMailService(config.SMTP{Host: "smtp.example.com", Port: 587, User: "bot", Pass: "x", From: "bot@example.com"}, dir, zap.NewNop())
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		ch <- sent{addr: addr, to: to, msg: string(msg)}
		return nil
	}

	s.SendNewRequestNotification("owner@example.com", "阿青", "西湖汉服", "http://localhost:8080/p/3")

	select {
	case got := <-ch:
		assert.Equal(t, "smtp.example.com:587", got.addr)
		assert.Equal(t, []string{"owner@example.com"}, got.to)
		assert.Contains(t, got.msg, "阿青 应征了：西湖汉服")
		assert.Contains(t, got.msg, "http://localhost:8080/p/3")
	case <-time.After(2 * time.Second):
		t.Fatal("mail not sent")
	}
}

func TestMailSubjectLineBreaksStayInHeader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "email"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "email", "new_request.html"),
		[]byte(`<p>{{.Content}}</p>`), 0o644))

	ch := make(chan string, 1)
	s := NewMailService(config.SMTP{Host: "smtp.example.com", Port: 587, User: "bot", Pass: "x", From: "bot@example.com"}, dir, zap.NewNop())
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		ch <- string(msg)
		return nil
	}

	s.SendNewRequestNotification("owner@example.com", "evil\r\nBcc: victim@example.com", "西湖汉服", "http://localhost:8080/p/3")

	select {
	case msg := <-ch:
		end := strings.Index(msg, "MIME-version")
		require.Greater(t, end, 0, msg)
		header := msg[:end]
		assert.NotContains(t, header, "\nBcc:")
		assert.NotContains(t, header, "\rBcc:")
		assert.Contains(t, header, "Subject: =?UTF-8?q?")
		assert.Equal(t, 3, strings.Count(header, "\r\n"), header)
	case <-time.After(2 * time.Second):
		t.Fatal("mail not sent")
	}
}

func TestMailServiceDisabled(t *testing.T) {
	s := NewMailService(config.SMTP{}, t.TempDir(), zap.NewNop())
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		t.Error("should not send")
		return nil
	}
	s.SendNewRequestNotification("owner@example.com", "阿青", "x", "y")
	assert.False(t, s.Enabled())
}

func TestMailQueueFullDrops(t *testing.T) {
	s := &MailService{
		cfg:   config.SMTP{Host: "smtp.example.com", Port: 587, User: "bot", Pass: "x", From: "bot@example.com"},
		log:   zap.NewNop(),
		queue: make(chan mailJob, 1),
	}
	s.enqueue(mailJob{to: []string{"a@example.com"}, subject: "1"})
	s.enqueue(mailJob{to: []string{"b@example.com"}, subject: "2"})

	require.Len(t, s.queue, 1)
	job := <-s.queue
	assert.Equal(t, "1", job.subject)
}

func multipartFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var body strings.Builder
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", w.FormDataContentType())
	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	return file, header
}

func TestImageUploader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Client-ID abc", r.Header.Get("Authorization"))
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "base64", r.FormValue("type"))
		assert.NotEmpty(t, r.FormValue("image"))
		io.WriteString(w, `{"data":{"id":"Xy12","link":"https://i.imgur.com/Xy12.png","type":"image/png"},"success":true,"status":200}`)
	}))
	defer srv.Close()

	u := NewImageUploader("abc")
	u.Endpoint = srv.URL
	file, header := multipartFile(t, "photo", []byte("fake png"))

	result, err := u.Upload(context.Background(), file, header)
	require.NoError(t, err)
	assert.Equal(t, "Xy12", result.ID)
	assert.Equal(t, "https://i.imgur.com/Xy12.png", result.URL)
}

func TestImageUploaderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{},"success":false,"status":400}`)
	}))
	defer srv.Close()

	u := NewImageUploader("abc")
	u.Endpoint = srv.URL
	file, header := multipartFile(t, "a.jpg", []byte("x"))
	_, err := u.Upload(context.Background(), file, header)
	assert.ErrorContains(t, err, "status 400")

	_, err = NewImageUploader("").Upload(context.Background(), file, header)
	assert.ErrorIs(t, err, ErrUploadDisabled)
}
