package handlers_test

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"sort"
	"sync"
	"yuepai/internal/db"
	"yuepai/internal/filter"
	"yuepai/internal/models"
	"yuepai/internal/postdetail"
	"yuepai/internal/services"
)

var testCatalog = services.BuildCatalog(db.DefaultRegions(), db.DefaultOptions())

type fakeCatalog struct{}

func (fakeCatalog) Catalog(ctx context.Context) (services.Catalog, error) {
	return testCatalog, nil
}

type fakePosts struct {
	mu         sync.Mutex
	posts      map[uint]*models.Post
	requests   map[uint]map[uint]bool
	nextID     uint
	submitErr  error
	lastFilter filter.Filter
	lastPage   int
}

func newFakePosts(seed ...models.Post) *fakePosts {
	f := &fakePosts{posts: map[uint]*models.Post{}, requests: map[uint]map[uint]bool{}, nextID: 100}
	for i := range seed {
		p := seed[i]
		f.posts[p.ID] = &p
	}
	return f
}

func (f *fakePosts) List(ctx context.Context, flt filter.Filter, page int) ([]models.Post, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter, f.lastPage = flt, page
	var out []models.Post
	for _, p := range f.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakePosts) Recent(ctx context.Context, limit int) ([]models.Post, error) {
	posts, _, err := f.List(ctx, filter.Filter{}, 1)
	var recent []models.Post
	for _, p := range posts {
		if !p.IsClosed && len(recent) < limit {
			p.RequiredRegionName = testCatalog.RegionName(p.RequiredRegionCode)
			recent = append(recent, p)
		}
	}
	return recent, err
}

func (f *fakePosts) Get(ctx context.Context, id uint) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePosts) Detail(ctx context.Context, id uint) (postdetail.State, error) {
	p, err := f.Get(ctx, id)
	if err != nil {
		return postdetail.State{}, err
	}
	return postdetail.FromPost(*p, testCatalog.RegionName(p.RequiredRegionCode)), nil
}

func (f *fakePosts) HasRequested(ctx context.Context, postID, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[postID][userID], nil
}

func (f *fakePosts) Submit(ctx context.Context, post models.Post) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return models.Post{}, f.submitErr
	}
	if post.ID == 0 {
		f.nextID++
		post.ID = f.nextID
	}
	cp := post
	f.posts[post.ID] = &cp
	return post, nil
}

func (f *fakePosts) Close(ctx context.Context, postID, actorID uint) (postdetail.State, error) {
	return f.dispatch(postID, actorID, postdetail.ClosePost)
}

func (f *fakePosts) AddRequest(ctx context.Context, postID, applicantID uint) (postdetail.State, error) {
	return f.dispatch(postID, applicantID, postdetail.AddNewRequest)
}

func (f *fakePosts) dispatch(postID, actorID uint, action postdetail.Action) (postdetail.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[postID]
	if !ok {
		return postdetail.State{}, services.ErrPostNotFound
	}
	if err := services.CheckAction(*p, actorID, action, f.requests[postID][actorID]); err != nil {
		return postdetail.State{}, err
	}
	next := postdetail.Reduce(postdetail.FromPost(*p, ""), action)
	p.IsClosed, p.RequestNum = next.IsClosed, next.RequestNum
	if action.Type == postdetail.ActionAddNewRequest {
		if f.requests[postID] == nil {
			f.requests[postID] = map[uint]bool{}
		}
		f.requests[postID][actorID] = true
	}
	return next, nil
}

type fakeUsers struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[uint]*models.User{}}
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.UserName == user.UserName {
			return services.ErrUserNameUsed
		}
	}
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUsers) IsNameUsed(ctx context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.UserName == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) Get(ctx context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Brief(ctx context.Context, id uint) (services.UserBrief, error) {
	u, err := f.Get(ctx, id)
	if err != nil {
		return services.UserBrief{}, err
	}
	return services.BriefOf(*u), nil
}

type fakeNotifications struct {
	items []models.Notification
}

func (f *fakeNotifications) List(ctx context.Context, userID uint) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) MarkRead(ctx context.Context, id, userID uint) (bool, error) {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotifications) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, n := range f.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeImages struct {
	err error
}

func (f fakeImages) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*services.ImageUploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := io.ReadAll(file); err != nil {
		return nil, err
	}
	return &services.ImageUploadResult{URL: "https://i.imgur.com/abc.jpg", ID: "abc"}, nil
}

var errDBDown = errors.New("db down")
