package postedit

import (
	"time"
	"yuepai/internal/models"
	"yuepai/internal/utils"

	"github.com/google/uuid"
)

// Draft 一次表单编辑：工作副本、原约拍和完成后返回的地址
type Draft struct {
	ID       string
	Copy     *WorkingCopy
	Original models.Post
	Back     string
}

// Drafts 按草稿 ID 保存进行中的表单，过期或被挤出后需重新进入表单
type Drafts struct {
	cache *utils.GlobalCache
	ttl   time.Duration
}

func NewDrafts(size int, ttl time.Duration) *Drafts {
	return &Drafts{
		cache: utils.NewGlobalCache(size),
		ttl:   ttl,
	}
}

func draftKey(id string) string {
	return "draft:" + id
}

// Open 为原约拍创建工作副本并登记，返回草稿
func (d *Drafts) Open(original models.Post, back string) *Draft {
	draft := &Draft{
		ID:       uuid.NewString(),
		Copy:     New(original),
		Original: original,
		Back:     back,
	}
	d.cache.Set(draftKey(draft.ID), draft, d.ttl)
	return draft
}

// Get 取出草稿并续期
func (d *Drafts) Get(id string) (*Draft, bool) {
	draft, ok := d.cache.Get(draftKey(id)).(*Draft)
	if !ok || draft.Copy.Closed() {
		return nil, false
	}
	d.cache.Set(draftKey(id), draft, d.ttl)
	return draft, true
}

// Discard 取消并移除草稿
func (d *Drafts) Discard(id string) {
	if draft, ok := d.cache.Get(draftKey(id)).(*Draft); ok {
		draft.Copy.Cancel()
	}
	d.cache.Delete(draftKey(id))
}
