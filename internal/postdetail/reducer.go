// Package postdetail 约拍详情的当前状态，只接受关闭约拍和新增应征两种动作。
package postdetail

import (
	"time"
	"yuepai/internal/models"
	"yuepai/internal/region"
)

// ActionType 详情动作类型
type ActionType string

const (
	ActionClosePost     ActionType = "CLOSE_POST"
	ActionAddNewRequest ActionType = "ADD_NEW_REQUEST"
)

// Action 详情动作
type Action struct {
	Type ActionType
}

var (
	ClosePost     = Action{Type: ActionClosePost}
	AddNewRequest = Action{Type: ActionAddNewRequest}
)

// State 约拍详情快照
type State struct {
	PostID             uint        `json:"postId"`
	Content            string      `json:"content"`
	Cost               int         `json:"cost"`
	CostOption         string      `json:"costOption"`
	IsClosed           bool        `json:"isClosed"`
	CreateTime         string      `json:"createTime"`
	OwnerAvatarURL     string      `json:"ownerAvatarUrl"`
	OwnerGender        string      `json:"ownerGender"`
	OwnerID            uint        `json:"ownerId"`
	OwnerIdentity      string      `json:"ownerIdentity"`
	OwnerName          string      `json:"ownerName"`
	PhotoURLs          []string    `json:"photoUrls"`
	RequestNum         int         `json:"requestNum"`
	RequiredRegionCode region.Code `json:"requiredRegionCode"`
	RequiredRegionName string      `json:"requiredRegionName"`
	Tags               []string    `json:"tags"`
}

// InitialState 数值为 0、字符串为空、列表为空、未关闭
func InitialState() State {
	return State{
		PhotoURLs: []string{},
		Tags:      []string{},
	}
}

// Reduce 根据动作计算下一个状态，未识别的动作原样返回
func Reduce(state State, action Action) State {
	switch action.Type {
	case ActionClosePost:
		state.IsClosed = true
		return state
	case ActionAddNewRequest:
		state.RequestNum++
		return state
	default:
		return state
	}
}

// FromPost 由约拍记录构建详情快照，Owner 需已预加载
func FromPost(post models.Post, regionName string) State {
	s := InitialState()
	s.PostID = post.ID
	s.Content = post.Content
	s.Cost = post.Cost
	s.CostOption = post.CostOption
	s.IsClosed = post.IsClosed
	s.CreateTime = post.CreatedAt.Format(time.DateTime)
	s.OwnerAvatarURL = post.Owner.Avatar
	s.OwnerGender = post.Owner.Gender
	s.OwnerID = post.OwnerID
	s.OwnerIdentity = post.Owner.Identity
	s.OwnerName = post.Owner.UserName
	s.PhotoURLs = append(s.PhotoURLs, post.PhotoURLs...)
	s.RequestNum = post.RequestNum
	s.RequiredRegionCode = post.RequiredRegionCode
	s.RequiredRegionName = regionName
	s.Tags = append(s.Tags, post.Tags...)
	return s
}

// Store 详情状态的唯一写入入口
type Store struct {
	state State
}

func NewStore(initial State) *Store {
	return &Store{state: initial}
}

func (s *Store) State() State {
	return s.state
}

func (s *Store) Dispatch(a Action) State {
	s.state = Reduce(s.state, a)
	return s.state
}
