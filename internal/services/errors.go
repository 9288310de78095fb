package services

import "errors"

var (
	ErrPostNotFound     = errors.New("约拍不存在")
	ErrNotOwner         = errors.New("只有发布者可以操作")
	ErrPostClosed       = errors.New("约拍已关闭")
	ErrOwnRequest       = errors.New("不能应征自己发布的约拍")
	ErrDuplicateRequest = errors.New("已经应征过了")
	ErrUserNotFound     = errors.New("用户不存在")
	ErrUserNameUsed     = errors.New("昵称已被使用")
)
