package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrUsernameTaken      = errors.New("用户名已被使用")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("无效或已过期的重置令牌")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrAlreadyEnrolled    = errors.New("您已经报名了该学习路径")
	ErrNotEnrolled        = errors.New("您尚未报名该学习路径")
	ErrAlreadyCompleted   = errors.New("您已经完成了该学习路径")
	ErrMustComplete       = errors.New("您必须完成学习路径才能评分")
	ErrCommentTarget      = errors.New("评论必须关联到知识点或学习路径之一")
	ErrNotPublished       = errors.New("内容未发布")
	ErrNegativePoints     = errors.New("题目分值不能为负数")
	ErrAlreadyLiked       = errors.New("您已经点过赞了")
)
